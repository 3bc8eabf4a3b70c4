package models

// FoodCategory is the closed set of food classifications.
type FoodCategory string

const (
	FoodHealthy           FoodCategory = "healthy"
	FoodJunk              FoodCategory = "junk"
	FoodPreservativeHeavy FoodCategory = "preservative_heavy"
)

// FSIParameters are the normalised nutrition sub-factors of a food item.
type FSIParameters struct {
	NutrientDensity  float64 `json:"nutrient_density"`
	ProcessingScore  float64 `json:"processing_score"`
	PreservativeLoad float64 `json:"preservative_load"`
	SugarContent     float64 `json:"sugar_content"`
	SodiumLevel      float64 `json:"sodium_level"`
}

// FoodClassification is the outcome of classifying one food item.
type FoodClassification struct {
	Food            string       `json:"food"`
	Category        FoodCategory `json:"category"`
	Confidence      float64      `json:"confidence"`
	Rationale       string       `json:"rationale"`
	DominantFactors []string     `json:"dominant_factors"`
}

// Priority ranks recommendations and insights.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is an actionable suggestion.
type Recommendation struct {
	Priority       Priority `json:"priority"`
	Action         string   `json:"action"`
	Rationale      string   `json:"rationale"`
	ExpectedImpact string   `json:"expected_impact"`
}

// RetentionLevel bands the adjusted retention score.
type RetentionLevel string

const (
	RetentionLow      RetentionLevel = "low"
	RetentionModerate RetentionLevel = "moderate"
	RetentionHigh     RetentionLevel = "high"
)

// RetentionFactorType names a lifestyle signal that drives water retention.
type RetentionFactorType string

const (
	RetentionFactorSodium    RetentionFactorType = "sodium"
	RetentionFactorHydration RetentionFactorType = "hydration"
	RetentionFactorSleep     RetentionFactorType = "sleep"
	RetentionFactorHormonal  RetentionFactorType = "hormonal"
	RetentionFactorStress    RetentionFactorType = "stress"
)

// RetentionFactor is one qualifying retention signal with impact 1-10.
type RetentionFactor struct {
	Type           RetentionFactorType `json:"type"`
	Impact         int                 `json:"impact"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

// RetentionPrediction is the water-retention outcome for one day.
type RetentionPrediction struct {
	Level               RetentionLevel    `json:"level"`
	Confidence          float64           `json:"confidence"`
	PrimaryFactor       RetentionFactor   `json:"primary_factor"`
	ContributingFactors []RetentionFactor `json:"contributing_factors"`
	AdjustedScore       float64           `json:"adjusted_score"`
	Explanation         string            `json:"explanation"`
}

// MetabolicRate is the base metabolic speed of a body type.
type MetabolicRate string

const (
	MetabolicFast     MetabolicRate = "fast"
	MetabolicModerate MetabolicRate = "moderate"
	MetabolicSlow     MetabolicRate = "slow"
)

// MetabolicProfile holds 1-10 ratings of metabolic traits.
type MetabolicProfile struct {
	BaseMetabolicRate   MetabolicRate `json:"base_metabolic_rate" yaml:"baseMetabolicRate"`
	CarbSensitivity     int           `json:"carb_sensitivity" yaml:"carbSensitivity"`
	FatStorageTendency  int           `json:"fat_storage_tendency" yaml:"fatStorageTendency"`
	MuscleGainPotential int           `json:"muscle_gain_potential" yaml:"muscleGainPotential"`
	RecoverySpeed       int           `json:"recovery_speed" yaml:"recoverySpeed"`
}

// NutritionalNeeds are macro ratios (percent) and guidance for a body type.
type NutritionalNeeds struct {
	ProteinRatio      float64 `json:"protein_ratio" yaml:"proteinRatio"`
	CarbRatio         float64 `json:"carb_ratio" yaml:"carbRatio"`
	FatRatio          float64 `json:"fat_ratio" yaml:"fatRatio"`
	MealFrequency     string  `json:"meal_frequency" yaml:"mealFrequency"`
	HydrationGuidance string  `json:"hydration_guidance" yaml:"hydrationGuidance"`
}

// BodyTypeInsight is the body-type profile for one day of inputs.
type BodyTypeInsight struct {
	Classification           BodyTypeClassification `json:"classification"`
	Confidence               float64                `json:"confidence"`
	Rationale                string                 `json:"rationale"`
	MetabolicProfile         MetabolicProfile       `json:"metabolic_profile"`
	MetabolicResponse        string                 `json:"metabolic_response"`
	FatStoragePattern        string                 `json:"fat_storage_pattern"`
	EnergyUtilization        string                 `json:"energy_utilization"`
	NutritionalNeeds         NutritionalNeeds       `json:"nutritional_needs"`
	LifestyleRecommendations []Recommendation       `json:"lifestyle_recommendations"`
}

// SleepQuality is the overall quality of a night.
type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepFair      SleepQuality = "fair"
	SleepGood      SleepQuality = "good"
	SleepExcellent SleepQuality = "excellent"
)

// ImpactType is the direction a habit pushes sleep.
type ImpactType string

const (
	ImpactPositive ImpactType = "positive"
	ImpactNegative ImpactType = "negative"
	ImpactNeutral  ImpactType = "neutral"
)

// SleepDisruptorType names a habit that disrupts sleep.
type SleepDisruptorType string

const (
	DisruptorCaffeine    SleepDisruptorType = "caffeine"
	DisruptorLateEating  SleepDisruptorType = "late_eating"
	DisruptorDehydration SleepDisruptorType = "dehydration"
	DisruptorStress      SleepDisruptorType = "stress"
	DisruptorScreenTime  SleepDisruptorType = "screen_time"
)

// SleepCorrelation links a habit to the night's sleep.
type SleepCorrelation struct {
	Habit       string     `json:"habit"`
	Impact      ImpactType `json:"impact"`
	Strength    int        `json:"strength"`
	Description string     `json:"description"`
}

// SleepDisruptor is a habit ranked by how much it disrupted sleep.
type SleepDisruptor struct {
	Type           SleepDisruptorType `json:"type"`
	Severity       int                `json:"severity"`
	Timing         string             `json:"timing"`
	Recommendation string             `json:"recommendation"`
}

// SleepAnalysis is the outcome of analysing one night.
type SleepAnalysis struct {
	OverallQuality  SleepQuality       `json:"overall_quality"`
	Correlations    []SleepCorrelation `json:"correlations"`
	Disruptors      []SleepDisruptor   `json:"disruptors"`
	Recommendations []Recommendation   `json:"recommendations"`
	Explanation     string             `json:"explanation"`
}
