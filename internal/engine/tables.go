package engine

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jeevanfit/jeevanfit-engine/internal/classify"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/trends"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

// Tables carries every weight, threshold and multiplier used by the analyzers.
type Tables struct {
	Food      FoodTable      `yaml:"food"`
	Retention RetentionTable `yaml:"retention"`
	BodyType  BodyTypeTable  `yaml:"bodyType"`
	Sleep     SleepTable     `yaml:"sleep"`
	Trends    trends.Config  `yaml:"trends"`
}

// FoodTable configures the food classifier.
type FoodTable struct {
	Healthy           []classify.Term     `yaml:"healthy"`
	Junk              []classify.Term     `yaml:"junk"`
	PreservativeHeavy []classify.Term     `yaml:"preservativeHeavy"`
	Overrides         []classify.Override `yaml:"overrides"`
	TieMargin         float64             `yaml:"tieMargin"`

	CalorieFloor      float64 `yaml:"calorieFloor"`
	PreservativeScale float64 `yaml:"preservativeScale"`
	SugarScale        float64 `yaml:"sugarScale"`
	SodiumScale       float64 `yaml:"sodiumScale"`

	NutrientDensityHigh   float64 `yaml:"nutrientDensityHigh"`
	NutrientDensityLow    float64 `yaml:"nutrientDensityLow"`
	MinimalProcessing     int     `yaml:"minimalProcessing"`
	HighProcessing        int     `yaml:"highProcessing"`
	GoodFiber             float64 `yaml:"goodFiber"`
	HighSugar             float64 `yaml:"highSugar"`
	HighSodium            float64 `yaml:"highSodium"`
	PreservativeListLimit int     `yaml:"preservativeListLimit"`
}

// RetentionTable configures the water-retention predictor.
type RetentionTable struct {
	SodiumHigh       float64 `yaml:"sodiumHigh"`
	SodiumModerate   float64 `yaml:"sodiumModerate"`
	WaterLow         float64 `yaml:"waterLow"`
	WaterOptimalMin  float64 `yaml:"waterOptimalMin"`
	WaterVeryHigh    float64 `yaml:"waterVeryHigh"`
	SleepPoorQuality int     `yaml:"sleepPoorQuality"`
	SleepShortHours  float64 `yaml:"sleepShortHours"`
	StressHigh       int     `yaml:"stressHigh"`
	StressModerate   int     `yaml:"stressModerate"`
	LowMax           float64 `yaml:"lowMax"`
	ModerateMax      float64 `yaml:"moderateMax"`

	Sensitivity map[models.BodyTypeClassification]float64 `yaml:"sensitivity"`
}

// BodyTypeTable configures the body-type profiler.
type BodyTypeTable struct {
	DeclaredWeight     float64 `yaml:"declaredWeight"`
	EvidenceWeight     float64 `yaml:"evidenceWeight"`
	DeclaredFloor      float64 `yaml:"declaredFloor"`
	EvidenceSaturation int     `yaml:"evidenceSaturation"`
	TieMargin          float64 `yaml:"tieMargin"`

	Traits   map[models.BodyTypeClassification][]string                `yaml:"traits"`
	Profiles map[models.BodyTypeClassification]models.MetabolicProfile `yaml:"profiles"`
	Needs    map[models.BodyTypeClassification]models.NutritionalNeeds `yaml:"needs"`

	LowCalories   float64 `yaml:"lowCalories"`
	LowProtein    float64 `yaml:"lowProtein"`
	ProteinTarget float64 `yaml:"proteinTarget"`
	HighCarbs     float64 `yaml:"highCarbs"`
	HighSugar     float64 `yaml:"highSugar"`
	SugarLimit    float64 `yaml:"sugarLimit"`
	MinMeals      int     `yaml:"minMeals"`
	WaterTarget   float64 `yaml:"waterTarget"`
}

// SleepTable configures the sleep analyzer.
type SleepTable struct {
	QualityExcellent      int     `yaml:"qualityExcellent"`
	QualityGood           int     `yaml:"qualityGood"`
	QualityFair           int     `yaml:"qualityFair"`
	ShortSleepHours       float64 `yaml:"shortSleepHours"`
	LongSleepHours        float64 `yaml:"longSleepHours"`
	InterruptionLimit     int     `yaml:"interruptionLimit"`
	CaffeineCutoffHours   float64 `yaml:"caffeineCutoffHours"`
	LateEatingCutoffHours float64 `yaml:"lateEatingCutoffHours"`
	ScreenCutoffHours     float64 `yaml:"screenCutoffHours"`
	WaterLow              float64 `yaml:"waterLow"`
	WaterOptimalMin       float64 `yaml:"waterOptimalMin"`
	StressHigh            int     `yaml:"stressHigh"`
	StressModerate        int     `yaml:"stressModerate"`
}

// DefaultTables returns the built-in scoring tables.
func DefaultTables() Tables {
	return Tables{
		Food: FoodTable{
			Healthy: []classify.Term{
				{Feature: featNutrientDensity, Weight: 0.4},
				{Feature: featProcessing, Weight: 0.3},
				{Feature: featPreservativeLoad, Weight: 0.15, Invert: true},
				{Feature: featSugar, Weight: 0.075, Invert: true},
				{Feature: featSodium, Weight: 0.075, Invert: true},
			},
			Junk: []classify.Term{
				{Feature: featNutrientDensity, Weight: 0.3, Invert: true},
				{Feature: featProcessing, Weight: 0.3, Invert: true},
				{Feature: featSugar, Weight: 0.2},
				{Feature: featSodium, Weight: 0.2},
			},
			PreservativeHeavy: []classify.Term{
				{Feature: featPreservativeLoad, Weight: 1},
			},
			Overrides: []classify.Override{
				{Name: "preservative_count", Feature: featPreservativeCount, Op: classify.AtLeast, Threshold: 3, Category: classify.Category(models.FoodPreservativeHeavy), Floor: 0.8, Force: true},
				{Name: "high_processing", Feature: featProcessingLevel, Op: classify.AtLeast, Threshold: 4, Category: classify.Category(models.FoodJunk), Floor: 0.7},
				{Name: "high_sugar", Feature: featSugarGrams, Op: classify.Above, Threshold: 15, Category: classify.Category(models.FoodJunk), Floor: 0.6},
				{Name: "high_sodium", Feature: featSodiumMilligrams, Op: classify.Above, Threshold: 600, Category: classify.Category(models.FoodJunk), Floor: 0.6},
			},
			TieMargin:             classify.DefaultTieMargin,
			CalorieFloor:          1,
			PreservativeScale:     5,
			SugarScale:            30,
			SodiumScale:           1000,
			NutrientDensityHigh:   0.7,
			NutrientDensityLow:    0.3,
			MinimalProcessing:     2,
			HighProcessing:        4,
			GoodFiber:             3,
			HighSugar:             15,
			HighSodium:            600,
			PreservativeListLimit: 3,
		},
		Retention: RetentionTable{
			SodiumHigh:       2000,
			SodiumModerate:   1500,
			WaterLow:         1500,
			WaterOptimalMin:  2000,
			WaterVeryHigh:    4500,
			SleepPoorQuality: 5,
			SleepShortHours:  6,
			StressHigh:       7,
			StressModerate:   5,
			LowMax:           2,
			ModerateMax:      5,
			Sensitivity: map[models.BodyTypeClassification]float64{
				models.BodyTypeEctomorph: 0.8,
				models.BodyTypeMesomorph: 1.0,
				models.BodyTypeEndomorph: 1.3,
				models.BodyTypeMixed:     1.1,
			},
		},
		BodyType: BodyTypeTable{
			DeclaredWeight:     0.5,
			EvidenceWeight:     0.5,
			DeclaredFloor:      0.55,
			EvidenceSaturation: 2,
			TieMargin:          classify.DefaultTieMargin,
			Traits: map[models.BodyTypeClassification][]string{
				models.BodyTypeEctomorph: {"lean", "thin", "slim", "slender", "fast metabolism", "hard to gain", "narrow", "long limbs"},
				models.BodyTypeMesomorph: {"athletic", "muscular", "broad shoulders", "gains muscle", "medium frame", "strong"},
				models.BodyTypeEndomorph: {"stocky", "round", "gains weight", "slow metabolism", "wide hips", "soft", "curvy", "stores fat"},
				models.BodyTypeMixed:     {"mixed", "combination", "in between", "varies", "hybrid"},
			},
			Profiles: map[models.BodyTypeClassification]models.MetabolicProfile{
				models.BodyTypeEctomorph: {BaseMetabolicRate: models.MetabolicFast, CarbSensitivity: 3, FatStorageTendency: 2, MuscleGainPotential: 4, RecoverySpeed: 7},
				models.BodyTypeMesomorph: {BaseMetabolicRate: models.MetabolicModerate, CarbSensitivity: 5, FatStorageTendency: 5, MuscleGainPotential: 8, RecoverySpeed: 8},
				models.BodyTypeEndomorph: {BaseMetabolicRate: models.MetabolicSlow, CarbSensitivity: 8, FatStorageTendency: 8, MuscleGainPotential: 6, RecoverySpeed: 5},
				models.BodyTypeMixed:     {BaseMetabolicRate: models.MetabolicModerate, CarbSensitivity: 5, FatStorageTendency: 5, MuscleGainPotential: 6, RecoverySpeed: 6},
			},
			Needs: map[models.BodyTypeClassification]models.NutritionalNeeds{
				models.BodyTypeEctomorph: {ProteinRatio: 25, CarbRatio: 55, FatRatio: 20, MealFrequency: "5-6 smaller meals throughout the day", HydrationGuidance: "Aim for 2.5-3 liters daily. Higher calorie intake requires more hydration."},
				models.BodyTypeMesomorph: {ProteinRatio: 30, CarbRatio: 40, FatRatio: 30, MealFrequency: "3-4 balanced meals with optional snacks", HydrationGuidance: "Aim for 2-2.5 liters daily, adjusting for activity level."},
				models.BodyTypeEndomorph: {ProteinRatio: 35, CarbRatio: 25, FatRatio: 40, MealFrequency: "3-4 moderate meals, avoid late-night eating", HydrationGuidance: "Aim for 2-3 liters daily. Good hydration supports metabolism."},
				models.BodyTypeMixed:     {ProteinRatio: 30, CarbRatio: 40, FatRatio: 30, MealFrequency: "3-4 balanced meals per day", HydrationGuidance: "Aim for 2-2.5 liters daily, adjusting based on activity."},
			},
			LowCalories:   2000,
			LowProtein:    60,
			ProteinTarget: 80,
			HighCarbs:     200,
			HighSugar:     50,
			SugarLimit:    40,
			MinMeals:      3,
			WaterTarget:   2500,
		},
		Sleep: SleepTable{
			QualityExcellent:      8,
			QualityGood:           7,
			QualityFair:           5,
			ShortSleepHours:       6,
			LongSleepHours:        10,
			InterruptionLimit:     3,
			CaffeineCutoffHours:   6,
			LateEatingCutoffHours: 3,
			ScreenCutoffHours:     2,
			WaterLow:              1500,
			WaterOptimalMin:       2000,
			StressHigh:            7,
			StressModerate:        5,
		},
		Trends: trends.DefaultConfig(),
	}
}

// LoadTables overlays the YAML file at path onto DefaultTables. An empty path
// or a missing file yields the defaults.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tables, nil
		}
		return Tables{}, utils.NewAppError("engine.LoadTables", "read tables", err)
	}
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, utils.NewAppError("engine.LoadTables", "decode tables", err)
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, utils.NewAppError("engine.LoadTables", "invalid tables", err)
	}
	return tables, nil
}

// Validate checks that the tables build valid classifiers.
func (t Tables) Validate() error {
	if err := foodConfig(t.Food).Validate(); err != nil {
		return fmt.Errorf("food: %w", err)
	}
	if err := bodyTypeConfig(t.BodyType).Validate(); err != nil {
		return fmt.Errorf("body type: %w", err)
	}
	if err := t.Trends.Validate(); err != nil {
		return fmt.Errorf("trends: %w", err)
	}
	for _, classification := range models.BodyTypeClassifications() {
		if m, ok := t.Retention.Sensitivity[classification]; !ok || m <= 0 {
			return fmt.Errorf("retention: missing sensitivity for %s", classification)
		}
		if _, ok := t.BodyType.Profiles[classification]; !ok {
			return fmt.Errorf("body type: missing profile for %s", classification)
		}
		if _, ok := t.BodyType.Needs[classification]; !ok {
			return fmt.Errorf("body type: missing nutritional needs for %s", classification)
		}
	}
	if t.Retention.LowMax > t.Retention.ModerateMax {
		return fmt.Errorf("retention: lowMax %.1f above moderateMax %.1f", t.Retention.LowMax, t.Retention.ModerateMax)
	}
	return nil
}
