package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/classify"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

var neutralRetentionFactor = models.RetentionFactor{
	Type:           models.RetentionFactorHydration,
	Impact:         1,
	Description:    "All lifestyle factors are within optimal ranges.",
	Recommendation: "Continue maintaining your current healthy habits.",
}

// RetentionPredictor estimates water retention from the day's lifestyle signals.
type RetentionPredictor struct {
	table RetentionTable
}

// NewRetentionPredictor builds a predictor from the retention table.
func NewRetentionPredictor(table RetentionTable) *RetentionPredictor {
	return &RetentionPredictor{table: table}
}

// Predict scores every qualifying factor, scales the total by body-type
// sensitivity and bands the result.
func (p *RetentionPredictor) Predict(input models.LifestyleInput, bodyType models.BodyTypeClassification) models.RetentionPrediction {
	factors := p.Factors(input)

	total := 0
	for _, f := range factors {
		total += f.Impact
	}
	adjusted := float64(total) * p.Sensitivity(bodyType)

	level := models.RetentionHigh
	switch {
	case adjusted <= p.table.LowMax:
		level = models.RetentionLow
	case adjusted <= p.table.ModerateMax:
		level = models.RetentionModerate
	}

	primary := neutralRetentionFactor
	if len(factors) > 0 {
		primary = factors[0]
	}

	return models.RetentionPrediction{
		Level:               level,
		Confidence:          retentionConfidence(factors, adjusted),
		PrimaryFactor:       primary,
		ContributingFactors: factors,
		AdjustedScore:       adjusted,
		Explanation:         p.explain(level, primary, factors, bodyType),
	}
}

// Sensitivity returns the body-type multiplier, 1 for unknown types.
func (p *RetentionPredictor) Sensitivity(bodyType models.BodyTypeClassification) float64 {
	if m, ok := p.table.Sensitivity[bodyType]; ok && m > 0 {
		return m
	}
	return 1
}

// Factors returns the qualifying factors ordered by impact, highest first.
// Equal impacts keep generation order: sodium, hydration, sleep, stress.
func (p *RetentionPredictor) Factors(input models.LifestyleInput) []models.RetentionFactor {
	factors := make([]models.RetentionFactor, 0, 4)
	for _, gen := range []func(models.LifestyleInput) (models.RetentionFactor, bool){
		p.sodiumFactor,
		p.hydrationFactor,
		p.sleepFactor,
		p.stressFactor,
	} {
		if f, ok := gen(input); ok {
			factors = append(factors, f)
		}
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Impact > factors[j].Impact
	})
	return factors
}

func (p *RetentionPredictor) sodiumFactor(input models.LifestyleInput) (models.RetentionFactor, bool) {
	sodium := input.TotalSodium()
	switch {
	case sodium >= p.table.SodiumHigh:
		return models.RetentionFactor{
			Type:   models.RetentionFactorSodium,
			Impact: 3,
			Description: fmt.Sprintf("High sodium intake (%.0fmg) significantly increases water retention "+
				"as your body holds water to dilute sodium.", sodium),
			Recommendation: "Reduce sodium intake by choosing fresh foods over processed ones, " +
				"avoiding added salt, and reading nutrition labels carefully.",
		}, true
	case sodium >= p.table.SodiumModerate:
		return models.RetentionFactor{
			Type:        models.RetentionFactorSodium,
			Impact:      2,
			Description: fmt.Sprintf("Moderate sodium intake (%.0fmg) may contribute to some water retention.", sodium),
			Recommendation: "Consider reducing sodium intake slightly by limiting processed foods " +
				"and using herbs and spices for flavor instead of salt.",
		}, true
	}
	return models.RetentionFactor{}, false
}

func (p *RetentionPredictor) hydrationFactor(input models.LifestyleInput) (models.RetentionFactor, bool) {
	water := input.WaterIntake
	switch {
	case water < p.table.WaterLow:
		return models.RetentionFactor{
			Type:   models.RetentionFactorHydration,
			Impact: 2,
			Description: fmt.Sprintf("Low water intake (%.0fml) may cause your body to retain water "+
				"as a protective mechanism.", water),
			Recommendation: "Gradually increase water intake to 2000-3000ml per day. " +
				"Drink water consistently throughout the day.",
		}, true
	case water > p.table.WaterVeryHigh:
		return models.RetentionFactor{
			Type:   models.RetentionFactorHydration,
			Impact: 1,
			Description: fmt.Sprintf("Very high water intake (%.0fml) may contribute to slight water retention, "+
				"though this is less common.", water),
			Recommendation: "Consider moderating water intake to 2000-3500ml per day unless " +
				"advised otherwise by a healthcare provider.",
		}, true
	case water < p.table.WaterOptimalMin:
		return models.RetentionFactor{
			Type:   models.RetentionFactorHydration,
			Impact: 1,
			Description: fmt.Sprintf("Water intake (%.0fml) is slightly below optimal "+
				"and may contribute minimally to retention.", water),
			Recommendation: "Try to increase water intake slightly to reach 2000ml per day.",
		}, true
	}
	return models.RetentionFactor{}, false
}

func (p *RetentionPredictor) sleepFactor(input models.LifestyleInput) (models.RetentionFactor, bool) {
	sleep := input.SleepData
	if sleep == nil {
		return models.RetentionFactor{}, false
	}
	poorQuality := sleep.Quality <= p.table.SleepPoorQuality
	short := sleep.Duration < p.table.SleepShortHours

	switch {
	case poorQuality && short:
		return models.RetentionFactor{
			Type:   models.RetentionFactorSleep,
			Impact: 2,
			Description: fmt.Sprintf("Poor sleep quality (%d/10) and insufficient duration (%.1fh) disrupt "+
				"hormonal balance, leading to increased water retention.", sleep.Quality, sleep.Duration),
			Recommendation: "Prioritize 7-9 hours of quality sleep. Establish a consistent " +
				"bedtime routine and create a comfortable sleep environment.",
		}, true
	case poorQuality:
		return models.RetentionFactor{
			Type:   models.RetentionFactorSleep,
			Impact: 2,
			Description: fmt.Sprintf("Poor sleep quality (%d/10) can disrupt hormones that regulate "+
				"fluid balance, contributing to water retention.", sleep.Quality),
			Recommendation: "Focus on improving sleep quality through better sleep hygiene, " +
				"reducing screen time before bed, and managing stress.",
		}, true
	case short:
		return models.RetentionFactor{
			Type:           models.RetentionFactorSleep,
			Impact:         1,
			Description:    fmt.Sprintf("Insufficient sleep duration (%.1fh) may affect fluid regulation hormones.", sleep.Duration),
			Recommendation: "Aim for 7-9 hours of sleep per night to support healthy hormonal balance.",
		}, true
	}
	return models.RetentionFactor{}, false
}

func (p *RetentionPredictor) stressFactor(input models.LifestyleInput) (models.RetentionFactor, bool) {
	stress, ok := input.MaxIntensity(models.HabitStress)
	if !ok {
		return models.RetentionFactor{}, false
	}
	switch {
	case stress >= p.table.StressHigh:
		return models.RetentionFactor{
			Type:   models.RetentionFactorStress,
			Impact: 2,
			Description: fmt.Sprintf("High stress levels (intensity %d/10) trigger cortisol release, "+
				"which can increase water retention and bloating.", stress),
			Recommendation: "Practice stress management techniques such as meditation, " +
				"deep breathing, regular exercise, or talking to a counselor.",
		}, true
	case stress >= p.table.StressModerate:
		return models.RetentionFactor{
			Type:   models.RetentionFactorStress,
			Impact: 1,
			Description: fmt.Sprintf("Moderate stress levels (intensity %d/10) may contribute slightly "+
				"to water retention through cortisol.", stress),
			Recommendation: "Consider incorporating stress-reduction activities into your " +
				"daily routine, such as walking, yoga, or mindfulness.",
		}, true
	}
	return models.RetentionFactor{}, false
}

func (p *RetentionPredictor) explain(level models.RetentionLevel, primary models.RetentionFactor, factors []models.RetentionFactor, bodyType models.BodyTypeClassification) string {
	parts := []string{
		fmt.Sprintf("Based on your lifestyle factors, you are experiencing %s water retention.", level),
		fmt.Sprintf("The primary contributing factor is %s: %s", primary.Type, primary.Description),
	}

	others := make([]string, 0, len(factors))
	for i, f := range factors {
		if i == 0 || f.Impact < 2 {
			continue
		}
		others = append(others, string(f.Type))
	}
	if len(others) > 0 {
		parts = append(parts, fmt.Sprintf("Additional contributing factors include: %s.", strings.Join(others, ", ")))
	}

	switch sensitivity := p.Sensitivity(bodyType); {
	case sensitivity > 1:
		parts = append(parts, fmt.Sprintf("Your %s body type may have increased sensitivity to water retention factors.", bodyType))
	case sensitivity < 1:
		parts = append(parts, fmt.Sprintf("Your %s body type typically has lower sensitivity to water retention factors.", bodyType))
	}
	return strings.Join(parts, " ")
}

// retentionConfidence rewards a clearly dominant factor and extreme scores.
func retentionConfidence(factors []models.RetentionFactor, adjusted float64) float64 {
	if len(factors) == 0 {
		return 60
	}
	maxImpact := factors[0].Impact
	second, found := 0, false
	for _, f := range factors {
		if f.Impact != maxImpact && (!found || f.Impact > second) {
			second, found = f.Impact, true
		}
	}

	confidence := 85.0
	if found {
		confidence = 70 + 10*float64(maxImpact-second)
	}
	if adjusted <= 1 || adjusted >= 7 {
		confidence += 5
	}
	return classify.Clamp(confidence, 65, 95)
}
