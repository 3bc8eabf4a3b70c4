package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/classify"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// bodyTypeOrder puts mixed first so that an input with no evidence at all
// resolves to mixed.
var bodyTypeOrder = []models.BodyTypeClassification{
	models.BodyTypeMixed,
	models.BodyTypeEctomorph,
	models.BodyTypeMesomorph,
	models.BodyTypeEndomorph,
}

func declaredFeature(c models.BodyTypeClassification) string { return "declared_" + string(c) }
func evidenceFeature(c models.BodyTypeClassification) string { return "evidence_" + string(c) }
func traitsLabel(c models.BodyTypeClassification) string { return "traits_" + string(c) }

// BodyTypeProfiler resolves a body type from the declared classification and
// described traits, then tailors metabolic guidance to the day's intake.
type BodyTypeProfiler struct {
	table BodyTypeTable
	cfg   classify.Config
}

// NewBodyTypeProfiler builds a profiler from the body-type table.
func NewBodyTypeProfiler(table BodyTypeTable) (*BodyTypeProfiler, error) {
	cfg := bodyTypeConfig(table)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("body type profiler: %w", err)
	}
	return &BodyTypeProfiler{table: table, cfg: cfg}, nil
}

// Resolve classifies the body type from declaration and trait evidence.
func (p *BodyTypeProfiler) Resolve(bodyType models.BodyType) classify.Result {
	return classify.Classify(p.Features(bodyType), p.cfg)
}

// Features builds the evidence record for a body type declaration.
func (p *BodyTypeProfiler) Features(bodyType models.BodyType) classify.Features {
	values := make(map[string]float64, 2*len(bodyTypeOrder))
	labels := make(map[string][]string, len(bodyTypeOrder))

	text := strings.ToLower(strings.Join(bodyType.Characteristics, " | "))
	saturation := float64(p.table.EvidenceSaturation)
	if saturation <= 0 {
		saturation = 1
	}

	for _, c := range bodyTypeOrder {
		declared := 0.0
		if bodyType.Classification == c {
			declared = 1
		}
		values[declaredFeature(c)] = declared

		matched := make([]string, 0)
		for _, keyword := range p.table.Traits[c] {
			if keyword != "" && strings.Contains(text, strings.ToLower(keyword)) {
				matched = append(matched, keyword)
			}
		}
		values[evidenceFeature(c)] = math.Min(1, float64(len(matched))/saturation)
		labels[traitsLabel(c)] = matched
	}
	return classify.NewFeatures(values, labels)
}

// Profile returns the metabolic profile of a body type.
func (p *BodyTypeProfiler) Profile(c models.BodyTypeClassification) models.MetabolicProfile {
	if profile, ok := p.table.Profiles[c]; ok {
		return profile
	}
	return p.table.Profiles[models.BodyTypeMixed]
}

// Needs returns the nutritional needs of a body type.
func (p *BodyTypeProfiler) Needs(c models.BodyTypeClassification) models.NutritionalNeeds {
	if needs, ok := p.table.Needs[c]; ok {
		return needs
	}
	return p.table.Needs[models.BodyTypeMixed]
}

// Analyze resolves the body type and tailors guidance to the day's intake.
func (p *BodyTypeProfiler) Analyze(bodyType models.BodyType, input models.LifestyleInput) models.BodyTypeInsight {
	res := p.Resolve(bodyType)
	c := models.BodyTypeClassification(res.Category)
	return models.BodyTypeInsight{
		Classification:           c,
		Confidence:               res.Confidence,
		Rationale:                res.Rationale,
		MetabolicProfile:         p.Profile(c),
		MetabolicResponse:        p.metabolicResponse(c, input),
		FatStoragePattern:        fatStoragePattern(c),
		EnergyUtilization:        p.energyUtilization(c, input),
		NutritionalNeeds:         p.Needs(c),
		LifestyleRecommendations: p.recommendations(c, input),
	}
}

func (p *BodyTypeProfiler) metabolicResponse(c models.BodyTypeClassification, input models.LifestyleInput) string {
	switch c {
	case models.BodyTypeEctomorph:
		text := "Your fast metabolism means your body burns calories quickly. " +
			"Lifestyle changes like increased food intake will be processed rapidly, " +
			"requiring consistent high-calorie consumption to maintain or gain weight."
		if input.TotalCalories() < p.table.LowCalories {
			text += " Your current calorie intake may be insufficient for your metabolic rate. " +
				"Consider increasing meal frequency and portion sizes."
		}
		return text
	case models.BodyTypeMesomorph:
		text := "Your moderate metabolism provides balanced energy processing. " +
			"Your body responds efficiently to lifestyle changes, allowing for " +
			"effective weight management and muscle development with appropriate nutrition."
		if len(input.FoodItems) > 0 && input.TotalProtein() < p.table.LowProtein {
			text += " Increasing protein intake could enhance your natural muscle-building potential."
		}
		return text
	case models.BodyTypeEndomorph:
		text := "Your slower metabolism means your body conserves energy efficiently. " +
			"Lifestyle changes require careful attention to portion control and food quality, " +
			"as your body tends to store excess calories more readily."
		if input.TotalCarbohydrates() > p.table.HighCarbs {
			text += " Your current carbohydrate intake is relatively high. " +
				"Consider moderating carb portions and focusing on complex carbohydrates."
		}
		return text
	default:
		return "Your mixed body type exhibits characteristics of multiple classifications. " +
			"Your metabolism shows moderate efficiency with balanced responses to dietary changes. " +
			"Focus on finding the right balance of macronutrients that works for your unique physiology."
	}
}

func fatStoragePattern(c models.BodyTypeClassification) string {
	switch c {
	case models.BodyTypeEctomorph:
		return "Your body has a low tendency to store fat. " +
			"Even with higher calorie intake, fat accumulation is minimal. " +
			"This means you can tolerate more dietary flexibility, but it also " +
			"makes it challenging to build energy reserves."
	case models.BodyTypeMesomorph:
		return "Your body stores fat in a balanced manner, typically distributed evenly. " +
			"You can gain or lose fat relatively easily with dietary adjustments. " +
			"Maintaining a balanced diet helps prevent unwanted fat accumulation " +
			"while supporting muscle development."
	case models.BodyTypeEndomorph:
		return "Your body has a higher tendency to store fat, particularly around the midsection. " +
			"This is an evolutionary advantage for energy storage, but requires mindful " +
			"eating habits to maintain desired body composition. " +
			"Focus on nutrient-dense, lower-calorie foods and consistent meal timing."
	default:
		return "Your fat storage pattern shows mixed characteristics. " +
			"You may store fat moderately, with distribution varying based on lifestyle factors. " +
			"Pay attention to how your body responds to different foods and adjust accordingly."
	}
}

func (p *BodyTypeProfiler) energyUtilization(c models.BodyTypeClassification, input models.LifestyleInput) string {
	switch c {
	case models.BodyTypeEctomorph:
		text := "Your body utilizes energy rapidly, burning through calories quickly. " +
			"You may experience energy fluctuations if meals are spaced too far apart. " +
			"Frequent, smaller meals help maintain stable energy levels throughout the day."
		if len(input.FoodItems) < p.table.MinMeals {
			text += " Consider increasing meal frequency to 4-6 smaller meals to maintain consistent energy."
		}
		return text
	case models.BodyTypeMesomorph:
		return "Your body utilizes energy efficiently with good balance between " +
			"immediate use and storage. You maintain stable energy levels with " +
			"regular meals and respond well to varied macronutrient ratios."
	case models.BodyTypeEndomorph:
		text := "Your body is efficient at conserving energy, which can lead to " +
			"feeling sluggish if consuming too many simple carbohydrates. " +
			"Focus on complex carbs and protein to maintain steady energy levels " +
			"without excess storage."
		if input.TotalSugar() > p.table.HighSugar {
			text += " Your current sugar intake is high, which may cause energy crashes. " +
				"Reducing sugar and increasing protein can help stabilize energy."
		}
		return text
	default:
		return "Your energy utilization shows moderate efficiency. " +
			"You benefit from balanced meals with a mix of macronutrients " +
			"to maintain stable energy throughout the day."
	}
}

func (p *BodyTypeProfiler) recommendations(c models.BodyTypeClassification, input models.LifestyleInput) []models.Recommendation {
	recs := make([]models.Recommendation, 0, 3)
	switch c {
	case models.BodyTypeEctomorph:
		recs = append(recs,
			models.Recommendation{
				Priority:       models.PriorityHigh,
				Action:         "Increase calorie intake with nutrient-dense foods",
				Rationale:      "Your fast metabolism requires higher calorie consumption to maintain energy and support body functions",
				ExpectedImpact: "Better energy stability, reduced fatigue, and easier weight maintenance",
			},
			models.Recommendation{
				Priority:       models.PriorityMedium,
				Action:         "Eat frequent, smaller meals (5-6 per day)",
				Rationale:      "Frequent meals help maintain stable blood sugar and energy levels given your rapid metabolism",
				ExpectedImpact: "More consistent energy throughout the day, reduced hunger spikes",
			},
		)
		if input.WaterIntake < p.table.WaterTarget {
			recs = append(recs, models.Recommendation{
				Priority:       models.PriorityMedium,
				Action:         "Increase water intake to 2.5-3 liters daily",
				Rationale:      "Higher calorie intake and fast metabolism require adequate hydration",
				ExpectedImpact: "Better nutrient absorption and metabolic function",
			})
		}
	case models.BodyTypeMesomorph:
		needs := p.Needs(c)
		recs = append(recs, models.Recommendation{
			Priority: models.PriorityHigh,
			Action: fmt.Sprintf("Maintain balanced macronutrient ratios (%.0f%% protein, %.0f%% carbs, %.0f%% fat)",
				needs.ProteinRatio, needs.CarbRatio, needs.FatRatio),
			Rationale:      "Your body responds well to balanced nutrition, supporting both muscle maintenance and energy needs",
			ExpectedImpact: "Optimal body composition, sustained energy, and efficient recovery",
		})
		if input.TotalProtein() < p.table.ProteinTarget {
			recs = append(recs, models.Recommendation{
				Priority:       models.PriorityMedium,
				Action:         "Increase protein intake to support muscle maintenance",
				Rationale:      "Your body type has high muscle-building potential that benefits from adequate protein",
				ExpectedImpact: "Better muscle tone, improved recovery, and sustained metabolism",
			})
		}
	case models.BodyTypeEndomorph:
		recs = append(recs,
			models.Recommendation{
				Priority:       models.PriorityHigh,
				Action:         "Focus on portion control and lower carbohydrate intake",
				Rationale:      "Your slower metabolism and higher carb sensitivity mean excess carbohydrates are more readily stored as fat",
				ExpectedImpact: "Better weight management, more stable energy, reduced fat storage",
			},
			models.Recommendation{
				Priority:       models.PriorityHigh,
				Action:         "Prioritize protein and healthy fats in meals",
				Rationale:      "Higher protein and fat ratios help maintain satiety and support metabolism without excess carbohydrate storage",
				ExpectedImpact: "Reduced hunger, better blood sugar control, improved body composition",
			},
		)
		if input.TotalSugar() > p.table.SugarLimit {
			recs = append(recs, models.Recommendation{
				Priority:       models.PriorityMedium,
				Action:         "Reduce sugar intake and choose complex carbohydrates",
				Rationale:      "Your body type is more sensitive to simple sugars, which can lead to energy crashes and increased fat storage",
				ExpectedImpact: "More stable energy levels, reduced cravings, better weight control",
			})
		}
	default:
		recs = append(recs,
			models.Recommendation{
				Priority:       models.PriorityHigh,
				Action:         "Experiment with macronutrient ratios to find your optimal balance",
				Rationale:      "Mixed body types benefit from personalized nutrition that may vary from standard recommendations",
				ExpectedImpact: "Discovery of your unique nutritional needs for optimal energy and composition",
			},
			models.Recommendation{
				Priority:       models.PriorityMedium,
				Action:         "Track how different foods affect your energy and body composition",
				Rationale:      "Understanding your individual responses helps tailor your diet effectively",
				ExpectedImpact: "Better self-awareness and more effective dietary choices",
			},
		)
	}
	return recs
}

func bodyTypeConfig(t BodyTypeTable) classify.Config {
	categories := make([]classify.CategoryConfig, 0, len(bodyTypeOrder))
	overrides := make([]classify.Override, 0, len(bodyTypeOrder))

	for _, c := range bodyTypeOrder {
		c := c
		categories = append(categories, classify.CategoryConfig{
			Category: classify.Category(c),
			Terms: []classify.Term{
				{Feature: declaredFeature(c), Weight: t.DeclaredWeight},
				{Feature: evidenceFeature(c), Weight: t.EvidenceWeight},
			},
			Rationale: classify.Rationale{
				Prefix:   fmt.Sprintf("Resolved as %s based on ", c),
				Fallback: "the absence of distinguishing characteristics",
				Rules: []classify.Rule{
					{
						Factor: "declared_type",
						When:   func(f classify.Features) bool { return f.Value(declaredFeature(c)) > 0 },
						Phrase: fixed("the declared body type"),
					},
					{
						Factor: "trait_evidence",
						When:   func(f classify.Features) bool { return f.Value(evidenceFeature(c)) > 0 },
						Phrase: func(f classify.Features) string {
							return "described traits (" + strings.Join(f.Labels(traitsLabel(c)), ", ") + ")"
						},
					},
				},
			},
		})
		overrides = append(overrides, classify.Override{
			Name:      "declared_" + string(c),
			Feature:   declaredFeature(c),
			Op:        classify.AtLeast,
			Threshold: 1,
			Category:  classify.Category(c),
			Floor:     t.DeclaredFloor,
		})
	}

	return classify.Config{
		Categories:     categories,
		Overrides:      overrides,
		FallbackFactor: "insufficient_evidence",
		TieBreak: classify.TieBreak{
			Lenient:  classify.Category(models.BodyTypeEctomorph),
			Stricter: []classify.Category{classify.Category(models.BodyTypeEndomorph)},
			Margin:   t.TieMargin,
		},
	}
}
