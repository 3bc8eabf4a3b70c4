package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/classify"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

const (
	featNutrientDensity   = "nutrient_density"
	featProcessing        = "processing"
	featPreservativeLoad  = "preservative_load"
	featSugar             = "sugar"
	featSodium            = "sodium"
	featPreservativeCount = "preservative_count"
	featProcessingLevel   = "processing_level"
	featSugarGrams        = "sugar_g"
	featSodiumMilligrams  = "sodium_mg"
	featFiberGrams        = "fiber_g"

	labelPreservatives = "preservatives"
)

// FoodClassifier sorts food items into healthy, junk or preservative-heavy.
type FoodClassifier struct {
	table FoodTable
	cfg   classify.Config
}

// NewFoodClassifier builds a classifier from the food table.
func NewFoodClassifier(table FoodTable) (*FoodClassifier, error) {
	cfg := foodConfig(table)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("food classifier: %w", err)
	}
	return &FoodClassifier{table: table, cfg: cfg}, nil
}

// Classify assigns a category, confidence and rationale to one food item.
func (c *FoodClassifier) Classify(item models.FoodItem) models.FoodClassification {
	res := classify.Classify(c.Features(item), c.cfg)
	return models.FoodClassification{
		Food:            item.Name,
		Category:        models.FoodCategory(res.Category),
		Confidence:      res.Confidence,
		Rationale:       res.Rationale,
		DominantFactors: res.DominantFactors,
	}
}

// FSIParameters extracts the normalised nutrition sub-factors of an item.
func (c *FoodClassifier) FSIParameters(item models.FoodItem) models.FSIParameters {
	n := item.NutritionalInfo
	t := c.table

	density := 0.0
	if n.Calories > t.CalorieFloor {
		density = math.Min(1, (n.Protein+n.Fiber)/(n.Calories/100))
	}
	return models.FSIParameters{
		NutrientDensity:  density,
		ProcessingScore:  float64(5-n.ProcessingLevel) / 4,
		PreservativeLoad: math.Min(1, float64(len(n.Preservatives))/t.PreservativeScale),
		SugarContent:     math.Min(1, n.Sugar/t.SugarScale),
		SodiumLevel:      math.Min(1, n.Sodium/t.SodiumScale),
	}
}

// Features builds the classifier's feature record for an item.
func (c *FoodClassifier) Features(item models.FoodItem) classify.Features {
	n := item.NutritionalInfo
	fsi := c.FSIParameters(item)
	return classify.NewFeatures(
		map[string]float64{
			featNutrientDensity:   fsi.NutrientDensity,
			featProcessing:        fsi.ProcessingScore,
			featPreservativeLoad:  fsi.PreservativeLoad,
			featSugar:             fsi.SugarContent,
			featSodium:            fsi.SodiumLevel,
			featPreservativeCount: float64(len(n.Preservatives)),
			featProcessingLevel:   float64(n.ProcessingLevel),
			featSugarGrams:        n.Sugar,
			featSodiumMilligrams:  n.Sodium,
			featFiberGrams:        n.Fiber,
		},
		map[string][]string{labelPreservatives: n.Preservatives},
	)
}

func foodConfig(t FoodTable) classify.Config {
	healthy := classify.Category(models.FoodHealthy)
	junk := classify.Category(models.FoodJunk)
	heavy := classify.Category(models.FoodPreservativeHeavy)

	return classify.Config{
		Categories: []classify.CategoryConfig{
			{
				Category: healthy,
				Terms:    t.Healthy,
				Rationale: classify.Rationale{
					Prefix:   "Classified as healthy due to ",
					Fallback: "its overall nutritional composition",
					Rules: []classify.Rule{
						{
							Factor: "nutrient_density",
							When:   func(f classify.Features) bool { return f.Value(featNutrientDensity) >= t.NutrientDensityHigh },
							Phrase: fixed("high nutrient density"),
						},
						{
							Factor: "low_processing",
							When:   func(f classify.Features) bool { return f.Value(featProcessingLevel) <= float64(t.MinimalProcessing) },
							Phrase: fixed("minimal processing"),
						},
						{
							Factor: "no_preservatives",
							When:   func(f classify.Features) bool { return f.Value(featPreservativeCount) == 0 },
							Phrase: fixed("no preservatives"),
						},
						{
							Factor: "fiber",
							When:   func(f classify.Features) bool { return f.Value(featFiberGrams) >= t.GoodFiber },
							Phrase: fixed("good fiber content"),
						},
					},
				},
			},
			{
				Category: junk,
				Terms:    t.Junk,
				Rationale: classify.Rationale{
					Prefix:   "Classified as junk food due to ",
					Fallback: "its overall nutritional composition",
					Rules: []classify.Rule{
						{
							Factor: "high_sugar",
							When:   func(f classify.Features) bool { return f.Value(featSugarGrams) > t.HighSugar },
							Phrase: func(f classify.Features) string {
								return "high sugar content (" + formatAmount(f.Value(featSugarGrams)) + "g)"
							},
						},
						{
							Factor: "high_sodium",
							When:   func(f classify.Features) bool { return f.Value(featSodiumMilligrams) > t.HighSodium },
							Phrase: func(f classify.Features) string {
								return "high sodium (" + formatAmount(f.Value(featSodiumMilligrams)) + "mg)"
							},
						},
						{
							Factor: "high_processing",
							When:   func(f classify.Features) bool { return f.Value(featProcessingLevel) >= float64(t.HighProcessing) },
							Phrase: fixed("highly processed"),
						},
						{
							Factor: "low_nutrients",
							When:   func(f classify.Features) bool { return f.Value(featNutrientDensity) < t.NutrientDensityLow },
							Phrase: fixed("low nutritional value"),
						},
					},
				},
			},
			{
				Category: heavy,
				Terms:    t.PreservativeHeavy,
				Rationale: classify.Rationale{
					Prefix:   "Classified as preservative-heavy due to ",
					Fallback: "its additive profile",
					Rules: []classify.Rule{
						{
							Factor: "preservatives",
							Phrase: func(f classify.Features) string {
								return preservativePhrase(f.Labels(labelPreservatives), t.PreservativeListLimit)
							},
						},
						{
							Factor: "high_processing",
							When:   func(f classify.Features) bool { return f.Value(featProcessingLevel) >= float64(t.HighProcessing) },
						},
					},
				},
			},
		},
		Overrides: t.Overrides,
		TieBreak: classify.TieBreak{
			Lenient:  healthy,
			Stricter: []classify.Category{junk},
			Margin:   t.TieMargin,
		},
	}
}

func preservativePhrase(preservatives []string, limit int) string {
	if len(preservatives) == 0 {
		return ""
	}
	if limit <= 0 {
		limit = len(preservatives)
	}
	shown := preservatives
	if len(shown) > limit {
		shown = shown[:limit]
	}
	list := strings.Join(shown, ", ")
	if extra := len(preservatives) - len(shown); extra > 0 {
		list += fmt.Sprintf(", and %d more", extra)
	}
	return fmt.Sprintf("%d preservatives detected: %s", len(preservatives), list)
}

func fixed(phrase string) func(classify.Features) string {
	return func(classify.Features) string { return phrase }
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
