package engine

import (
	"strings"
	"testing"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

func newFoodClassifier(t *testing.T) *FoodClassifier {
	t.Helper()
	c, err := NewFoodClassifier(DefaultTables().Food)
	if err != nil {
		t.Fatalf("new food classifier: %v", err)
	}
	return c
}

func TestFoodClassifierHealthy(t *testing.T) {
	c := newFoodClassifier(t)
	got := c.Classify(models.FoodItem{
		Name: "spinach salad",
		NutritionalInfo: models.NutritionalInfo{
			Calories: 100, Protein: 5, Fiber: 5, Sugar: 2, Sodium: 50, ProcessingLevel: 1,
		},
	})
	if got.Category != models.FoodHealthy {
		t.Fatalf("expected healthy, got %s", got.Category)
	}
	if got.Confidence < 60 || got.Confidence > 95 {
		t.Fatalf("confidence out of range: %v", got.Confidence)
	}
	want := "Classified as healthy due to high nutrient density, minimal processing, no preservatives, good fiber content."
	if got.Rationale != want {
		t.Fatalf("unexpected rationale %q", got.Rationale)
	}
	if len(got.DominantFactors) != 4 || got.DominantFactors[0] != "nutrient_density" {
		t.Fatalf("unexpected factors %v", got.DominantFactors)
	}
}

func TestFoodClassifierJunkFloors(t *testing.T) {
	c := newFoodClassifier(t)
	got := c.Classify(models.FoodItem{
		Name: "potato chips",
		NutritionalInfo: models.NutritionalInfo{
			Calories: 500, Protein: 6, Fiber: 3, Sugar: 1, Sodium: 700, ProcessingLevel: 4,
			Preservatives: []string{"BHT"},
		},
	})
	if got.Category != models.FoodJunk {
		t.Fatalf("expected junk, got %s", got.Category)
	}
	if got.Rationale != "Classified as junk food due to high sodium (700mg), highly processed." {
		t.Fatalf("unexpected rationale %q", got.Rationale)
	}
}

func TestFoodClassifierPreservativeOverrideForces(t *testing.T) {
	c := newFoodClassifier(t)
	got := c.Classify(models.FoodItem{
		Name: "packaged bread",
		NutritionalInfo: models.NutritionalInfo{
			Calories: 250, Protein: 8, Fiber: 4, Sugar: 3, Sodium: 300, ProcessingLevel: 3,
			Preservatives: []string{"calcium propionate", "sorbic acid", "sodium benzoate", "BHA"},
		},
	})
	if got.Category != models.FoodPreservativeHeavy {
		t.Fatalf("expected preservative_heavy, got %s", got.Category)
	}
	want := "Classified as preservative-heavy due to 4 preservatives detected: calcium propionate, sorbic acid, sodium benzoate, and 1 more."
	if got.Rationale != want {
		t.Fatalf("unexpected rationale %q", got.Rationale)
	}
	if len(got.DominantFactors) != 1 || got.DominantFactors[0] != "preservatives" {
		t.Fatalf("unexpected factors %v", got.DominantFactors)
	}
}

func TestFoodClassifierDeterministic(t *testing.T) {
	c := newFoodClassifier(t)
	item := models.FoodItem{
		Name:            "granola bar",
		NutritionalInfo: models.NutritionalInfo{Calories: 190, Protein: 3, Fiber: 2, Sugar: 12, Sodium: 120, ProcessingLevel: 3},
	}
	first := c.Classify(item)
	for i := 0; i < 10; i++ {
		again := c.Classify(item)
		if again.Category != first.Category || again.Confidence != first.Confidence || again.Rationale != first.Rationale {
			t.Fatalf("classification not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestFSIParameters(t *testing.T) {
	c := newFoodClassifier(t)
	fsi := c.FSIParameters(models.FoodItem{NutritionalInfo: models.NutritionalInfo{
		Calories: 0, Sugar: 60, Sodium: 500, ProcessingLevel: 5, Preservatives: []string{"a", "b"},
	}})
	if fsi.NutrientDensity != 0 {
		t.Fatalf("zero calories should give zero density, got %v", fsi.NutrientDensity)
	}
	if fsi.ProcessingScore != 0 {
		t.Fatalf("level 5 should give processing score 0, got %v", fsi.ProcessingScore)
	}
	if fsi.SugarContent != 1 || fsi.SodiumLevel != 0.5 || fsi.PreservativeLoad != 0.4 {
		t.Fatalf("unexpected parameters %+v", fsi)
	}
}

func TestPreservativePhrase(t *testing.T) {
	if got := preservativePhrase(nil, 3); got != "" {
		t.Fatalf("expected empty phrase, got %q", got)
	}
	if got := preservativePhrase([]string{"a", "b"}, 3); got != "2 preservatives detected: a, b" {
		t.Fatalf("unexpected phrase %q", got)
	}
	if got := preservativePhrase([]string{"a", "b", "c", "d", "e"}, 3); !strings.HasSuffix(got, "c, and 2 more") {
		t.Fatalf("unexpected phrase %q", got)
	}
}
