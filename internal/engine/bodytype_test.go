package engine

import (
	"strings"
	"testing"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

func newBodyTypeProfiler(t *testing.T) *BodyTypeProfiler {
	t.Helper()
	p, err := NewBodyTypeProfiler(DefaultTables().BodyType)
	if err != nil {
		t.Fatalf("new body type profiler: %v", err)
	}
	return p
}

func TestBodyTypeDeclaredAndSupported(t *testing.T) {
	p := newBodyTypeProfiler(t)
	res := p.Resolve(models.BodyType{
		Classification:  models.BodyTypeMesomorph,
		Characteristics: []string{"Athletic build", "broad shoulders"},
	})
	if res.Category != "mesomorph" {
		t.Fatalf("expected mesomorph, got %s", res.Category)
	}
	if res.Confidence != 95 {
		t.Fatalf("expected confidence 95, got %v", res.Confidence)
	}
	want := "Resolved as mesomorph based on the declared body type, described traits (athletic, broad shoulders)."
	if res.Rationale != want {
		t.Fatalf("unexpected rationale %q", res.Rationale)
	}
}

func TestBodyTypeNoEvidenceResolvesMixed(t *testing.T) {
	p := newBodyTypeProfiler(t)
	res := p.Resolve(models.BodyType{})
	if res.Category != "mixed" {
		t.Fatalf("expected mixed, got %s", res.Category)
	}
	if res.Confidence != 60 {
		t.Fatalf("expected confidence 60, got %v", res.Confidence)
	}
	if len(res.DominantFactors) != 1 || res.DominantFactors[0] != "insufficient_evidence" {
		t.Fatalf("unexpected factors %v", res.DominantFactors)
	}
}

func TestBodyTypeCautionTowardsEndomorph(t *testing.T) {
	p := newBodyTypeProfiler(t)
	res := p.Resolve(models.BodyType{
		Classification:  models.BodyTypeEctomorph,
		Characteristics: []string{"stocky", "gains weight easily", "slow metabolism"},
	})
	if res.Category != "endomorph" {
		t.Fatalf("close call between ectomorph and endomorph should resolve to endomorph, got %s", res.Category)
	}
}

func TestBodyTypeAnalyzeTailorsGuidance(t *testing.T) {
	p := newBodyTypeProfiler(t)
	input := models.LifestyleInput{
		WaterIntake: 2000,
		FoodItems: []models.FoodItem{
			{Name: "pastry", NutritionalInfo: models.NutritionalInfo{Calories: 450, Carbohydrates: 150, Sugar: 35}},
			{Name: "soda", NutritionalInfo: models.NutritionalInfo{Calories: 150, Carbohydrates: 80, Sugar: 39}},
		},
	}
	insight := p.Analyze(models.BodyType{Classification: models.BodyTypeEndomorph}, input)

	if insight.Classification != models.BodyTypeEndomorph {
		t.Fatalf("expected endomorph, got %s", insight.Classification)
	}
	if insight.MetabolicProfile.BaseMetabolicRate != models.MetabolicSlow {
		t.Fatalf("expected slow metabolism, got %s", insight.MetabolicProfile.BaseMetabolicRate)
	}
	if !strings.Contains(insight.MetabolicResponse, "carbohydrate intake is relatively high") {
		t.Fatalf("expected high-carb note, got %q", insight.MetabolicResponse)
	}
	if !strings.Contains(insight.EnergyUtilization, "sugar intake is high") {
		t.Fatalf("expected high-sugar note, got %q", insight.EnergyUtilization)
	}
	if len(insight.LifestyleRecommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(insight.LifestyleRecommendations))
	}
	if insight.NutritionalNeeds.ProteinRatio != 35 {
		t.Fatalf("unexpected needs %+v", insight.NutritionalNeeds)
	}
}

func TestBodyTypeMesomorphMacroAction(t *testing.T) {
	p := newBodyTypeProfiler(t)
	insight := p.Analyze(models.BodyType{Classification: models.BodyTypeMesomorph}, models.LifestyleInput{})
	if got := insight.LifestyleRecommendations[0].Action; got != "Maintain balanced macronutrient ratios (30% protein, 40% carbs, 30% fat)" {
		t.Fatalf("unexpected action %q", got)
	}
}
