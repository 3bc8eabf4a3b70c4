package engine

import (
	"strings"
	"testing"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

func retentionScenario() models.LifestyleInput {
	return models.LifestyleInput{
		FoodItems: []models.FoodItem{
			{Name: "ramen", NutritionalInfo: models.NutritionalInfo{Sodium: 1800}},
			{Name: "pickles", NutritionalInfo: models.NutritionalInfo{Sodium: 700}},
		},
		WaterIntake: 1000,
		SleepData:   &models.SleepData{Duration: 5, Quality: 3},
		DailyHabits: []models.Habit{{Type: models.HabitStress, Intensity: 8}},
	}
}

func TestRetentionPredictorScenario(t *testing.T) {
	p := NewRetentionPredictor(DefaultTables().Retention)
	got := p.Predict(retentionScenario(), models.BodyTypeEndomorph)

	if got.Level != models.RetentionHigh {
		t.Fatalf("expected high retention, got %s", got.Level)
	}
	if got.PrimaryFactor.Type != models.RetentionFactorSodium || got.PrimaryFactor.Impact != 3 {
		t.Fatalf("expected sodium primary factor, got %+v", got.PrimaryFactor)
	}
	if len(got.ContributingFactors) != 4 {
		t.Fatalf("expected 4 factors, got %d", len(got.ContributingFactors))
	}
	order := []models.RetentionFactorType{
		models.RetentionFactorSodium, models.RetentionFactorHydration, models.RetentionFactorSleep, models.RetentionFactorStress,
	}
	for i, want := range order {
		if got.ContributingFactors[i].Type != want {
			t.Fatalf("factor %d: expected %s, got %s", i, want, got.ContributingFactors[i].Type)
		}
	}
	if got.AdjustedScore < 11.69 || got.AdjustedScore > 11.71 {
		t.Fatalf("expected adjusted score 11.7, got %v", got.AdjustedScore)
	}
	if got.Confidence != 85 {
		t.Fatalf("expected confidence 85, got %v", got.Confidence)
	}
	if !strings.Contains(got.Explanation, "Additional contributing factors include: hydration, sleep, stress.") {
		t.Fatalf("explanation missing secondary factors: %q", got.Explanation)
	}
	if !strings.Contains(got.Explanation, "Your endomorph body type may have increased sensitivity") {
		t.Fatalf("explanation missing sensitivity note: %q", got.Explanation)
	}
}

func TestRetentionPredictorNeutral(t *testing.T) {
	p := NewRetentionPredictor(DefaultTables().Retention)
	got := p.Predict(models.LifestyleInput{WaterIntake: 2500}, models.BodyTypeMesomorph)

	if got.Level != models.RetentionLow {
		t.Fatalf("expected low retention, got %s", got.Level)
	}
	if got.Confidence != 60 {
		t.Fatalf("expected confidence 60, got %v", got.Confidence)
	}
	if got.PrimaryFactor.Description != neutralRetentionFactor.Description {
		t.Fatalf("expected neutral primary factor, got %+v", got.PrimaryFactor)
	}
	if len(got.ContributingFactors) != 0 {
		t.Fatalf("expected no factors, got %v", got.ContributingFactors)
	}
}

func TestRetentionSensitivity(t *testing.T) {
	p := NewRetentionPredictor(DefaultTables().Retention)
	cases := map[models.BodyTypeClassification]float64{
		models.BodyTypeEctomorph: 0.8,
		models.BodyTypeEndomorph: 1.3,
		"unknown":                1,
	}
	for bodyType, want := range cases {
		if got := p.Sensitivity(bodyType); got != want {
			t.Fatalf("sensitivity(%s) = %v, want %v", bodyType, got, want)
		}
	}
}

func TestRetentionHydrationBands(t *testing.T) {
	p := NewRetentionPredictor(DefaultTables().Retention)
	cases := []struct {
		water  float64
		impact int
		ok     bool
	}{
		{1000, 2, true},
		{1800, 1, true},
		{2500, 0, false},
		{5000, 1, true},
	}
	for _, tc := range cases {
		f, ok := p.hydrationFactor(models.LifestyleInput{WaterIntake: tc.water})
		if ok != tc.ok || f.Impact != tc.impact {
			t.Fatalf("water %v: got impact %d ok %v", tc.water, f.Impact, ok)
		}
	}
}

func TestRetentionConfidence(t *testing.T) {
	single := []models.RetentionFactor{{Impact: 2}, {Impact: 2}}
	if got := retentionConfidence(single, 4); got != 85 {
		t.Fatalf("single distinct impact: got %v", got)
	}
	spread := []models.RetentionFactor{{Impact: 3}, {Impact: 1}}
	if got := retentionConfidence(spread, 4); got != 90 {
		t.Fatalf("spread impacts: got %v", got)
	}
	if got := retentionConfidence(spread, 8); got != 95 {
		t.Fatalf("extreme score should be clamped to 95, got %v", got)
	}
}
