package engine

import (
	"strings"
	"testing"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

func at(hour, minute int) *models.ClockTime {
	c := models.NewClockTime(hour, minute)
	return &c
}

func TestSleepOverallQuality(t *testing.T) {
	a := NewSleepAnalyzer(DefaultTables().Sleep)
	cases := []struct {
		name  string
		sleep models.SleepData
		want  models.SleepQuality
	}{
		{"excellent", models.SleepData{Quality: 8, Duration: 8}, models.SleepExcellent},
		{"short night", models.SleepData{Quality: 8, Duration: 5}, models.SleepGood},
		{"long night keeps good", models.SleepData{Quality: 7, Duration: 11}, models.SleepGood},
		{"fragmented", models.SleepData{Quality: 7, Duration: 8, Interruptions: 3}, models.SleepFair},
		{"short and fragmented", models.SleepData{Quality: 9, Duration: 5, Interruptions: 4}, models.SleepFair},
		{"poor", models.SleepData{Quality: 3, Duration: 8}, models.SleepPoor},
	}
	for _, tc := range cases {
		if got := a.OverallQuality(tc.sleep); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestSleepAnalyzeStressAndCaffeine(t *testing.T) {
	a := NewSleepAnalyzer(DefaultTables().Sleep)
	sleep := models.SleepData{Duration: 6.5, Quality: 5, Bedtime: models.NewClockTime(23, 0), WakeTime: models.NewClockTime(5, 30)}
	input := models.LifestyleInput{
		WaterIntake: 2500,
		DailyHabits: []models.Habit{
			{Type: models.HabitCaffeine, Intensity: 6, Timing: at(20, 0)},
			{Type: models.HabitStress, Intensity: 8},
		},
	}

	got := a.Analyze(sleep, input)
	if got.OverallQuality != models.SleepFair {
		t.Fatalf("expected fair, got %s", got.OverallQuality)
	}
	if len(got.Disruptors) != 2 {
		t.Fatalf("expected 2 disruptors, got %+v", got.Disruptors)
	}
	if got.Disruptors[0].Type != models.DisruptorStress || got.Disruptors[1].Type != models.DisruptorCaffeine {
		t.Fatalf("disruptors should be ordered by severity: %+v", got.Disruptors)
	}
	if got.Disruptors[1].Severity != 7 {
		t.Fatalf("caffeine three hours before bed should score 7, got %d", got.Disruptors[1].Severity)
	}

	if len(got.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(got.Recommendations))
	}
	if got.Recommendations[2].Action != consistentScheduleRecommendation.Action {
		t.Fatalf("medium priority schedule advice should come last, got %q", got.Recommendations[2].Action)
	}
	if !strings.Contains(got.Explanation, "The primary factor affecting your sleep was: High stress levels (intensity 8/10).") {
		t.Fatalf("unexpected explanation %q", got.Explanation)
	}
	if !strings.Contains(got.Explanation, "Caffeine consumption 3.0 hours before bed") {
		t.Fatalf("explanation should list caffeine as an additional factor: %q", got.Explanation)
	}
}

func TestSleepEarlyCaffeineIsNeutral(t *testing.T) {
	a := NewSleepAnalyzer(DefaultTables().Sleep)
	sleep := models.SleepData{Duration: 8, Quality: 8, Bedtime: models.NewClockTime(22, 30)}
	input := models.LifestyleInput{
		WaterIntake: 2500,
		DailyHabits: []models.Habit{{Type: models.HabitCaffeine, Intensity: 4, Timing: at(8, 0)}},
	}
	got := a.Analyze(sleep, input)
	if len(got.Correlations) != 1 || got.Correlations[0].Impact != models.ImpactNeutral {
		t.Fatalf("expected one neutral correlation, got %+v", got.Correlations)
	}
	if len(got.Disruptors) != 0 || len(got.Recommendations) != 0 {
		t.Fatalf("expected no disruptors or recommendations, got %+v / %+v", got.Disruptors, got.Recommendations)
	}
	if !strings.HasSuffix(got.Explanation, "No significant lifestyle factors were identified as negatively impacting your sleep.") {
		t.Fatalf("unexpected explanation %q", got.Explanation)
	}
}

func TestSleepScreenTimeAcrossMidnight(t *testing.T) {
	a := NewSleepAnalyzer(DefaultTables().Sleep)
	sleep := models.SleepData{Duration: 7, Quality: 6, Bedtime: models.NewClockTime(0, 30)}
	input := models.LifestyleInput{
		WaterIntake: 2500,
		DailyHabits: []models.Habit{{Type: models.HabitScreenTime, Intensity: 5, Timing: at(23, 30)}},
	}
	disruptors := a.Disruptors(sleep, input)
	if len(disruptors) != 1 || disruptors[0].Type != models.DisruptorScreenTime {
		t.Fatalf("expected screen time disruptor, got %+v", disruptors)
	}
	if disruptors[0].Severity != 5 {
		t.Fatalf("screen time one hour before bed should score 5, got %d", disruptors[0].Severity)
	}
}
