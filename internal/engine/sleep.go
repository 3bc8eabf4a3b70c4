package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// SleepAnalyzer rates a night of sleep and links it to the day's habits.
type SleepAnalyzer struct {
	table SleepTable
}

// NewSleepAnalyzer builds an analyzer from the sleep table.
func NewSleepAnalyzer(table SleepTable) *SleepAnalyzer {
	return &SleepAnalyzer{table: table}
}

// Analyze rates the night, correlates habits and recommends changes.
func (a *SleepAnalyzer) Analyze(sleep models.SleepData, input models.LifestyleInput) models.SleepAnalysis {
	quality := a.OverallQuality(sleep)
	correlations := a.Correlations(sleep, input)
	disruptors := a.Disruptors(sleep, input)
	return models.SleepAnalysis{
		OverallQuality:  quality,
		Correlations:    correlations,
		Disruptors:      disruptors,
		Recommendations: a.recommendations(sleep, disruptors),
		Explanation:     explainSleep(quality, sleep, correlations),
	}
}

// OverallQuality maps the quality rating to a band, downgrading short, long
// or fragmented nights.
func (a *SleepAnalyzer) OverallQuality(sleep models.SleepData) models.SleepQuality {
	t := a.table
	quality := models.SleepPoor
	switch {
	case sleep.Quality >= t.QualityExcellent:
		quality = models.SleepExcellent
	case sleep.Quality >= t.QualityGood:
		quality = models.SleepGood
	case sleep.Quality >= t.QualityFair:
		quality = models.SleepFair
	}

	switch {
	case sleep.Duration < t.ShortSleepHours:
		quality = downgrade(quality, true)
	case sleep.Duration > t.LongSleepHours:
		quality = downgrade(quality, false)
	}
	if sleep.Interruptions >= t.InterruptionLimit {
		quality = downgrade(quality, true)
	}
	return quality
}

// downgrade drops excellent to good; good drops to fair only when includeGood.
func downgrade(q models.SleepQuality, includeGood bool) models.SleepQuality {
	switch {
	case q == models.SleepExcellent:
		return models.SleepGood
	case q == models.SleepGood && includeGood:
		return models.SleepFair
	}
	return q
}

// lateHabit returns the timed habit of type t closest before bedtime within
// cutoff hours.
func lateHabit(input models.LifestyleInput, t models.HabitType, bedtime models.ClockTime, cutoff float64) (models.Habit, float64, bool) {
	var (
		closest models.Habit
		gap     float64
		found   bool
	)
	for _, habit := range input.HabitsOfType(t) {
		if habit.Timing == nil {
			continue
		}
		hours := habit.Timing.HoursUntil(bedtime)
		if hours > cutoff {
			continue
		}
		if !found || hours < gap {
			closest, gap, found = habit, hours, true
		}
	}
	return closest, gap, found
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Correlations links caffeine, meal timing, hydration, stress and screen time
// to the night's sleep.
func (a *SleepAnalyzer) Correlations(sleep models.SleepData, input models.LifestyleInput) []models.SleepCorrelation {
	t := a.table
	out := make([]models.SleepCorrelation, 0, 5)

	if len(input.HabitsOfType(models.HabitCaffeine)) > 0 {
		if habit, gap, ok := lateHabit(input, models.HabitCaffeine, sleep.Bedtime, t.CaffeineCutoffHours); ok {
			out = append(out, models.SleepCorrelation{
				Habit:    fmt.Sprintf("Caffeine consumption %.1f hours before bed", gap),
				Impact:   models.ImpactNegative,
				Strength: clampInt(int(10-gap), 1, 10),
				Description: fmt.Sprintf("Caffeine consumed at %s (intensity %d/10) likely disrupted your sleep. "+
					"Caffeine has a half-life of 5-6 hours and can interfere with sleep onset.", habit.Timing, habit.Intensity),
			})
		} else {
			out = append(out, models.SleepCorrelation{
				Habit:    "Caffeine consumption timing",
				Impact:   models.ImpactNeutral,
				Strength: 2,
				Description: fmt.Sprintf("Caffeine was consumed more than %.0f hours before bedtime, "+
					"minimizing its impact on sleep quality.", t.CaffeineCutoffHours),
			})
		}
	}

	if gap, ok := a.lastMealGap(sleep, input); ok {
		out = append(out, models.SleepCorrelation{
			Habit:    fmt.Sprintf("Eating %.1f hours before bed", gap),
			Impact:   models.ImpactNegative,
			Strength: clampInt(int(8-gap*2), 1, 10),
			Description: fmt.Sprintf("Eating within %.1f hours of bedtime can disrupt sleep. "+
				"Digestion requires energy and can interfere with the body's natural "+
				"wind-down process, potentially causing discomfort and restlessness.", gap),
		})
	}

	switch water := input.WaterIntake; {
	case water < t.WaterLow:
		out = append(out, models.SleepCorrelation{
			Habit:    fmt.Sprintf("Low water intake (%.0fml)", water),
			Impact:   models.ImpactNegative,
			Strength: 6,
			Description: "Dehydration can cause discomfort, dry mouth, and restlessness during sleep. " +
				"Adequate hydration supports better sleep quality and recovery.",
		})
	case water < t.WaterOptimalMin:
		out = append(out, models.SleepCorrelation{
			Habit:    fmt.Sprintf("Suboptimal water intake (%.0fml)", water),
			Impact:   models.ImpactNeutral,
			Strength: 3,
			Description: "Water intake is slightly below optimal levels. " +
				"Increasing hydration may improve sleep quality.",
		})
	}

	if stress, ok := input.MaxIntensity(models.HabitStress); ok {
		switch {
		case stress >= t.StressHigh:
			out = append(out, models.SleepCorrelation{
				Habit:    fmt.Sprintf("High stress levels (intensity %d/10)", stress),
				Impact:   models.ImpactNegative,
				Strength: 9,
				Description: "High stress levels significantly impact sleep quality by increasing " +
					"cortisol, causing racing thoughts, and preventing the body from " +
					"entering deep, restorative sleep stages.",
			})
		case stress >= t.StressModerate:
			out = append(out, models.SleepCorrelation{
				Habit:    fmt.Sprintf("Moderate stress levels (intensity %d/10)", stress),
				Impact:   models.ImpactNegative,
				Strength: 6,
				Description: "Moderate stress can interfere with sleep onset and reduce sleep quality. " +
					"Managing stress through relaxation techniques may improve rest.",
			})
		}
	}

	if habit, gap, ok := lateHabit(input, models.HabitScreenTime, sleep.Bedtime, t.ScreenCutoffHours); ok {
		out = append(out, models.SleepCorrelation{
			Habit:    fmt.Sprintf("Screen time %.1f hours before bed", gap),
			Impact:   models.ImpactNegative,
			Strength: clampInt(int(8-gap*2), 1, 10),
			Description: fmt.Sprintf("Screen time at %s exposed you to blue light, which suppresses "+
				"melatonin production and can delay sleep onset and reduce sleep quality.", habit.Timing),
		})
	}
	return out
}

// lastMealGap treats the input timestamp as the last meal and reports its
// gap to bedtime when it falls inside the late-eating window.
func (a *SleepAnalyzer) lastMealGap(sleep models.SleepData, input models.LifestyleInput) (float64, bool) {
	if len(input.FoodItems) == 0 || input.Timestamp.IsZero() {
		return 0, false
	}
	ts := input.Timestamp
	meal := models.ClockTime{Hour: ts.Hour(), Minute: ts.Minute(), Second: ts.Second()}
	gap := meal.HoursUntil(sleep.Bedtime)
	if gap >= a.table.LateEatingCutoffHours {
		return 0, false
	}
	return gap, true
}

// Disruptors ranks the habits that disrupted sleep, most severe first.
func (a *SleepAnalyzer) Disruptors(sleep models.SleepData, input models.LifestyleInput) []models.SleepDisruptor {
	t := a.table
	out := make([]models.SleepDisruptor, 0, 5)

	if habit, gap, ok := lateHabit(input, models.HabitCaffeine, sleep.Bedtime, t.CaffeineCutoffHours); ok {
		out = append(out, models.SleepDisruptor{
			Type:     models.DisruptorCaffeine,
			Severity: clampInt(int(10-gap), 1, 10),
			Timing:   fmt.Sprintf("%s (%.1fh before bed)", habit.Timing, gap),
			Recommendation: "Avoid caffeine consumption after 2 PM. Consider switching to " +
				"decaffeinated beverages or herbal tea in the afternoon and evening.",
		})
	}

	if gap, ok := a.lastMealGap(sleep, input); ok {
		ts := input.Timestamp
		out = append(out, models.SleepDisruptor{
			Type:     models.DisruptorLateEating,
			Severity: clampInt(int(8-gap*2), 1, 10),
			Timing:   fmt.Sprintf("%02d:%02d (%.1fh before bed)", ts.Hour(), ts.Minute(), gap),
			Recommendation: "Try to finish your last meal at least 3 hours before bedtime. " +
				"If you need a snack, choose something light and easy to digest.",
		})
	}

	if input.WaterIntake < t.WaterLow {
		out = append(out, models.SleepDisruptor{
			Type:     models.DisruptorDehydration,
			Severity: 6,
			Timing:   fmt.Sprintf("Daily intake: %.0fml", input.WaterIntake),
			Recommendation: "Increase water intake throughout the day to 2000-3000ml. " +
				"Drink most of your water earlier in the day to avoid nighttime bathroom trips.",
		})
	}

	if stress, ok := input.MaxIntensity(models.HabitStress); ok {
		switch {
		case stress >= t.StressHigh:
			out = append(out, models.SleepDisruptor{
				Type:     models.DisruptorStress,
				Severity: 9,
				Timing:   fmt.Sprintf("Stress intensity: %d/10", stress),
				Recommendation: "Practice stress management techniques: meditation, deep breathing exercises, " +
					"journaling, or talking to a counselor. Consider a relaxing bedtime routine.",
			})
		case stress >= t.StressModerate:
			out = append(out, models.SleepDisruptor{
				Type:     models.DisruptorStress,
				Severity: 6,
				Timing:   fmt.Sprintf("Stress intensity: %d/10", stress),
				Recommendation: "Incorporate stress-reduction activities into your routine: light exercise, " +
					"mindfulness, or relaxing hobbies before bed.",
			})
		}
	}

	if habit, gap, ok := lateHabit(input, models.HabitScreenTime, sleep.Bedtime, t.ScreenCutoffHours); ok {
		out = append(out, models.SleepDisruptor{
			Type:     models.DisruptorScreenTime,
			Severity: clampInt(int(7-gap*2), 1, 10),
			Timing:   fmt.Sprintf("%s (%.1fh before bed)", habit.Timing, gap),
			Recommendation: "Avoid screens 1-2 hours before bedtime. If you must use devices, " +
				"enable blue light filters or use blue light blocking glasses.",
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Severity > out[j].Severity })
	return out
}

var disruptorRecommendations = map[models.SleepDisruptorType]models.Recommendation{
	models.DisruptorCaffeine: {
		Priority:       models.PriorityHigh,
		Action:         "Avoid caffeine after 2 PM",
		Rationale:      "Caffeine has a half-life of 5-6 hours and can remain in your system for up to 10 hours, interfering with sleep onset and quality.",
		ExpectedImpact: "Faster sleep onset and deeper, more restful sleep",
	},
	models.DisruptorLateEating: {
		Priority:       models.PriorityHigh,
		Action:         "Finish eating at least 3 hours before bedtime",
		Rationale:      "Late eating keeps your digestive system active when your body should be winding down, potentially causing discomfort and disrupting sleep.",
		ExpectedImpact: "Reduced nighttime discomfort and improved sleep quality",
	},
	models.DisruptorDehydration: {
		Priority:       models.PriorityMedium,
		Action:         "Increase daily water intake to 2000-3000ml",
		Rationale:      "Dehydration can cause discomfort and restlessness during sleep. However, avoid drinking large amounts right before bed.",
		ExpectedImpact: "Better sleep comfort and reduced nighttime awakenings",
	},
	models.DisruptorStress: {
		Priority:       models.PriorityHigh,
		Action:         "Practice relaxation techniques before bed (meditation, deep breathing, gentle stretching)",
		Rationale:      "Stress activates the sympathetic nervous system, making it difficult to fall asleep. Relaxation techniques help activate the parasympathetic nervous system, promoting rest.",
		ExpectedImpact: "Easier sleep onset and more restorative sleep",
	},
	models.DisruptorScreenTime: {
		Priority:       models.PriorityMedium,
		Action:         "Avoid screens 1-2 hours before bedtime",
		Rationale:      "Blue light from screens suppresses melatonin production, the hormone that regulates sleep-wake cycles.",
		ExpectedImpact: "Improved melatonin production and easier sleep onset",
	},
}

var consistentScheduleRecommendation = models.Recommendation{
	Priority:       models.PriorityMedium,
	Action:         "Establish a consistent sleep schedule",
	Rationale:      "Going to bed and waking up at the same time daily helps regulate your circadian rhythm, improving sleep quality over time.",
	ExpectedImpact: "More consistent sleep patterns and better overall sleep quality",
}

func (a *SleepAnalyzer) recommendations(sleep models.SleepData, disruptors []models.SleepDisruptor) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(disruptors)+1)
	for _, d := range disruptors {
		if rec, ok := disruptorRecommendations[d.Type]; ok {
			recs = append(recs, rec)
		}
	}
	if sleep.Quality <= a.table.QualityFair {
		recs = append(recs, consistentScheduleRecommendation)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

func explainSleep(quality models.SleepQuality, sleep models.SleepData, correlations []models.SleepCorrelation) string {
	parts := []string{
		fmt.Sprintf("Your sleep was of %s quality with %.1f hours of rest and a quality rating of %d/10.",
			quality, sleep.Duration, sleep.Quality),
	}
	if sleep.Interruptions > 0 {
		parts = append(parts, fmt.Sprintf("You experienced %d interruption(s) during the night.", sleep.Interruptions))
	}

	strongest := -1
	for i, c := range correlations {
		if c.Impact != models.ImpactNegative {
			continue
		}
		if strongest < 0 || c.Strength > correlations[strongest].Strength {
			strongest = i
		}
	}
	if strongest < 0 {
		parts = append(parts, "No significant lifestyle factors were identified as negatively impacting your sleep.")
		return strings.Join(parts, " ")
	}

	primary := correlations[strongest]
	parts = append(parts, fmt.Sprintf("The primary factor affecting your sleep was: %s. %s", primary.Habit, primary.Description))

	others := make([]string, 0)
	for i, c := range correlations {
		if i == strongest || c.Impact != models.ImpactNegative || c.Strength < 6 {
			continue
		}
		others = append(others, c.Habit)
	}
	if len(others) > 0 {
		parts = append(parts, fmt.Sprintf("Additional factors that may have impacted your sleep include: %s.", strings.Join(others, ", ")))
	}
	return strings.Join(parts, " ")
}
