package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jeevanfit/jeevanfit-engine/internal/engine"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
	"github.com/jeevanfit/jeevanfit-engine/internal/validation"
)

var (
	header = color.New(color.FgCyan, color.Bold).SprintFunc()
	label  = color.New(color.FgYellow).SprintFunc()
	good   = color.New(color.FgGreen).SprintFunc()
	warn   = color.New(color.FgYellow).SprintFunc()
	bad    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", bad("Error:"), err)
}

func printIssues(w io.Writer, issues []validation.Issue) {
	fmt.Fprintf(w, "%s\n", bad("✗ Document is invalid"))
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s %s\n", label(issue.Field+":"), issue.Message)
		if issue.SuggestedFix != "" {
			fmt.Fprintf(w, "    %s\n", gray(issue.SuggestedFix))
		}
	}
}

func printValid(w io.Writer, input models.LifestyleInput) {
	fmt.Fprintf(w, "%s\n", good("✓ Document is valid"))
	fmt.Fprintf(w, "  User:   %s\n", input.UserID)
	fmt.Fprintf(w, "  Foods:  %d\n", len(input.FoodItems))
	fmt.Fprintf(w, "  Habits: %d\n", len(input.DailyHabits))
	fmt.Fprintf(w, "  Sleep:  %t\n", input.SleepData != nil)
}

func categoryColor(c models.FoodCategory) func(a ...interface{}) string {
	switch c {
	case models.FoodHealthy:
		return good
	case models.FoodJunk:
		return bad
	default:
		return warn
	}
}

func printFoods(w io.Writer, foods []models.FoodClassification) {
	fmt.Fprintf(w, "%s\n", header("=== Food Classification ==="))
	for _, f := range foods {
		paint := categoryColor(f.Category)
		fmt.Fprintf(w, "  %s %s (%.0f%%)\n", paint(string(f.Category)), f.Food, f.Confidence)
		fmt.Fprintf(w, "    %s\n", gray(f.Rationale))
	}
}

func levelColor(level models.RetentionLevel) func(a ...interface{}) string {
	switch level {
	case models.RetentionLow:
		return good
	case models.RetentionModerate:
		return warn
	default:
		return bad
	}
}

func printRetention(w io.Writer, pred models.RetentionPrediction) {
	fmt.Fprintf(w, "%s\n", header("=== Water Retention ==="))
	fmt.Fprintf(w, "  %s %s (score %.1f, confidence %.0f%%)\n",
		label("Level:"), levelColor(pred.Level)(string(pred.Level)), pred.AdjustedScore, pred.Confidence)
	for _, f := range pred.ContributingFactors {
		fmt.Fprintf(w, "  • %s (impact %d): %s\n", f.Type, f.Impact, f.Recommendation)
	}
	fmt.Fprintf(w, "  %s\n", gray(pred.Explanation))
}

func printRecommendations(w io.Writer, recs []models.Recommendation) {
	for _, r := range recs {
		paint := gray
		switch r.Priority {
		case models.PriorityHigh:
			paint = bad
		case models.PriorityMedium:
			paint = warn
		}
		fmt.Fprintf(w, "  %s %s\n", paint("["+string(r.Priority)+"]"), r.Action)
	}
}

func printBodyType(w io.Writer, insight models.BodyTypeInsight) {
	fmt.Fprintf(w, "%s\n", header("=== Body Type ==="))
	fmt.Fprintf(w, "  %s %s (%.0f%%)\n", label("Type:"), insight.Classification, insight.Confidence)
	fmt.Fprintf(w, "  %s\n", gray(insight.Rationale))
	needs := insight.NutritionalNeeds
	fmt.Fprintf(w, "  %s protein %.0f%% / carbs %.0f%% / fat %.0f%%\n", label("Macros:"), needs.ProteinRatio, needs.CarbRatio, needs.FatRatio)
	fmt.Fprintf(w, "  %s %s\n", label("Meals:"), needs.MealFrequency)
	fmt.Fprintf(w, "  %s\n", insight.MetabolicResponse)
	printRecommendations(w, insight.LifestyleRecommendations)
}

func printSleep(w io.Writer, analysis models.SleepAnalysis) {
	fmt.Fprintf(w, "%s\n", header("=== Sleep ==="))
	paint := good
	switch analysis.OverallQuality {
	case models.SleepPoor:
		paint = bad
	case models.SleepFair:
		paint = warn
	}
	fmt.Fprintf(w, "  %s %s\n", label("Quality:"), paint(string(analysis.OverallQuality)))
	for _, d := range analysis.Disruptors {
		fmt.Fprintf(w, "  • %s (severity %d, %s)\n", d.Type, d.Severity, d.Timing)
	}
	printRecommendations(w, analysis.Recommendations)
	fmt.Fprintf(w, "  %s\n", gray(analysis.Explanation))
}

func printAssessment(w io.Writer, a engine.Assessment) {
	fmt.Fprintf(w, "%s\n", header("=== Daily Assessment ==="))
	fmt.Fprintf(w, "  User: %s  Date: %s\n\n", a.UserID, a.Timestamp.Format("2006-01-02"))
	for _, in := range a.Insights {
		paint := gray
		switch in.Insight.Priority {
		case models.PriorityHigh:
			paint = bad
		case models.PriorityMedium:
			paint = warn
		}
		fmt.Fprintf(w, "%s %s\n", paint("["+string(in.Insight.Priority)+"]"), label(in.Insight.Title))
		fmt.Fprintf(w, "  %s\n", in.Education.MainMessage)
		for _, rec := range in.Insight.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
		fmt.Fprintln(w)
	}
	if len(a.Recommendations) > 0 {
		fmt.Fprintf(w, "%s\n", label("Also consider:"))
		for _, rec := range a.Recommendations {
			fmt.Fprintf(w, "  • %s\n", rec)
		}
	}
}

func printTrends(w io.Writer, analysis models.TrendAnalysis) {
	fmt.Fprintf(w, "%s\n", header("=== Trends ==="))
	if len(analysis.Patterns) == 0 && len(analysis.Correlations) == 0 && len(analysis.SignificantChanges) == 0 {
		fmt.Fprintf(w, "  %s\n", gray("Not enough data to detect trends"))
		return
	}
	for _, p := range analysis.Patterns {
		days := utils.DurationDays(p.TimeRange.Start, p.TimeRange.End)
		fmt.Fprintf(w, "  %s %s over %.0f days (%.0f%%)\n", label(p.Metric+":"), p.Trend, days, p.Confidence)
	}
	for _, c := range analysis.Correlations {
		fmt.Fprintf(w, "  ↔ %s (r=%.2f, causality %s)\n", c.Description, c.Strength, c.Causality)
	}
	for _, c := range analysis.SignificantChanges {
		fmt.Fprintf(w, "  Δ %s\n", c.Description)
	}
}
