package trends

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

var epoch = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func daily(values ...float64) models.Series {
	series := make(models.Series, len(values))
	for i, v := range values {
		series[i] = models.TimePoint{Timestamp: epoch.AddDate(0, 0, i), Value: v}
	}
	return series
}

func TestDetectTrendMinimumSample(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := DetectTrend("weight", daily(1, 2), cfg); ok {
		t.Fatalf("expected no pattern for two points")
	}
	if _, ok := DetectTrend("weight", nil, cfg); ok {
		t.Fatalf("expected no pattern for empty series")
	}
}

func TestDetectTrendConstantSeriesIsStable(t *testing.T) {
	pattern, ok := DetectTrend("water_intake", daily(2000, 2000, 2000, 2000), DefaultConfig())
	if !ok {
		t.Fatalf("expected a pattern")
	}
	if pattern.Trend != models.TrendStable || pattern.Confidence != 95 {
		t.Fatalf("expected stable/95, got %s/%f", pattern.Trend, pattern.Confidence)
	}
}

func TestDetectTrendDirection(t *testing.T) {
	cfg := DefaultConfig()
	up, _ := DetectTrend("steps", daily(1, 2, 3, 4, 5), cfg)
	if up.Trend != models.TrendIncreasing || up.Confidence != 100 {
		t.Fatalf("expected increasing/100, got %s/%f", up.Trend, up.Confidence)
	}
	down, _ := DetectTrend("steps", daily(9, 7, 6, 2), cfg)
	if down.Trend != models.TrendDecreasing {
		t.Fatalf("expected decreasing, got %s", down.Trend)
	}
	if !strings.Contains(down.Description, "decreasing trend") {
		t.Fatalf("unexpected description %q", down.Description)
	}
	if !down.TimeRange.Start.Equal(epoch) || !down.TimeRange.End.Equal(epoch.AddDate(0, 0, 3)) {
		t.Fatalf("unexpected time range %+v", down.TimeRange)
	}
}

func TestDetectTrendNoisyFlatIsStable(t *testing.T) {
	pattern, _ := DetectTrend("mood", daily(5, 9, 5, 9, 5, 9, 5), DefaultConfig())
	if pattern.Trend != models.TrendStable {
		t.Fatalf("expected stable, got %s", pattern.Trend)
	}
	if pattern.Confidence < 50 || pattern.Confidence > 100 {
		t.Fatalf("confidence %f out of range", pattern.Confidence)
	}
}

// Slope is computed per point, not per elapsed time: the same values spread
// over irregular gaps classify identically.
func TestDetectTrendIgnoresSamplingIntervals(t *testing.T) {
	cfg := DefaultConfig()
	regular := daily(1, 2, 3, 4)
	irregular := models.Series{
		{Timestamp: epoch, Value: 1},
		{Timestamp: epoch.Add(time.Hour), Value: 2},
		{Timestamp: epoch.AddDate(0, 0, 10), Value: 3},
		{Timestamp: epoch.AddDate(0, 2, 0), Value: 4},
	}
	a, _ := DetectTrend("m", regular, cfg)
	b, _ := DetectTrend("m", irregular, cfg)
	if a.Trend != b.Trend || a.Confidence != b.Confidence {
		t.Fatalf("expected index-based regression, got %+v vs %+v", a, b)
	}
}

func TestCorrelateRequiresCommonPoints(t *testing.T) {
	a := daily(1, 2, 3, 4)
	b := models.Series{
		{Timestamp: epoch.AddDate(0, 0, 2), Value: 3},
		{Timestamp: epoch.AddDate(0, 0, 3), Value: 5},
		{Timestamp: epoch.AddDate(0, 1, 0), Value: 1},
	}
	if _, ok := Correlate("a", "b", a, b, DefaultConfig()); ok {
		t.Fatalf("expected no correlation with two shared timestamps")
	}
}

func TestCorrelateScenarioLinearWithNoise(t *testing.T) {
	noise := []float64{0.1, -0.05, 0.08, -0.1, 0.02, 0.07, -0.09, 0.04, -0.03, 0.1}
	aValues := make([]float64, 10)
	bValues := make([]float64, 10)
	for i := range aValues {
		aValues[i] = float64(i + 1)
		bValues[i] = 2*aValues[i] + noise[i]
	}
	corr, ok := Correlate("steps", "energy", daily(aValues...), daily(bValues...), DefaultConfig())
	if !ok {
		t.Fatalf("expected a correlation")
	}
	if corr.Strength <= 0.9 {
		t.Fatalf("expected strength > 0.9, got %f", corr.Strength)
	}
	if corr.Causality != models.CausalityPossible {
		t.Fatalf("expected possible causality, got %s", corr.Causality)
	}
	if corr.Description != "A strong positive correlation exists between steps and energy" {
		t.Fatalf("unexpected description %q", corr.Description)
	}
}

func TestCorrelateSymmetry(t *testing.T) {
	cfg := DefaultConfig()
	a := daily(3, 1, 4, 1, 5, 9, 2, 6)
	b := daily(2, 7, 1, 8, 2, 8, 1, 8)
	c := daily(1, 2, 2, 3, 4, 7, 3, 5)

	for _, tc := range []struct {
		x, y models.Series
		mx   string
		my   string
	}{
		{a, c, "caffeine", "Sleep_Quality"},
		{a, b, "x", "y"},
		{b, c, "sodium", "water_retention"},
	} {
		fwd, okF := Correlate(tc.mx, tc.my, tc.x, tc.y, cfg)
		rev, okR := Correlate(tc.my, tc.mx, tc.y, tc.x, cfg)
		if okF != okR {
			t.Fatalf("presence differs by argument order for %s/%s", tc.mx, tc.my)
		}
		if !okF {
			continue
		}
		if fwd.Strength != rev.Strength {
			t.Fatalf("strength not symmetric: %v vs %v", fwd.Strength, rev.Strength)
		}
		if fwd.Causality != rev.Causality {
			t.Fatalf("causality not symmetric: %s vs %s", fwd.Causality, rev.Causality)
		}
	}
}

func TestCorrelateZeroVarianceIsNone(t *testing.T) {
	if _, ok := Correlate("a", "b", daily(1, 1, 1, 1), daily(1, 2, 3, 4), DefaultConfig()); ok {
		t.Fatalf("expected no correlation for a constant series")
	}
}

func TestAlignLastWriteWins(t *testing.T) {
	a := models.Series{
		{Timestamp: epoch, Value: 1},
		{Timestamp: epoch, Value: 7},
		{Timestamp: epoch.Add(time.Hour), Value: 2},
	}
	b := models.Series{
		{Timestamp: epoch.Add(time.Hour), Value: 20},
		{Timestamp: epoch, Value: 10},
	}
	xs, ys := Align(a, b)
	if !reflect.DeepEqual(xs, []float64{7, 2}) || !reflect.DeepEqual(ys, []float64{10, 20}) {
		t.Fatalf("unexpected alignment %v %v", xs, ys)
	}
}

func TestAssessCausality(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		m1, m2   string
		strength float64
		want     models.CausalityLevel
	}{
		{"caffeine", "sleep_quality", 0.4, models.CausalityLikely},
		{"SLEEP_QUALITY", "Caffeine", -0.4, models.CausalityLikely},
		{"stress", "sleep_quality", 0.9, models.CausalityPossible},
		{"steps", "mood", 0.71, models.CausalityPossible},
		{"steps", "mood", 0.5, models.CausalityUnlikely},
	}
	for _, tc := range cases {
		if got := AssessCausality(tc.m1, tc.m2, tc.strength, cfg); got != tc.want {
			t.Fatalf("%s/%s: expected %s, got %s", tc.m1, tc.m2, tc.want, got)
		}
	}
}

func TestDetectChangeThreshold(t *testing.T) {
	values := make([]float64, 14)
	for i := range values {
		values[i] = 10
		if i >= 7 {
			values[i] = 13.5
		}
	}
	series := daily(values...)
	change, ok := DetectChange("sodium", series, DefaultConfig())
	if !ok {
		t.Fatalf("expected a change")
	}
	if !change.ChangePoint.Equal(series[7].Timestamp) {
		t.Fatalf("expected change at index 7, got %v", change.ChangePoint)
	}
	if math.Abs(change.Magnitude-3.5) > 1e-9 {
		t.Fatalf("expected magnitude 3.5, got %f", change.Magnitude)
	}
	if !strings.Contains(change.Description, "increased") {
		t.Fatalf("expected increase in description, got %q", change.Description)
	}
	if change.PossibleCauses == nil || len(change.PossibleCauses) != 0 {
		t.Fatalf("expected empty causes, got %v", change.PossibleCauses)
	}
}

func TestDetectChangeGuards(t *testing.T) {
	cfg := DefaultConfig()
	if _, ok := DetectChange("m", daily(1, 1, 1, 5, 5, 5), cfg); ok {
		t.Fatalf("expected none below seven points")
	}
	if _, ok := DetectChange("m", daily(0, 0, 0, 5, 5, 5, 5), cfg); ok {
		t.Fatalf("expected none for zero baseline")
	}
	if _, ok := DetectChange("m", daily(10, 10, 10, 11, 12, 9, 10), cfg); ok {
		t.Fatalf("expected none within threshold")
	}
}

func TestDetectChangeReportsFirstQualifyingPoint(t *testing.T) {
	change, ok := DetectChange("sleep_quality", daily(8, 8, 8, 8, 4, 2, 1, 1), DefaultConfig())
	if !ok {
		t.Fatalf("expected a change")
	}
	if change.Magnitude != -4 || !strings.Contains(change.Description, "decreased by 50%") {
		t.Fatalf("unexpected change %+v", change)
	}
}

func TestAnalyzerSweep(t *testing.T) {
	rising := make([]float64, 10)
	for i := range rising {
		rising[i] = 1000 + float64(i)*200
	}
	retention := make([]float64, 10)
	for i := range retention {
		retention[i] = 2 + float64(i)*0.5
	}
	req := Request{
		UserID: "user-1",
		Data: map[string]models.Series{
			"water_retention": daily(retention...),
			"sodium":          daily(rising...),
			"steps":           daily(1, 2),
		},
	}

	analyzer := NewAnalyzer(DefaultConfig(), 4, nil)
	analysis, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(analysis.Patterns) != 2 || analysis.Patterns[0].Metric != "sodium" || analysis.Patterns[1].Metric != "water_retention" {
		t.Fatalf("unexpected patterns %+v", analysis.Patterns)
	}
	if len(analysis.Visualizations) != 2 || analysis.Visualizations[0].ChartType != "line" {
		t.Fatalf("unexpected visualizations %+v", analysis.Visualizations)
	}
	if len(analysis.Correlations) != 1 {
		t.Fatalf("expected one correlation, got %+v", analysis.Correlations)
	}
	corr := analysis.Correlations[0]
	if corr.Metric1 != "sodium" || corr.Metric2 != "water_retention" || corr.Causality != models.CausalityLikely {
		t.Fatalf("unexpected correlation %+v", corr)
	}
	if len(analysis.SignificantChanges) != 2 {
		t.Fatalf("expected two changes, got %+v", analysis.SignificantChanges)
	}
	if !reflect.DeepEqual(analysis.SignificantChanges[0].PossibleCauses, []string{"water_retention"}) {
		t.Fatalf("unexpected causes %v", analysis.SignificantChanges[0].PossibleCauses)
	}

	again, err := NewAnalyzer(DefaultConfig(), 1, nil).Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(analysis, again) {
		t.Fatalf("result depends on worker count")
	}
}

func TestAnalyzerUsesRequestWindow(t *testing.T) {
	window := models.TimeRange{Start: epoch.AddDate(0, -1, 0), End: epoch.AddDate(0, 1, 0)}
	analysis, err := NewAnalyzer(DefaultConfig(), 2, nil).Analyze(context.Background(), Request{
		TimeRange: window,
		Data:      map[string]models.Series{"energy": daily(3, 4, 5)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Patterns[0].TimeRange != window {
		t.Fatalf("expected request window, got %+v", analysis.Patterns[0].TimeRange)
	}
}

func TestAnalyzerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAnalyzer(DefaultConfig(), 2, nil).Analyze(ctx, Request{Data: map[string]models.Series{"a": daily(1, 2, 3)}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg := DefaultConfig()
	cfg.CausalPairs = append(cfg.CausalPairs, CausalPair{Cause: "a", Effect: "b", Level: "certain"})
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown level error")
	}
}
