package models

import "time"

// TrendType classifies the direction of a metric over time.
type TrendType string

const (
	TrendIncreasing TrendType = "increasing"
	TrendDecreasing TrendType = "decreasing"
	TrendStable     TrendType = "stable"
	// TrendCyclical is reserved; no detector emits it yet.
	TrendCyclical TrendType = "cyclical"
)

// Pattern is a detected trend in one metric.
type Pattern struct {
	Metric      string    `json:"metric"`
	Trend       TrendType `json:"trend"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description"`
	TimeRange   TimeRange `json:"time_range"`
}

// Change is a significant deviation of a metric from its baseline.
type Change struct {
	Metric         string    `json:"metric"`
	ChangePoint    time.Time `json:"change_point"`
	Magnitude      float64   `json:"magnitude"`
	Description    string    `json:"description"`
	PossibleCauses []string  `json:"possible_causes"`
}

// ChartData carries a series for visualisation.
type ChartData struct {
	Metric     string `json:"metric"`
	DataPoints Series `json:"data_points"`
	ChartType  string `json:"chart_type"`
}

// TrendAnalysis is the combined output of a trend sweep.
type TrendAnalysis struct {
	Patterns           []Pattern     `json:"patterns"`
	Correlations       []Correlation `json:"correlations"`
	SignificantChanges []Change      `json:"significant_changes"`
	Visualizations     []ChartData   `json:"visualizations"`
}
