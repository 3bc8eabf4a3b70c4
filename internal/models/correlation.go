package models

// CausalityLevel is a coarse likelihood that a correlation is causal.
type CausalityLevel string

const (
	CausalityLikely   CausalityLevel = "likely"
	CausalityPossible CausalityLevel = "possible"
	CausalityUnlikely CausalityLevel = "unlikely"
)

// Correlation links two metrics that move together.
type Correlation struct {
	Metric1     string         `json:"metric1"`
	Metric2     string         `json:"metric2"`
	Strength    float64        `json:"strength"`
	Description string         `json:"description"`
	Causality   CausalityLevel `json:"causality"`
}
