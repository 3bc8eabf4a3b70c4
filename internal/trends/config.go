package trends

import (
	"fmt"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// CausalPair is a curated metric pair with a known causal likelihood.
// Lookups are symmetric and case-insensitive.
type CausalPair struct {
	Cause  string                `yaml:"cause"`
	Effect string                `yaml:"effect"`
	Level  models.CausalityLevel `yaml:"level"`
}

// Config holds every threshold used by the detectors.
type Config struct {
	MinTrendPoints         int          `yaml:"minTrendPoints"`
	StableSlopeRatio       float64      `yaml:"stableSlopeRatio"`
	ConfidenceFloor        float64      `yaml:"confidenceFloor"`
	ConstantConfidence     float64      `yaml:"constantConfidence"`
	MinCorrelationPoints   int          `yaml:"minCorrelationPoints"`
	MinCorrelationStrength float64      `yaml:"minCorrelationStrength"`
	StrongCorrelation      float64      `yaml:"strongCorrelation"`
	MinChangePoints        int          `yaml:"minChangePoints"`
	ChangeThreshold        float64      `yaml:"changeThreshold"`
	CausalPairs            []CausalPair `yaml:"causalPairs"`
}

// DefaultConfig returns the standard detector thresholds and causal pairs.
func DefaultConfig() Config {
	return Config{
		MinTrendPoints:         3,
		StableSlopeRatio:       0.1,
		ConfidenceFloor:        50,
		ConstantConfidence:     95,
		MinCorrelationPoints:   3,
		MinCorrelationStrength: 0.3,
		StrongCorrelation:      0.7,
		MinChangePoints:        7,
		ChangeThreshold:        0.3,
		CausalPairs: []CausalPair{
			{Cause: "caffeine", Effect: "sleep_quality", Level: models.CausalityLikely},
			{Cause: "sodium", Effect: "water_retention", Level: models.CausalityLikely},
			{Cause: "water_intake", Effect: "water_retention", Level: models.CausalityLikely},
			{Cause: "sleep_quality", Effect: "stress", Level: models.CausalityPossible},
			{Cause: "food_quality", Effect: "energy", Level: models.CausalityLikely},
		},
	}
}

// Validate rejects thresholds the detectors cannot work with.
func (c Config) Validate() error {
	if c.MinTrendPoints < 2 {
		return fmt.Errorf("minTrendPoints must be at least 2, got %d", c.MinTrendPoints)
	}
	if c.MinCorrelationPoints < 2 {
		return fmt.Errorf("minCorrelationPoints must be at least 2, got %d", c.MinCorrelationPoints)
	}
	if c.MinChangePoints < 2 {
		return fmt.Errorf("minChangePoints must be at least 2, got %d", c.MinChangePoints)
	}
	if c.StableSlopeRatio < 0 || c.ChangeThreshold < 0 {
		return fmt.Errorf("ratios must be non-negative")
	}
	if c.MinCorrelationStrength < 0 || c.MinCorrelationStrength > 1 || c.StrongCorrelation < 0 || c.StrongCorrelation > 1 {
		return fmt.Errorf("correlation thresholds must be within [0,1]")
	}
	for _, pair := range c.CausalPairs {
		switch pair.Level {
		case models.CausalityLikely, models.CausalityPossible, models.CausalityUnlikely:
		default:
			return fmt.Errorf("causal pair %s/%s: unknown level %q", pair.Cause, pair.Effect, pair.Level)
		}
	}
	return nil
}
