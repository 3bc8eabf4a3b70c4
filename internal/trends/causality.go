package trends

import (
	"math"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// AssessCausality labels a correlation between two metrics. Curated pairs win
// in either argument order; otherwise strong correlations are "possible".
func AssessCausality(metric1, metric2 string, strength float64, cfg Config) models.CausalityLevel {
	if level, ok := lookupPair(metric1, metric2, cfg.CausalPairs); ok {
		return level
	}
	if math.Abs(strength) > cfg.StrongCorrelation {
		return models.CausalityPossible
	}
	return models.CausalityUnlikely
}

func lookupPair(metric1, metric2 string, pairs []CausalPair) (models.CausalityLevel, bool) {
	for _, pair := range pairs {
		if strings.EqualFold(pair.Cause, metric1) && strings.EqualFold(pair.Effect, metric2) {
			return pair.Level, true
		}
	}
	for _, pair := range pairs {
		if strings.EqualFold(pair.Cause, metric2) && strings.EqualFold(pair.Effect, metric1) {
			return pair.Level, true
		}
	}
	return "", false
}

// CausalPartners returns the metrics in candidates that share a curated pair
// with metric, in candidate order.
func CausalPartners(metric string, candidates []string, pairs []CausalPair) []string {
	partners := make([]string, 0)
	for _, candidate := range candidates {
		if strings.EqualFold(candidate, metric) {
			continue
		}
		if _, ok := lookupPair(metric, candidate, pairs); ok {
			partners = append(partners, candidate)
		}
	}
	return partners
}
