package trends

import (
	"fmt"
	"math"
	"sort"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// Align pairs the values of a and b that share a timestamp, ordered by time.
// When a series repeats a timestamp the last occurrence wins.
func Align(a, b models.Series) ([]float64, []float64) {
	left := indexByTime(a)
	right := indexByTime(b)

	keys := make([]int64, 0, len(left))
	for key := range left {
		if _, ok := right[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	xs := make([]float64, len(keys))
	ys := make([]float64, len(keys))
	for i, key := range keys {
		xs[i] = left[key]
		ys[i] = right[key]
	}
	return xs, ys
}

func indexByTime(series models.Series) map[int64]float64 {
	out := make(map[int64]float64, len(series))
	for _, point := range series {
		out[point.Timestamp.UnixNano()] = point.Value
	}
	return out
}

// Correlate computes Pearson's r over the timestamps both series share.
// Pairs with too few common points or a weak correlation yield no result.
func Correlate(metric1, metric2 string, a, b models.Series, cfg Config) (models.Correlation, bool) {
	xs, ys := Align(a, b)
	if len(xs) < cfg.MinCorrelationPoints {
		return models.Correlation{}, false
	}
	r := pearson(xs, ys)
	if math.Abs(r) < cfg.MinCorrelationStrength {
		return models.Correlation{}, false
	}

	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	strength := "moderate"
	if math.Abs(r) > cfg.StrongCorrelation {
		strength = "strong"
	}

	return models.Correlation{
		Metric1:     metric1,
		Metric2:     metric2,
		Strength:    r,
		Description: fmt.Sprintf("A %s %s correlation exists between %s and %s", strength, direction, metric1, metric2),
		Causality:   AssessCausality(metric1, metric2, r, cfg),
	}, true
}
