package trends

import (
	"fmt"
	"math"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// DetectTrend fits a least-squares line against point index and classifies
// its slope. Timestamps only bound the reported time range, so irregular
// sampling intervals are not compensated for.
func DetectTrend(metric string, series models.Series, cfg Config) (models.Pattern, bool) {
	if len(series) < cfg.MinTrendPoints {
		return models.Pattern{}, false
	}
	values := series.Values()
	avg := mean(values)
	std := sampleStdDev(values, avg)

	trend := models.TrendStable
	confidence := cfg.ConstantConfidence
	if std > 0 {
		slope, rSquared := linearFit(values)
		switch {
		case math.Abs(slope) < cfg.StableSlopeRatio*std:
			trend = models.TrendStable
		case slope > 0:
			trend = models.TrendIncreasing
		default:
			trend = models.TrendDecreasing
		}
		confidence = clamp(rSquared*100, cfg.ConfidenceFloor, 100)
	}

	return models.Pattern{
		Metric:      metric,
		Trend:       trend,
		Confidence:  confidence,
		Description: fmt.Sprintf("The %s shows a %s trend over the analyzed period", metric, trend),
		TimeRange:   series.Span(),
	}, true
}
