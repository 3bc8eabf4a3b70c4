package trends

import (
	"fmt"
	"math"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// DetectChange compares the second half of a series against the mean of the
// first half and reports the first point deviating by more than the
// threshold. Later qualifying points are ignored.
func DetectChange(metric string, series models.Series, cfg Config) (models.Change, bool) {
	n := len(series)
	if n < cfg.MinChangePoints {
		return models.Change{}, false
	}
	values := series.Values()
	mid := n / 2
	baseline := mean(values[:mid])
	if baseline == 0 {
		return models.Change{}, false
	}

	for i := mid; i < n; i++ {
		deviation := math.Abs(values[i]-baseline) / math.Abs(baseline)
		if deviation <= cfg.ChangeThreshold {
			continue
		}
		magnitude := values[i] - baseline
		direction := "increased"
		if magnitude < 0 {
			direction = "decreased"
		}
		return models.Change{
			Metric:         metric,
			ChangePoint:    series[i].Timestamp,
			Magnitude:      magnitude,
			Description:    fmt.Sprintf("%s %s by %d%% from baseline", metric, direction, int(deviation*100)),
			PossibleCauses: []string{},
		}, true
	}
	return models.Change{}, false
}
