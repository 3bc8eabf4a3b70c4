package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels analyses that returned a result.
	OutcomeSuccess = "success"
	// OutcomeInvalid labels analyses rejected for bad input.
	OutcomeInvalid = "invalid"
	// OutcomeError labels analyses that failed internally.
	OutcomeError = "error"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jeevanfit",
			Name:      "analyses_total",
			Help:      "Total number of analyses handled, partitioned by analysis kind and outcome.",
		},
		[]string{"analysis", "outcome"},
	)

	analysisDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jeevanfit",
			Name:      "analysis_seconds",
			Help:      "Analysis latency in seconds.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"analysis"},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jeevanfit",
			Name:      "cache_lookups_total",
			Help:      "Trend cache lookups, partitioned by result.",
		},
		[]string{"result"},
	)
)

// Register attaches jeevanfit collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		analysesTotal,
		analysisDurationSeconds,
		cacheLookupsTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveAnalysis records an analysis duration and outcome label.
func ObserveAnalysis(kind string, duration time.Duration, outcome string) {
	label := outcome
	if label != OutcomeError && label != OutcomeInvalid {
		label = OutcomeSuccess
	}
	analysesTotal.WithLabelValues(kind, label).Inc()
	if duration < 0 {
		duration = 0
	}
	analysisDurationSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}

// ObserveCacheLookup counts a trend cache hit or miss.
func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}
