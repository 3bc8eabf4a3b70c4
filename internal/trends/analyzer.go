// Package trends detects trends, pairwise correlations and significant
// changes across per-metric time series.
package trends

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

const chartTypeLine = "line"

// Request is one trend sweep over a caller-supplied mapping of metric series.
type Request struct {
	UserID    string                   `json:"user_id"`
	TimeRange models.TimeRange         `json:"time_range"`
	Data      map[string]models.Series `json:"data"`
}

// Analyzer runs the detectors over every metric and metric pair of a request.
type Analyzer struct {
	cfg     Config
	workers int
	logger  *slog.Logger
}

// NewAnalyzer constructs an Analyzer. workers bounds the parallel sweep; values
// below one run it sequentially.
func NewAnalyzer(cfg Config, workers int, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{cfg: cfg, workers: workers, logger: logger}
}

// Config returns the detector thresholds in use.
func (a *Analyzer) Config() Config {
	return a.cfg
}

type metricResult struct {
	pattern *models.Pattern
	change  *models.Change
	chart   *models.ChartData
}

// Analyze runs trend, change and correlation detection. Output order follows
// the sorted metric names and is independent of scheduling.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (models.TrendAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return models.TrendAnalysis{}, err
	}

	metrics := make([]string, 0, len(req.Data))
	for metric := range req.Data {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	series := make([]models.Series, len(metrics))
	for i, metric := range metrics {
		series[i] = req.Data[metric].Sorted()
	}

	type pair struct{ i, j int }
	pairs := make([]pair, 0, len(metrics)*(len(metrics)-1)/2)
	for i := range metrics {
		for j := i + 1; j < len(metrics); j++ {
			pairs = append(pairs, pair{i, j})
		}
	}

	perMetric := make([]metricResult, len(metrics))
	perPair := make([]*models.Correlation, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range metrics {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perMetric[i] = a.analyzeMetric(metrics[i], series[i], metrics, req.TimeRange)
			return nil
		})
	}
	for k, p := range pairs {
		k, p := k, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if corr, ok := Correlate(metrics[p.i], metrics[p.j], series[p.i], series[p.j], a.cfg); ok {
				perPair[k] = &corr
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.TrendAnalysis{}, fmt.Errorf("trend sweep: %w", err)
	}

	analysis := models.TrendAnalysis{
		Patterns:           make([]models.Pattern, 0, len(metrics)),
		Correlations:       make([]models.Correlation, 0),
		SignificantChanges: make([]models.Change, 0),
		Visualizations:     make([]models.ChartData, 0, len(metrics)),
	}
	for _, res := range perMetric {
		if res.pattern != nil {
			analysis.Patterns = append(analysis.Patterns, *res.pattern)
		}
		if res.change != nil {
			analysis.SignificantChanges = append(analysis.SignificantChanges, *res.change)
		}
		if res.chart != nil {
			analysis.Visualizations = append(analysis.Visualizations, *res.chart)
		}
	}
	for _, corr := range perPair {
		if corr != nil {
			analysis.Correlations = append(analysis.Correlations, *corr)
		}
	}

	a.logger.Debug("trend sweep complete",
		slog.String("user_id", req.UserID),
		slog.Int("metrics", len(metrics)),
		slog.Int("patterns", len(analysis.Patterns)),
		slog.Int("correlations", len(analysis.Correlations)),
		slog.Int("changes", len(analysis.SignificantChanges)),
	)
	return analysis, nil
}

func (a *Analyzer) analyzeMetric(metric string, series models.Series, metrics []string, window models.TimeRange) metricResult {
	var res metricResult
	if len(series) < a.cfg.MinTrendPoints {
		return res
	}
	if pattern, ok := DetectTrend(metric, series, a.cfg); ok {
		if !window.IsZero() {
			pattern.TimeRange = window
		}
		res.pattern = &pattern
	}
	if change, ok := DetectChange(metric, series, a.cfg); ok {
		change.PossibleCauses = CausalPartners(metric, metrics, a.cfg.CausalPairs)
		res.change = &change
	}
	res.chart = &models.ChartData{
		Metric:     metric,
		DataPoints: append(models.Series(nil), series...),
		ChartType:  chartTypeLine,
	}
	return res
}
