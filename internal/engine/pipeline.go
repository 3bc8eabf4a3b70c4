package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jeevanfit/jeevanfit-engine/internal/insights"
	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// AssessedInsight pairs an insight with its educational rendering.
type AssessedInsight struct {
	Insight   insights.Insight            `json:"insight"`
	Education insights.EducationalContent `json:"education"`
}

// Assessment is the combined outcome of analysing one day.
type Assessment struct {
	UserID          string                      `json:"user_id"`
	Timestamp       time.Time                   `json:"timestamp"`
	Foods           []models.FoodClassification `json:"foods"`
	Retention       models.RetentionPrediction  `json:"retention"`
	Sleep           *models.SleepAnalysis       `json:"sleep,omitempty"`
	BodyType        models.BodyTypeInsight      `json:"body_type"`
	Insights        []AssessedInsight           `json:"insights"`
	Recommendations []string                    `json:"recommendations"`
}

// Pipeline orchestrates the daily assessment flow.
type Pipeline struct {
	logger      *slog.Logger
	food        *FoodClassifier
	retention   *RetentionPredictor
	sleep       *SleepAnalyzer
	bodyType    *BodyTypeProfiler
	rulesEngine *RuleEngine
	generator   *insights.Generator
	now         func() time.Time
}

// NewPipeline constructs the analyzers from tables. rulesEngine may be nil.
func NewPipeline(logger *slog.Logger, tables Tables, rulesEngine *RuleEngine) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	food, err := NewFoodClassifier(tables.Food)
	if err != nil {
		return nil, err
	}
	bodyType, err := NewBodyTypeProfiler(tables.BodyType)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		logger:      logger,
		food:        food,
		retention:   NewRetentionPredictor(tables.Retention),
		sleep:       NewSleepAnalyzer(tables.Sleep),
		bodyType:    bodyType,
		rulesEngine: rulesEngine,
		generator:   insights.NewGenerator(),
		now:         time.Now,
	}, nil
}

// Food returns the food classifier.
func (p *Pipeline) Food() *FoodClassifier { return p.food }

// Retention returns the water-retention predictor.
func (p *Pipeline) Retention() *RetentionPredictor { return p.retention }

// Sleep returns the sleep analyzer.
func (p *Pipeline) Sleep() *SleepAnalyzer { return p.sleep }

// BodyType returns the body-type profiler.
func (p *Pipeline) BodyType() *BodyTypeProfiler { return p.bodyType }

// Assess runs every analyzer over one day of input and merges the outcomes
// into prioritised, educational insights.
func (p *Pipeline) Assess(ctx context.Context, input models.LifestyleInput, bodyType models.BodyType) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}

	stamp := input.Timestamp
	if stamp.IsZero() {
		stamp = p.now().UTC()
	}

	assessment := Assessment{
		UserID:    input.UserID,
		Timestamp: stamp,
		Foods:     make([]models.FoodClassification, 0, len(input.FoodItems)),
	}
	results := make([]insights.AnalysisResult, 0, 4)
	findings := make([]Finding, 0, 4+len(input.FoodItems))

	for _, item := range input.FoodItems {
		c := p.food.Classify(item)
		assessment.Foods = append(assessment.Foods, c)
		findings = append(findings, Finding{
			Source:  string(insights.SourceFood),
			Level:   string(c.Category),
			Factors: c.DominantFactors,
		})
	}
	if len(assessment.Foods) > 0 {
		results = append(results, foodResult(assessment.Foods, stamp))
	}

	assessment.BodyType = p.bodyType.Analyze(bodyType, input)
	resolved := assessment.BodyType.Classification

	assessment.Retention = p.retention.Predict(input, resolved)
	results = append(results, retentionResult(assessment.Retention, stamp))
	findings = append(findings, Finding{
		Source:  string(insights.SourceWater),
		Level:   string(assessment.Retention.Level),
		Factors: retentionFactorNames(assessment.Retention.ContributingFactors),
	})

	if input.SleepData != nil {
		sleep := p.sleep.Analyze(*input.SleepData, input)
		assessment.Sleep = &sleep
		results = append(results, sleepResult(sleep, stamp))
		findings = append(findings, Finding{
			Source:  string(insights.SourceSleep),
			Level:   string(sleep.OverallQuality),
			Factors: disruptorNames(sleep.Disruptors),
		})
	}

	results = append(results, bodyTypeResult(assessment.BodyType, stamp))
	findings = append(findings, Finding{
		Source: string(insights.SourceBodyType),
		Level:  string(resolved),
	})

	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}

	generated := make([]insights.Insight, 0, len(results))
	for _, r := range results {
		in, err := p.generator.Generate([]insights.AnalysisResult{r})
		if err != nil {
			return Assessment{}, fmt.Errorf("generate %s insight: %w", r.Source, err)
		}
		generated = append(generated, in)
	}
	ranked := insights.Prioritize(generated)
	assessment.Insights = make([]AssessedInsight, 0, len(ranked))
	for _, in := range ranked {
		assessment.Insights = append(assessment.Insights, AssessedInsight{Insight: in, Education: insights.Educate(in)})
	}

	assessment.Recommendations = p.rulesEngine.Recommend(findings)
	if assessment.Recommendations == nil {
		assessment.Recommendations = []string{}
	}

	p.logger.Debug("assessment complete",
		slog.String("user_id", input.UserID),
		slog.Int("foods", len(assessment.Foods)),
		slog.String("retention", string(assessment.Retention.Level)),
		slog.String("body_type", string(resolved)),
		slog.Int("insights", len(assessment.Insights)),
		slog.Int("rule_recommendations", len(assessment.Recommendations)),
	)
	return assessment, nil
}

func foodResult(foods []models.FoodClassification, stamp time.Time) insights.AnalysisResult {
	total := 0.0
	rationales := make([]string, 0, len(foods))
	var recs []string
	for _, f := range foods {
		total += f.Confidence
		rationales = append(rationales, fmt.Sprintf("%s: %s", f.Food, f.Rationale))
		switch f.Category {
		case models.FoodJunk:
			recs = appendUnique(recs, "Balance less nutritious choices with whole, minimally processed foods.")
		case models.FoodPreservativeHeavy:
			recs = appendUnique(recs, "Favour fresh alternatives to heavily preserved foods where you can.")
		}
	}
	return insights.AnalysisResult{
		Source:          insights.SourceFood,
		Confidence:      total / float64(len(foods)),
		Timestamp:       stamp,
		Summary:         strings.Join(rationales, " "),
		Recommendations: recs,
	}
}

func retentionResult(pred models.RetentionPrediction, stamp time.Time) insights.AnalysisResult {
	var recs []string
	for _, f := range pred.ContributingFactors {
		recs = appendUnique(recs, f.Recommendation)
	}
	return insights.AnalysisResult{
		Source:          insights.SourceWater,
		Confidence:      pred.Confidence,
		Timestamp:       stamp,
		Summary:         pred.Explanation,
		Recommendations: recs,
	}
}

func sleepResult(sleep models.SleepAnalysis, stamp time.Time) insights.AnalysisResult {
	return insights.AnalysisResult{
		Source:          insights.SourceSleep,
		Confidence:      sleepConfidence(sleep),
		Timestamp:       stamp,
		Summary:         sleep.Explanation,
		Recommendations: recommendationActions(sleep.Recommendations),
	}
}

func bodyTypeResult(insight models.BodyTypeInsight, stamp time.Time) insights.AnalysisResult {
	return insights.AnalysisResult{
		Source:          insights.SourceBodyType,
		Confidence:      insight.Confidence,
		Timestamp:       stamp,
		Summary:         insight.Rationale,
		Recommendations: recommendationActions(insight.LifestyleRecommendations),
	}
}

// sleepConfidence grows with the number of habits that explain the night.
func sleepConfidence(sleep models.SleepAnalysis) float64 {
	explained := 0
	for _, c := range sleep.Correlations {
		if c.Impact != models.ImpactNeutral {
			explained++
		}
	}
	return clamp(70+5*float64(explained), 70, 90)
}

func recommendationActions(recs []models.Recommendation) []string {
	var out []string
	for _, r := range recs {
		out = appendUnique(out, r.Action)
	}
	return out
}

func retentionFactorNames(factors []models.RetentionFactor) []string {
	names := make([]string, 0, len(factors))
	for _, f := range factors {
		names = append(names, string(f.Type))
	}
	return names
}

func disruptorNames(disruptors []models.SleepDisruptor) []string {
	names := make([]string, 0, len(disruptors))
	for _, d := range disruptors {
		names = append(names, string(d.Type))
	}
	return names
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
