// Package insights merges analyzer outputs into ranked, user-facing insights
// and rewrites them as educational content.
package insights

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// ErrNoResults is returned when an insight is requested from no results.
var ErrNoResults = errors.New("cannot generate insight from empty analysis results")

// Source names the analyzer that produced a result.
type Source string

const (
	SourceFood     Source = "food"
	SourceWater    Source = "water"
	SourceSleep    Source = "sleep"
	SourceBodyType Source = "body_type"
	SourceTrend    Source = "trend"
)

var sourceTitles = map[Source]string{
	SourceFood:     "Food Classification Insight",
	SourceWater:    "Water Retention Insight",
	SourceSleep:    "Sleep Quality Insight",
	SourceBodyType: "Body Type Insight",
	SourceTrend:    "Lifestyle Trend Insight",
}

var sourceCategories = map[Source]string{
	SourceFood:     "Nutrition",
	SourceWater:    "Hydration",
	SourceSleep:    "Sleep & Recovery",
	SourceBodyType: "Metabolism",
	SourceTrend:    "Lifestyle Patterns",
}

// DisplayName renders the source for prose, e.g. "Body Type".
func (s Source) DisplayName() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// AnalysisResult is one analyzer's contribution to an insight.
type AnalysisResult struct {
	Source          Source    `json:"source"`
	Confidence      float64   `json:"confidence"`
	Timestamp       time.Time `json:"timestamp"`
	Summary         string    `json:"summary,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// Insight is a cohesive, ranked observation built from analyzer results.
type Insight struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Summary         string          `json:"summary"`
	Details         string          `json:"details"`
	Priority        models.Priority `json:"priority"`
	Category        string          `json:"category"`
	Actionable      bool            `json:"actionable"`
	Recommendations []string        `json:"recommendations,omitempty"`
	RelatedInsights []string        `json:"related_insights"`
}

// Generator aggregates analyzer results into insights.
type Generator struct {
	newID func() string
}

// NewGenerator constructs a Generator that stamps insights with random UUIDs.
func NewGenerator() *Generator {
	return &Generator{newID: uuid.NewString}
}

// Generate merges results into one insight led by the most confident result.
func (g *Generator) Generate(results []AnalysisResult) (Insight, error) {
	if len(results) == 0 {
		return Insight{}, ErrNoResults
	}

	primary := results[0]
	total := 0.0
	distinct := make(map[Source]struct{}, len(results))
	recs := make([]string, 0)
	seenRec := make(map[string]struct{})
	for _, r := range results {
		if r.Confidence > primary.Confidence {
			primary = r
		}
		total += r.Confidence
		distinct[r.Source] = struct{}{}
		for _, rec := range r.Recommendations {
			if _, dup := seenRec[rec]; rec == "" || dup {
				continue
			}
			seenRec[rec] = struct{}{}
			recs = append(recs, rec)
		}
	}
	avg := total / float64(len(results))

	title, ok := sourceTitles[primary.Source]
	if !ok {
		title = "Lifestyle Insight"
	}
	category, ok := sourceCategories[primary.Source]
	if !ok {
		category = "General Wellness"
	}

	var summary string
	if len(distinct) == 1 {
		summary = fmt.Sprintf("Analysis from %s indicates patterns in your lifestyle.", results[0].Source)
	} else {
		summary = fmt.Sprintf("Combined analysis from %d sources reveals insights about your habits.", len(distinct))
	}

	details := make([]string, 0, len(results))
	for _, r := range results {
		line := fmt.Sprintf("%s analysis (confidence: %.1f%%) provides insights about your lifestyle patterns.", r.Source.DisplayName(), r.Confidence)
		if r.Summary != "" {
			line += " " + r.Summary
		}
		details = append(details, line)
	}

	return Insight{
		ID:              g.newID(),
		Title:           title,
		Summary:         summary,
		Details:         strings.Join(details, " "),
		Priority:        priorityFor(avg, len(distinct)),
		Category:        category,
		Actionable:      len(recs) > 0,
		Recommendations: recs,
		RelatedInsights: []string{},
	}, nil
}

func priorityFor(avgConfidence float64, sources int) models.Priority {
	switch {
	case avgConfidence >= 80 && sources >= 3:
		return models.PriorityHigh
	case avgConfidence >= 60 || sources >= 2:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

const dedupeTitleRunes = 20

// Prioritize drops near-duplicates, keyed by category and leading title
// runes, then orders by priority with actionable insights first. Ties keep
// input order.
func Prioritize(insights []Insight) []Insight {
	if len(insights) == 0 {
		return []Insight{}
	}
	type key struct{ category, title string }
	seen := make(map[key]struct{}, len(insights))
	out := make([]Insight, 0, len(insights))
	for _, in := range insights {
		k := key{in.Category, leadingRunes(in.Title, dedupeTitleRunes)}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, in)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].Actionable && !out[j].Actionable
	})
	return out
}

func leadingRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
