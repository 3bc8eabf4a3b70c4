// Package classify implements the weighted multi-criteria classifier shared by
// the food, body-type and retention analyzers.
//
// Classification is a fixed sequence of pure steps: Score, ApplyOverrides,
// ArgMax, ApplyCautionTieBreak, Confidence and Explain. Each step can be
// exercised on its own; Classify composes them.
package classify

import "strings"

// Result is the outcome of one classification.
type Result struct {
	Category        Category `json:"category"`
	Confidence      float64  `json:"confidence"`
	Rationale       string   `json:"rationale"`
	DominantFactors []string `json:"dominant_factors"`
}

// ScoreSet maps every configured category to a score, preserving config order.
type ScoreSet struct {
	order  []Category
	scores map[Category]float64
}

// NewScoreSet builds a ScoreSet from ordered categories and their scores.
func NewScoreSet(order []Category, scores map[Category]float64) ScoreSet {
	s := ScoreSet{
		order:  append([]Category(nil), order...),
		scores: make(map[Category]float64, len(order)),
	}
	for _, c := range order {
		s.scores[c] = scores[c]
	}
	return s
}

// Get returns the score for c.
func (s ScoreSet) Get(c Category) (float64, bool) {
	v, ok := s.scores[c]
	return v, ok
}

// Categories returns the categories in config order.
func (s ScoreSet) Categories() []Category {
	return append([]Category(nil), s.order...)
}

// Len returns the number of scored categories.
func (s ScoreSet) Len() int {
	return len(s.order)
}

// With returns a copy of s with c's score replaced.
func (s ScoreSet) With(c Category, v float64) ScoreSet {
	out := NewScoreSet(s.order, s.scores)
	if _, ok := out.scores[c]; ok {
		out.scores[c] = v
	}
	return out
}

// Score computes the weighted score of every configured category.
func Score(f Features, cfg Config) ScoreSet {
	order := make([]Category, 0, len(cfg.Categories))
	scores := make(map[Category]float64, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		total := 0.0
		for _, term := range cat.Terms {
			v := Clamp(f.Value(term.Feature), 0, 1)
			if term.Invert {
				v = 1 - v
			}
			total += term.Weight * v
		}
		order = append(order, cat.Category)
		scores[cat.Category] = Clamp(total, 0, 1)
	}
	return NewScoreSet(order, scores)
}

// ApplyOverrides raises scores to the floors of every tripped override, in
// config order. The first tripped forced override is returned as the winner.
func ApplyOverrides(scores ScoreSet, f Features, overrides []Override) (ScoreSet, Category, bool) {
	out := scores
	var forced Category
	hasForced := false
	for _, o := range overrides {
		if !o.Matches(f) {
			continue
		}
		if current, ok := out.Get(o.Category); ok && current < o.Floor {
			out = out.With(o.Category, o.Floor)
		}
		if o.Force && !hasForced {
			forced, hasForced = o.Category, true
		}
	}
	return out, forced, hasForced
}

// ArgMax returns the highest-scoring category; ties go to the earlier category.
func ArgMax(scores ScoreSet) Category {
	var best Category
	bestScore := 0.0
	for i, c := range scores.order {
		v := scores.scores[c]
		if i == 0 || v > bestScore {
			best, bestScore = c, v
		}
	}
	return best
}

// ApplyCautionTieBreak second-guesses a lenient winner: the first stricter
// category scoring within the margin of it wins instead. Any other winner is
// returned unchanged.
func ApplyCautionTieBreak(scores ScoreSet, winner Category, tb TieBreak) Category {
	if tb.Lenient == "" || winner != tb.Lenient {
		return winner
	}
	margin := tb.Margin
	if margin <= 0 {
		margin = DefaultTieMargin
	}
	top, _ := scores.Get(winner)
	for _, stricter := range tb.Stricter {
		v, ok := scores.Get(stricter)
		if !ok {
			continue
		}
		if diff := top - v; diff < margin && diff > -margin {
			return stricter
		}
	}
	return winner
}

// Confidence maps the winner's separation from the best other category onto
// [60,95]. A single scored category is always 95.
func Confidence(scores ScoreSet, winner Category) float64 {
	if scores.Len() <= 1 {
		return 95
	}
	winnerScore, _ := scores.Get(winner)
	bestOther := 0.0
	first := true
	for _, c := range scores.order {
		if c == winner {
			continue
		}
		v := scores.scores[c]
		if first || v > bestOther {
			bestOther = v
			first = false
		}
	}
	return Clamp(60+70*(winnerScore-bestOther), 60, 95)
}

// Explain renders the winner's rationale and dominant factors from its rule table.
func Explain(f Features, winner Category, cfg Config) (string, []string) {
	fallbackFactor := cfg.FallbackFactor
	if fallbackFactor == "" {
		fallbackFactor = DefaultFallbackFactor
	}

	cc, ok := cfg.category(winner)
	if !ok {
		return "Classified as " + string(winner) + ".", []string{fallbackFactor}
	}

	phrases := make([]string, 0, len(cc.Rationale.Rules))
	factors := make([]string, 0, len(cc.Rationale.Rules))
	for _, rule := range cc.Rationale.Rules {
		if rule.When != nil && !rule.When(f) {
			continue
		}
		if rule.Phrase != nil {
			if phrase := rule.Phrase(f); phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
		if rule.Factor != "" {
			factors = append(factors, rule.Factor)
		}
	}

	if len(phrases) == 0 {
		fallback := cc.Rationale.Fallback
		if fallback == "" {
			fallback = "its overall composition"
		}
		phrases = append(phrases, fallback)
	}
	if len(factors) == 0 {
		factors = append(factors, fallbackFactor)
	}

	prefix := cc.Rationale.Prefix
	if prefix == "" {
		prefix = "Classified as " + string(winner) + " due to "
	}
	suffix := cc.Rationale.Suffix
	if suffix == "" {
		suffix = "."
	}
	return prefix + strings.Join(phrases, ", ") + suffix, factors
}

// Classify scores f against cfg and resolves a single winning category.
func Classify(f Features, cfg Config) Result {
	scores := Score(f, cfg)
	scores, forced, isForced := ApplyOverrides(scores, f, cfg.Overrides)

	winner := forced
	if !isForced {
		winner = ApplyCautionTieBreak(scores, ArgMax(scores), cfg.TieBreak)
	}

	rationale, factors := Explain(f, winner, cfg)
	return Result{
		Category:        winner,
		Confidence:      Confidence(scores, winner),
		Rationale:       rationale,
		DominantFactors: factors,
	}
}

// Clamp bounds value to [min,max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
