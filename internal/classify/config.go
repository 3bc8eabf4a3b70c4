package classify

import (
	"fmt"
	"math"
)

// Category is one member of a classifier's closed category set.
type Category string

// DefaultFallbackFactor tags a result when no rationale rule fired.
const DefaultFallbackFactor = "overall_composition"

// DefaultTieMargin is the score gap under which the caution tie-break applies.
const DefaultTieMargin = 0.15

// Term is one weighted sub-factor of a category score.
type Term struct {
	Feature string  `yaml:"feature"`
	Weight  float64 `yaml:"weight"`
	// Invert scores the term as 1-x after clipping.
	Invert bool `yaml:"invert"`
}

// Comparison is the operator an Override applies to its feature.
type Comparison string

const (
	AtLeast  Comparison = ">="
	Above    Comparison = ">"
	AtMost   Comparison = "<="
	Below    Comparison = "<"
	EqualTo  Comparison = "=="
	NotEqual Comparison = "!="
)

// Override raises a category score to a floor when an absolute threshold trips.
// Forced overrides also decide the winner outright.
type Override struct {
	Name      string     `yaml:"name"`
	Feature   string     `yaml:"feature"`
	Op        Comparison `yaml:"op"`
	Threshold float64    `yaml:"threshold"`
	Category  Category   `yaml:"category"`
	Floor     float64    `yaml:"floor"`
	Force     bool       `yaml:"force"`
}

// Matches reports whether the override's threshold trips for f.
func (o Override) Matches(f Features) bool {
	if !f.Has(o.Feature) {
		return false
	}
	v := f.Value(o.Feature)
	switch o.Op {
	case AtLeast:
		return v >= o.Threshold
	case Above:
		return v > o.Threshold
	case AtMost:
		return v <= o.Threshold
	case Below:
		return v < o.Threshold
	case EqualTo:
		return v == o.Threshold
	case NotEqual:
		return v != o.Threshold
	default:
		return false
	}
}

// TieBreak prefers a stricter category over a near-tied lenient winner.
type TieBreak struct {
	Lenient Category `yaml:"lenient"`
	// Stricter is checked in order; the first within Margin wins.
	Stricter []Category `yaml:"stricter"`
	Margin   float64    `yaml:"margin"`
}

// Rule contributes a phrase and a dominant-factor tag when its predicate holds.
// A nil Phrase, or one returning "", contributes the tag only.
type Rule struct {
	Factor string
	When   func(Features) bool
	Phrase func(Features) string
}

// Rationale renders the explanation for one category.
type Rationale struct {
	Prefix   string
	Suffix   string
	Fallback string
	Rules    []Rule
}

// CategoryConfig holds the weight table and rationale for one category.
type CategoryConfig struct {
	Category  Category
	Terms     []Term
	Rationale Rationale
}

// Config fully describes one classifier. It is read-only once built.
type Config struct {
	Categories     []CategoryConfig
	Overrides      []Override
	TieBreak       TieBreak
	FallbackFactor string
}

// Validate checks weights, category references and the tie-break policy.
func (c Config) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("classifier has no categories")
	}
	known := make(map[Category]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Category == "" {
			return fmt.Errorf("category name is empty")
		}
		if _, dup := known[cat.Category]; dup {
			return fmt.Errorf("category %s declared twice", cat.Category)
		}
		known[cat.Category] = struct{}{}

		sum := 0.0
		for _, term := range cat.Terms {
			if term.Weight < 0 {
				return fmt.Errorf("category %s: negative weight for %s", cat.Category, term.Feature)
			}
			sum += term.Weight
		}
		if math.Abs(sum-1) > 1e-6 {
			return fmt.Errorf("category %s: weights sum to %.4f, want 1", cat.Category, sum)
		}
	}
	for _, o := range c.Overrides {
		if _, ok := known[o.Category]; !ok {
			return fmt.Errorf("override %s targets unknown category %s", o.Name, o.Category)
		}
		if o.Floor < 0 || o.Floor > 1 {
			return fmt.Errorf("override %s: floor %.2f outside [0,1]", o.Name, o.Floor)
		}
	}
	if c.TieBreak.Lenient != "" {
		if _, ok := known[c.TieBreak.Lenient]; !ok {
			return fmt.Errorf("tie-break lenient category %s unknown", c.TieBreak.Lenient)
		}
		for _, s := range c.TieBreak.Stricter {
			if _, ok := known[s]; !ok {
				return fmt.Errorf("tie-break stricter category %s unknown", s)
			}
		}
	}
	return nil
}

func (c Config) category(cat Category) (CategoryConfig, bool) {
	for _, cc := range c.Categories {
		if cc.Category == cat {
			return cc, true
		}
	}
	return CategoryConfig{}, false
}
