package classify

import (
	"reflect"
	"strings"
	"testing"
)

const (
	catSafe   Category = "safe"
	catRisky  Category = "risky"
	catBanned Category = "banned"
)

func testConfig() Config {
	return Config{
		Categories: []CategoryConfig{
			{
				Category: catSafe,
				Terms: []Term{
					{Feature: "quality", Weight: 0.7},
					{Feature: "risk", Weight: 0.3, Invert: true},
				},
				Rationale: Rationale{
					Prefix: "Safe because ",
					Rules: []Rule{
						{
							Factor: "quality",
							When:   func(f Features) bool { return f.Value("quality") >= 0.7 },
							Phrase: func(Features) string { return "quality is high" },
						},
					},
				},
			},
			{
				Category: catRisky,
				Terms:    []Term{{Feature: "risk", Weight: 1}},
				Rationale: Rationale{
					Prefix: "Risky because ",
					Rules: []Rule{
						{
							Factor: "risk",
							When:   func(f Features) bool { return f.Value("risk") > 0.5 },
							Phrase: func(Features) string { return "risk is elevated" },
						},
					},
				},
			},
			{
				Category: catBanned,
				Terms:    []Term{{Feature: "flags", Weight: 1}},
			},
		},
		Overrides: []Override{
			{Name: "flagged", Feature: "flag_count", Op: AtLeast, Threshold: 3, Category: catBanned, Floor: 0.8, Force: true},
			{Name: "risky_floor", Feature: "raw_risk", Op: Above, Threshold: 10, Category: catRisky, Floor: 0.6},
		},
		TieBreak: TieBreak{Lenient: catSafe, Stricter: []Category{catRisky}, Margin: DefaultTieMargin},
	}
}

func TestConfigValidate(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bad := testConfig()
	bad.Categories[0].Terms[0].Weight = 0.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected weight sum error")
	}

	bad = testConfig()
	bad.Overrides[0].Category = "unknown"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown override category error")
	}

	bad = testConfig()
	bad.TieBreak.Stricter = []Category{"nope"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unknown tie-break category error")
	}
}

func TestScoreClipsAndInverts(t *testing.T) {
	f := NewFeatures(map[string]float64{"quality": 1.4, "risk": -2, "flags": 0.25}, nil)
	scores := Score(f, testConfig())

	if scores.Len() != 3 {
		t.Fatalf("expected 3 scores, got %d", scores.Len())
	}
	if got, _ := scores.Get(catSafe); got != 1 {
		t.Fatalf("expected clipped safe score 1, got %f", got)
	}
	if got, _ := scores.Get(catRisky); got != 0 {
		t.Fatalf("expected clipped risky score 0, got %f", got)
	}
	if got, _ := scores.Get(catBanned); got != 0.25 {
		t.Fatalf("expected banned score 0.25, got %f", got)
	}
	want := []Category{catSafe, catRisky, catBanned}
	if !reflect.DeepEqual(scores.Categories(), want) {
		t.Fatalf("expected config order %v, got %v", want, scores.Categories())
	}
}

func TestApplyOverridesFloorsAndForces(t *testing.T) {
	f := NewFeatures(map[string]float64{"flag_count": 4, "raw_risk": 12}, nil)
	scores := NewScoreSet([]Category{catSafe, catRisky, catBanned}, map[Category]float64{catSafe: 0.9, catRisky: 0.2, catBanned: 0.1})

	out, forced, ok := ApplyOverrides(scores, f, testConfig().Overrides)
	if !ok || forced != catBanned {
		t.Fatalf("expected banned forced, got %q (%v)", forced, ok)
	}
	if got, _ := out.Get(catBanned); got != 0.8 {
		t.Fatalf("expected banned floor 0.8, got %f", got)
	}
	if got, _ := out.Get(catRisky); got != 0.6 {
		t.Fatalf("expected risky floor 0.6, got %f", got)
	}
	if got, _ := scores.Get(catBanned); got != 0.1 {
		t.Fatalf("input score set mutated: %f", got)
	}
}

func TestApplyOverridesKeepsHigherScore(t *testing.T) {
	f := NewFeatures(map[string]float64{"raw_risk": 20}, nil)
	scores := NewScoreSet([]Category{catSafe, catRisky}, map[Category]float64{catSafe: 0.1, catRisky: 0.9})

	out, _, ok := ApplyOverrides(scores, f, testConfig().Overrides)
	if ok {
		t.Fatalf("did not expect a forced winner")
	}
	if got, _ := out.Get(catRisky); got != 0.9 {
		t.Fatalf("floor must not lower a score, got %f", got)
	}
}

func TestOverrideIgnoresMissingFeature(t *testing.T) {
	o := Override{Feature: "absent", Op: AtMost, Threshold: 1}
	if o.Matches(NewFeatures(nil, nil)) {
		t.Fatalf("override should not trip on a missing feature")
	}
}

func TestArgMaxPrefersConfigOrderOnTies(t *testing.T) {
	scores := NewScoreSet([]Category{catRisky, catSafe}, map[Category]float64{catSafe: 0.5, catRisky: 0.5})
	if got := ArgMax(scores); got != catRisky {
		t.Fatalf("expected first category on tie, got %s", got)
	}
}

func TestCautionTieBreak(t *testing.T) {
	tb := testConfig().TieBreak
	cases := []struct {
		name   string
		scores map[Category]float64
		winner Category
		want   Category
	}{
		{"near tie goes strict", map[Category]float64{catSafe: 0.6, catRisky: 0.5}, catSafe, catRisky},
		{"clear lead stays lenient", map[Category]float64{catSafe: 0.8, catRisky: 0.5}, catSafe, catSafe},
		{"strict winner untouched", map[Category]float64{catSafe: 0.55, catRisky: 0.6}, catRisky, catRisky},
		{"unlisted category ignored", map[Category]float64{catSafe: 0.6, catBanned: 0.59}, catSafe, catSafe},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scores := NewScoreSet([]Category{catSafe, catRisky, catBanned}, tc.scores)
			if got := ApplyCautionTieBreak(scores, tc.winner, tb); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestConfidenceBoundsAndMonotonicity(t *testing.T) {
	order := []Category{catSafe, catRisky}
	prev := 0.0
	for _, sep := range []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1} {
		scores := NewScoreSet(order, map[Category]float64{catSafe: sep, catRisky: 0})
		got := Confidence(scores, catSafe)
		if got < 60 || got > 95 {
			t.Fatalf("confidence %f outside [60,95] for separation %f", got, sep)
		}
		if got < prev {
			t.Fatalf("confidence decreased from %f to %f at separation %f", prev, got, sep)
		}
		prev = got
	}
	if prev != 95 {
		t.Fatalf("expected cap at 95, got %f", prev)
	}

	single := NewScoreSet([]Category{catSafe}, map[Category]float64{catSafe: 0.1})
	if got := Confidence(single, catSafe); got != 95 {
		t.Fatalf("expected 95 for a single category, got %f", got)
	}
}

func TestExplainFallback(t *testing.T) {
	cfg := testConfig()
	rationale, factors := Explain(NewFeatures(map[string]float64{"quality": 0.1}, nil), catSafe, cfg)
	if rationale == "" {
		t.Fatalf("rationale must never be empty")
	}
	if !reflect.DeepEqual(factors, []string{DefaultFallbackFactor}) {
		t.Fatalf("expected fallback factor, got %v", factors)
	}

	rationale, _ = Explain(NewFeatures(nil, nil), catBanned, cfg)
	if !strings.HasPrefix(rationale, "Classified as banned due to ") {
		t.Fatalf("unexpected default prefix: %q", rationale)
	}
}

func TestClassifyDeterministicAndClosed(t *testing.T) {
	cfg := testConfig()
	known := map[Category]bool{catSafe: true, catRisky: true, catBanned: true}
	inputs := []map[string]float64{
		{"quality": 0.9, "risk": 0.1},
		{"quality": 0.4, "risk": 0.6},
		{"quality": 0.5, "risk": 0.5, "flags": 0.9},
		{"flag_count": 5},
		{},
	}
	for _, values := range inputs {
		f := NewFeatures(values, nil)
		first := Classify(f, cfg)
		for i := 0; i < 5; i++ {
			if again := Classify(f, cfg); !reflect.DeepEqual(first, again) {
				t.Fatalf("classification not deterministic: %+v vs %+v", first, again)
			}
		}
		if !known[first.Category] {
			t.Fatalf("unknown category %q", first.Category)
		}
		if first.Confidence < 60 || first.Confidence > 95 {
			t.Fatalf("confidence %f out of bounds", first.Confidence)
		}
		if first.Rationale == "" || len(first.DominantFactors) == 0 {
			t.Fatalf("missing rationale or factors: %+v", first)
		}
	}
}

func TestClassifyForcedOverrideWins(t *testing.T) {
	res := Classify(NewFeatures(map[string]float64{"quality": 1, "risk": 0, "flag_count": 3}, nil), testConfig())
	if res.Category != catBanned {
		t.Fatalf("expected forced banned category, got %s", res.Category)
	}
}
