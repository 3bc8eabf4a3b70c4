package engine

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	return path
}

func TestRuleEngineRecommend(t *testing.T) {
	path := writeRules(t, `rules:
  - id: sodium
    match:
      source: water
      factor: ["sodium"]
    recommendations: ["Swap one processed meal for a fresh one", "Track salty snacks"]
  - id: high-retention
    match:
      source: water
      level: high
    recommendations: ["Track salty snacks", "Weigh in at the same time each morning"]
  - id: poor-sleep
    match:
      source: sleep
      level: poor
    recommendations: ["Keep a fixed wake time"]
`)

	engine, err := NewRuleEngine(path, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}
	if engine.Len() != 3 {
		t.Fatalf("expected 3 rules, got %d", engine.Len())
	}

	recs := engine.Recommend([]Finding{
		{Source: "water", Level: "HIGH", Factors: []string{"sodium", "stress"}},
		{Source: "sleep", Level: "good"},
	})
	want := []string{"Swap one processed meal for a fresh one", "Track salty snacks", "Weigh in at the same time each morning"}
	if len(recs) != len(want) {
		t.Fatalf("expected %v, got %v", want, recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, recs)
		}
	}
}

func TestRuleEngineNoFile(t *testing.T) {
	engine, err := NewRuleEngine("non-existent", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if engine != nil {
		t.Fatalf("expected nil engine when file missing")
	}
	if recs := engine.Recommend([]Finding{{Source: "water"}}); recs != nil {
		t.Fatalf("nil engine should recommend nothing, got %v", recs)
	}
}

func TestRuleEngineBadYAML(t *testing.T) {
	path := writeRules(t, "rules: [unterminated")
	if _, err := NewRuleEngine(path, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
