package engine

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

// Finding summarises one analyzer's outcome for rule matching.
type Finding struct {
	Source  string
	Level   string
	Factors []string
}

// RuleEngine adds rule-pack recommendations on top of the analyzers' own advice.
type RuleEngine struct {
	rules  []Rule
	logger *slog.Logger
}

// Rule represents a single recommendation rule.
type Rule struct {
	ID              string    `yaml:"id"`
	Match           RuleMatch `yaml:"match"`
	Recommendations []string  `yaml:"recommendations"`
}

// RuleMatch defines optional attributes for rule matching. Empty fields match anything.
type RuleMatch struct {
	Source string   `yaml:"source"`
	Level  string   `yaml:"level"`
	Factor []string `yaml:"factor"`
}

// RuleConfigFile is the YAML root structure.
type RuleConfigFile struct {
	Rules []Rule `yaml:"rules"`
}

// NewRuleEngine loads rules from the provided path. If path is empty or the
// file does not exist, returns nil engine.
func NewRuleEngine(path string, logger *slog.Logger) (*RuleEngine, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, utils.NewAppError("engine.NewRuleEngine", "read rule pack", err)
	}
	var cfg RuleConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, utils.NewAppError("engine.NewRuleEngine", "parse rule pack", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("rule pack loaded", slog.String("path", path), slog.Int("rules", len(cfg.Rules)))
	return &RuleEngine{rules: cfg.Rules, logger: logger}, nil
}

// Len reports the number of loaded rules.
func (e *RuleEngine) Len() int {
	if e == nil {
		return 0
	}
	return len(e.rules)
}

// Recommend returns the recommendations of every rule matched by at least one
// finding, in rule order without duplicates.
func (e *RuleEngine) Recommend(findings []Finding) []string {
	if e == nil {
		return nil
	}

	matched := make([]string, 0)
	for _, rule := range e.rules {
		for _, f := range findings {
			if !rule.Match.matches(f) {
				continue
			}
			e.logger.Debug("rule matched", slog.String("rule", rule.ID), slog.String("source", f.Source))
			matched = appendUnique(matched, rule.Recommendations...)
			break
		}
	}
	return matched
}

func (m RuleMatch) matches(f Finding) bool {
	if m.Source != "" && !strings.EqualFold(m.Source, f.Source) {
		return false
	}
	if m.Level != "" && !strings.EqualFold(m.Level, f.Level) {
		return false
	}
	return len(m.Factor) == 0 || factorsContain(m.Factor, f.Factors)
}

func factorsContain(wanted, factors []string) bool {
	for _, factor := range factors {
		for _, w := range wanted {
			if w != "" && strings.EqualFold(w, factor) {
				return true
			}
		}
	}
	return false
}

func appendUnique(existing []string, additions ...string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		seen[rec] = struct{}{}
	}
	for _, item := range additions {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		existing = append(existing, item)
		seen[item] = struct{}{}
	}
	return existing
}
