// Package validation checks and sanitizes raw lifestyle documents before they
// reach the analyzers.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

const (
	maxCalories      = 5000
	maxProtein       = 200
	maxCarbohydrates = 500
	maxFat           = 200
	maxSodium        = 5000
)

// Issue describes one problem with a document and how to fix it.
type Issue struct {
	Field        string `json:"field"`
	Message      string `json:"message"`
	SuggestedFix string `json:"suggested_fix"`
}

// Result is the outcome of validating a document. Input is set only when
// the document is valid.
type Result struct {
	Valid  bool                   `json:"is_valid"`
	Issues []Issue                `json:"errors"`
	Input  *models.LifestyleInput `json:"validated_data,omitempty"`
}

// Err converts an invalid result into an error wrapping utils.ErrInvalidInput.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		msgs = append(msgs, issue.Field+": "+issue.Message)
	}
	return utils.NewAppError("validation.Validate", strings.Join(msgs, "; "), utils.ErrInvalidInput)
}

var injectionPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>|javascript:|on\w+\s*=|\b(SELECT|INSERT|UPDATE|DELETE|DROP)\b|\|\||&&|;|\$\(`)

// Validator validates lifestyle documents against the schema and
// consistency rules.
type Validator struct {
	schema *gojsonschema.Schema
	now    func() time.Time
}

// NewValidator compiles the lifestyle schema.
func NewValidator() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(lifestyleSchema))
	if err != nil {
		return nil, fmt.Errorf("compile lifestyle schema: %w", err)
	}
	return &Validator{schema: schema, now: time.Now}, nil
}

// Validate sanitizes the raw document, checks it against the schema and the
// consistency rules and decodes it.
func (v *Validator) Validate(raw []byte) Result {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return invalid(Issue{
			Field:        "general",
			Message:      "Input must be a JSON object",
			SuggestedFix: "Please provide the lifestyle entry as a JSON object",
		})
	}
	doc = v.Sanitize(doc)

	issues := make([]Issue, 0)
	if !hasAnalyzableData(doc) {
		issues = append(issues, Issue{
			Field:        "general",
			Message:      "Input must contain at least one of: food items, sleep data, or daily habits",
			SuggestedFix: "Please provide food items, sleep information, or daily habits to analyze",
		})
	}

	res, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return invalid(Issue{Field: "general", Message: fmt.Sprintf("schema validation error: %v", err), SuggestedFix: "Please check the document structure"})
	}
	for _, e := range res.Errors() {
		issues = append(issues, schemaIssue(e))
	}
	if len(issues) > 0 {
		return invalid(issues...)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return invalid(Issue{Field: "general", Message: err.Error(), SuggestedFix: "Please check the document structure"})
	}
	var input models.LifestyleInput
	if err := json.Unmarshal(data, &input); err != nil {
		return invalid(Issue{Field: "general", Message: err.Error(), SuggestedFix: "Please check field types and formats"})
	}

	if issues := CheckConsistency(input); len(issues) > 0 {
		return invalid(issues...)
	}
	return Result{Valid: true, Issues: []Issue{}, Input: &input}
}

func invalid(issues ...Issue) Result {
	return Result{Valid: false, Issues: issues}
}

func hasAnalyzableData(doc map[string]any) bool {
	if items, ok := doc["food_items"].([]any); ok && len(items) > 0 {
		return true
	}
	if sleep, ok := doc["sleep_data"]; ok && sleep != nil {
		return true
	}
	habits, ok := doc["daily_habits"].([]any)
	return ok && len(habits) > 0
}

func schemaIssue(e gojsonschema.ResultError) Issue {
	field := strings.TrimPrefix(strings.TrimPrefix(e.Field(), "(root)"), ".")
	if e.Type() == "required" {
		if prop, ok := e.Details()["property"].(string); ok && !strings.HasSuffix(field, prop) {
			if field == "" {
				field = prop
			} else {
				field += "." + prop
			}
		}
	}
	if field == "" {
		field = "general"
	}
	return Issue{Field: field, Message: e.Description(), SuggestedFix: suggestFix(field, e.Type())}
}

func suggestFix(field, errType string) string {
	switch {
	case errType == "required":
		return fmt.Sprintf("Please provide a value for '%s'", field)
	case errType == "invalid_type":
		return fmt.Sprintf("Please provide a value of the correct type for '%s'", field)
	case strings.HasSuffix(errType, "_gte") || strings.HasSuffix(errType, "_gt"):
		return fmt.Sprintf("Please provide a value greater than the minimum for '%s'", field)
	case strings.HasSuffix(errType, "_lte") || strings.HasSuffix(errType, "_lt"):
		return fmt.Sprintf("Please provide a value less than the maximum for '%s'", field)
	case errType == "enum" || errType == "does_not_match_pattern" || errType == "format":
		return fmt.Sprintf("Please provide a valid value for '%s'", field)
	default:
		return fmt.Sprintf("Please check the value for '%s' and ensure it meets the requirements", field)
	}
}

// CheckConsistency flags logically inconsistent or implausible entries.
func CheckConsistency(input models.LifestyleInput) []Issue {
	issues := make([]Issue, 0)

	if sleep := input.SleepData; sleep != nil {
		if sleep.Duration > 24 {
			issues = append(issues, Issue{
				Field:        "sleep_data.duration",
				Message:      "Sleep duration cannot exceed 24 hours",
				SuggestedFix: "Please provide a sleep duration between 0 and 24 hours",
			})
		}
		if sleep.Quality >= 8 && sleep.Interruptions > 5 {
			issues = append(issues, Issue{
				Field:        "sleep_data",
				Message:      "High sleep quality (8+) with many interruptions (>5) seems inconsistent",
				SuggestedFix: "Please verify sleep quality rating or number of interruptions",
			})
		}
	}

	seen := make(map[string]struct{}, len(input.FoodItems))
	duplicate := false
	for _, item := range input.FoodItems {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if _, ok := seen[name]; ok {
			duplicate = true
		}
		seen[name] = struct{}{}
	}
	if duplicate {
		issues = append(issues, Issue{
			Field:        "food_items",
			Message:      "Duplicate food items detected",
			SuggestedFix: "If you consumed the same food multiple times, consider combining them or adding notes to distinguish",
		})
	}

	for i, item := range input.FoodItems {
		n := item.NutritionalInfo
		for _, check := range []struct {
			name  string
			value float64
			limit float64
			unit  string
		}{
			{"calories", n.Calories, maxCalories, ""},
			{"protein", n.Protein, maxProtein, "g"},
			{"carbohydrates", n.Carbohydrates, maxCarbohydrates, "g"},
			{"fat", n.Fat, maxFat, "g"},
			{"sodium", n.Sodium, maxSodium, "mg"},
		} {
			if check.value <= check.limit {
				continue
			}
			issues = append(issues, Issue{
				Field: fmt.Sprintf("food_items[%d].nutritional_info.%s", i, check.name),
				Message: fmt.Sprintf("%s value %g%s is unrealistically high for a single food item",
					strings.ToUpper(check.name[:1])+check.name[1:], check.value, check.unit),
				SuggestedFix: fmt.Sprintf("Please verify the %s value is correct (typical range: 0-%g%s per serving)",
					check.name, check.limit, check.unit),
			})
		}
	}
	return issues
}

// Sanitize trims and normalises every string, strips injection patterns,
// widens date-only timestamps to RFC3339 and fills in a missing timestamp.
// The document is modified in place.
func (v *Validator) Sanitize(doc map[string]any) map[string]any {
	for k, val := range doc {
		doc[k] = sanitizeValue(val)
	}
	if ts, ok := doc["timestamp"]; !ok || ts == nil || ts == "" {
		doc["timestamp"] = v.now().UTC().Format(time.RFC3339)
	}
	normalizeTimestamp(doc)
	if sleep, ok := doc["sleep_data"].(map[string]any); ok {
		normalizeTimestamp(sleep)
	}
	return doc
}

// normalizeTimestamp rewrites a parseable "timestamp" entry as RFC3339 and
// leaves anything else for the schema to reject.
func normalizeTimestamp(m map[string]any) {
	raw, ok := m["timestamp"].(string)
	if !ok || raw == "" {
		return
	}
	if t, err := utils.ParseTimestamp(raw); err == nil {
		m["timestamp"] = t.UTC().Format(time.RFC3339)
	}
}

func sanitizeValue(val any) any {
	switch t := val.(type) {
	case map[string]any:
		for k, inner := range t {
			t[k] = sanitizeValue(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = sanitizeValue(inner)
		}
		return t
	case string:
		return SanitizeString(t)
	default:
		return val
	}
}

// SanitizeString trims the value, removes injection patterns and collapses
// runs of whitespace.
func SanitizeString(value string) string {
	value = injectionPattern.ReplaceAllString(strings.TrimSpace(value), "")
	return strings.Join(strings.Fields(value), " ")
}
