package insights

import (
	"regexp"
	"strings"

	"github.com/jeevanfit/jeevanfit-engine/internal/models"
)

// Disclaimer is attached to every piece of educational content.
const Disclaimer = "JeevanFit is an educational tool for habit awareness, not a medical device. " +
	"This information is for educational purposes only and should not be considered medical advice. " +
	"If you have health concerns, please consult a healthcare professional."

const consultationNote = " We recommend consulting with a healthcare professional to discuss these " +
	"patterns and get personalized guidance for your situation."

// ConfidenceLevel grades how well a cause-effect relationship is understood.
type ConfidenceLevel string

const (
	WellEstablished ConfidenceLevel = "well_established"
	Supported       ConfidenceLevel = "supported"
	Theoretical     ConfidenceLevel = "theoretical"
)

// CauseEffect explains one habit and the response it tends to produce.
type CauseEffect struct {
	Cause       string          `json:"cause"`
	Effect      string          `json:"effect"`
	Explanation string          `json:"explanation"`
	Confidence  ConfidenceLevel `json:"confidence"`
}

// Resource is a pointer to further reading.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// EducationalContent is an insight rewritten in plain, non-clinical language.
type EducationalContent struct {
	MainMessage string        `json:"main_message"`
	Explanation string        `json:"explanation"`
	CauseEffect []CauseEffect `json:"cause_effect"`
	LearnMore   []Resource    `json:"learn_more"`
	Disclaimer  string        `json:"disclaimer"`
}

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// Applied in order; earlier replacements may feed later ones.
var medicalTerms = compileReplacements([][2]string{
	{"diagnosis", "observation"},
	{"diagnose", "observe"},
	{"disease", "condition"},
	{"disorder", "pattern"},
	{"syndrome", "pattern"},
	{"treatment", "approach"},
	{"treat", "address"},
	{"cure", "improve"},
	{"prescription", "suggestion"},
	{"prescribe", "suggest"},
	{"medication", "approach"},
	{"symptom", "sign"},
	{"pathology", "pattern"},
	{"clinical", "observable"},
	{"therapeutic", "beneficial"},
})

func compileReplacements(pairs [][2]string) []replacement {
	out := make([]replacement, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, replacement{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`),
			with:    p[1],
		})
	}
	return out
}

var concernIndicators = []string{
	"severe", "extreme", "chronic", "persistent", "significant",
	"very high", "very low", "excessive", "insufficient",
	"poor quality", "disrupted", "irregular", "abnormal",
}

var wellnessContexts = map[string]string{
	"Nutrition": "Understanding how different foods affect your body helps you make informed dietary " +
		"choices that support your energy levels and overall wellness.",
	"Hydration": "Proper hydration and water balance are essential for many body functions, including " +
		"temperature regulation, nutrient transport, and waste removal.",
	"Sleep & Recovery": "Quality sleep is fundamental to physical recovery, mental clarity, and overall health. " +
		"Your sleep patterns directly impact how you feel and function during the day.",
	"Metabolism": "Your body's metabolic characteristics influence how you process nutrients and respond " +
		"to lifestyle changes. Understanding these patterns helps you tailor your habits effectively.",
	"Lifestyle Patterns": "Recognizing patterns in your daily habits empowers you to make intentional " +
		"changes that align with your wellness goals.",
}

const defaultWellnessContext = "Understanding your lifestyle patterns helps you make informed decisions " +
	"about your health and wellness."

// EnsureNonMedical swaps clinical vocabulary for wellness-oriented wording.
func EnsureNonMedical(text string) string {
	for _, r := range medicalTerms {
		text = r.pattern.ReplaceAllString(text, r.with)
	}
	return text
}

// Educate converts an insight into educational content.
func Educate(in Insight) EducationalContent {
	message := mainMessage(in)
	explanation := in.Details + " " + wellnessContext(in.Category)
	if NeedsConsultation(in) {
		explanation += consultationNote
	}

	pairs := causeEffectPairs(in)
	for i := range pairs {
		pairs[i].Cause = EnsureNonMedical(pairs[i].Cause)
		pairs[i].Effect = EnsureNonMedical(pairs[i].Effect)
		pairs[i].Explanation = EnsureNonMedical(pairs[i].Explanation)
	}

	return EducationalContent{
		MainMessage: EnsureNonMedical(message),
		Explanation: EnsureNonMedical(explanation),
		CauseEffect: pairs,
		LearnMore:   []Resource{},
		Disclaimer:  Disclaimer,
	}
}

// NeedsConsultation reports whether an insight warrants suggesting a
// healthcare professional.
func NeedsConsultation(in Insight) bool {
	text := strings.ToLower(in.Summary + " " + in.Details)
	for _, indicator := range concernIndicators {
		if strings.Contains(text, indicator) {
			return true
		}
	}
	if in.Priority != models.PriorityHigh {
		return false
	}
	category := strings.ToLower(in.Category)
	for _, c := range []string{"sleep", "hydration", "nutrition"} {
		if strings.Contains(category, c) {
			return true
		}
	}
	return false
}

func mainMessage(in Insight) string {
	category := strings.ToLower(in.Category)
	if in.Actionable {
		return "Your " + category + " patterns suggest opportunities for improvement. " + in.Summary
	}
	return "Understanding your " + category + ": " + in.Summary
}

func wellnessContext(category string) string {
	if c, ok := wellnessContexts[category]; ok {
		return c
	}
	return defaultWellnessContext
}

func causeEffectPairs(in Insight) []CauseEffect {
	category := strings.ToLower(in.Category)
	details := strings.ToLower(in.Details)
	pairs := make([]CauseEffect, 0, 3)

	if strings.Contains(category, "nutrition") || strings.Contains(category, "food") {
		if strings.Contains(details, "sodium") || strings.Contains(details, "salt") {
			pairs = append(pairs, CauseEffect{
				Cause:       "High sodium intake from processed foods",
				Effect:      "Increased water retention and bloating",
				Explanation: "Sodium causes your body to hold onto extra water to maintain proper fluid balance",
				Confidence:  WellEstablished,
			})
		}
	}
	if strings.Contains(category, "sleep") && strings.Contains(details, "caffeine") {
		pairs = append(pairs, CauseEffect{
			Cause:       "Caffeine consumption in the evening",
			Effect:      "Reduced sleep quality and difficulty falling asleep",
			Explanation: "Caffeine blocks adenosine receptors in the brain, which normally promote sleepiness",
			Confidence:  WellEstablished,
		})
	}
	if (strings.Contains(category, "hydration") || strings.Contains(category, "water")) && strings.Contains(details, "retention") {
		pairs = append(pairs, CauseEffect{
			Cause:       "Lifestyle factors affecting fluid balance",
			Effect:      "Changes in water retention levels",
			Explanation: "Your body adjusts water retention based on sodium intake, hydration status, and hormonal signals",
			Confidence:  Supported,
		})
	}

	if len(pairs) == 0 {
		pairs = append(pairs, CauseEffect{
			Cause:       "Your daily lifestyle habits",
			Effect:      "Observable patterns in how your body responds",
			Explanation: "Consistent habits create predictable physiological responses that you can learn to recognize and adjust",
			Confidence:  Supported,
		})
	}
	return pairs
}
