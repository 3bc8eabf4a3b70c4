package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BodyTypeClassification enumerates supported somatotypes.
type BodyTypeClassification string

const (
	BodyTypeEctomorph BodyTypeClassification = "ectomorph"
	BodyTypeMesomorph BodyTypeClassification = "mesomorph"
	BodyTypeEndomorph BodyTypeClassification = "endomorph"
	BodyTypeMixed     BodyTypeClassification = "mixed"
)

// BodyTypeClassifications lists every classification in canonical order.
func BodyTypeClassifications() []BodyTypeClassification {
	return []BodyTypeClassification{BodyTypeEctomorph, BodyTypeMesomorph, BodyTypeEndomorph, BodyTypeMixed}
}

// HabitType enumerates tracked daily habits.
type HabitType string

const (
	HabitExercise   HabitType = "exercise"
	HabitStress     HabitType = "stress"
	HabitScreenTime HabitType = "screen_time"
	HabitCaffeine   HabitType = "caffeine"
	HabitAlcohol    HabitType = "alcohol"
	HabitOther      HabitType = "other"
)

// NutritionalInfo holds per-serving nutrition facts.
type NutritionalInfo struct {
	Calories        float64  `json:"calories"`
	Protein         float64  `json:"protein"`
	Carbohydrates   float64  `json:"carbohydrates"`
	Fat             float64  `json:"fat"`
	Sodium          float64  `json:"sodium"`
	Sugar           float64  `json:"sugar"`
	Fiber           float64  `json:"fiber"`
	Preservatives   []string `json:"preservatives"`
	ProcessingLevel int      `json:"processing_level"`
}

// FoodItem is a single logged food with its nutrition facts.
type FoodItem struct {
	Name            string          `json:"name"`
	ServingSize     float64         `json:"serving_size"`
	Unit            string          `json:"unit"`
	NutritionalInfo NutritionalInfo `json:"nutritional_info"`
}

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// NewClockTime builds a ClockTime.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime accepts "15:04:05" or "15:04".
func ParseClockTime(value string) (ClockTime, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid clock time %q", value)
}

// Seconds returns seconds since midnight.
func (c ClockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// String renders HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON renders HH:MM:SS.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second))
}

// UnmarshalJSON parses HH:MM[:SS].
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// HoursUntil returns the hours from c forward to later, wrapping past midnight.
func (c ClockTime) HoursUntil(later ClockTime) float64 {
	diff := later.Seconds() - c.Seconds()
	if diff < 0 {
		diff += 24 * 3600
	}
	return float64(diff) / 3600
}

// SleepData describes one night of sleep.
type SleepData struct {
	Duration      float64   `json:"duration"`
	Quality       int       `json:"quality"`
	Bedtime       ClockTime `json:"bedtime"`
	WakeTime      ClockTime `json:"wake_time"`
	Interruptions int       `json:"interruptions"`
	Timestamp     time.Time `json:"timestamp"`
}

// Habit is a daily habit or activity.
type Habit struct {
	Type      HabitType  `json:"type"`
	Intensity int        `json:"intensity"`
	Duration  *float64   `json:"duration,omitempty"`
	Timing    *ClockTime `json:"timing,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// BodyType carries the user's declared body type.
type BodyType struct {
	Classification  BodyTypeClassification `json:"classification"`
	Characteristics []string               `json:"characteristics"`
	UserID          string                 `json:"user_id"`
}

// LifestyleInput is the full set of inputs logged for one day.
type LifestyleInput struct {
	FoodItems   []FoodItem `json:"food_items"`
	WaterIntake float64    `json:"water_intake"`
	SleepData   *SleepData `json:"sleep_data,omitempty"`
	DailyHabits []Habit    `json:"daily_habits"`
	Timestamp   time.Time  `json:"timestamp"`
	UserID      string     `json:"user_id"`
	Notes       string     `json:"notes,omitempty"`
}

// TotalSodium sums sodium (mg) across food items.
func (l LifestyleInput) TotalSodium() float64 {
	return l.sumFood(func(n NutritionalInfo) float64 { return n.Sodium })
}

// TotalCalories sums calories across food items.
func (l LifestyleInput) TotalCalories() float64 {
	return l.sumFood(func(n NutritionalInfo) float64 { return n.Calories })
}

// TotalProtein sums protein (g) across food items.
func (l LifestyleInput) TotalProtein() float64 {
	return l.sumFood(func(n NutritionalInfo) float64 { return n.Protein })
}

// TotalCarbohydrates sums carbohydrates (g) across food items.
func (l LifestyleInput) TotalCarbohydrates() float64 {
	return l.sumFood(func(n NutritionalInfo) float64 { return n.Carbohydrates })
}

// TotalSugar sums sugar (g) across food items.
func (l LifestyleInput) TotalSugar() float64 {
	return l.sumFood(func(n NutritionalInfo) float64 { return n.Sugar })
}

func (l LifestyleInput) sumFood(pick func(NutritionalInfo) float64) float64 {
	total := 0.0
	for _, item := range l.FoodItems {
		total += pick(item.NutritionalInfo)
	}
	return total
}

// HabitsOfType returns the habits matching t in logged order.
func (l LifestyleInput) HabitsOfType(t HabitType) []Habit {
	matched := make([]Habit, 0)
	for _, habit := range l.DailyHabits {
		if habit.Type == t {
			matched = append(matched, habit)
		}
	}
	return matched
}

// MaxIntensity reports the highest intensity logged for t.
func (l LifestyleInput) MaxIntensity(t HabitType) (int, bool) {
	max, found := 0, false
	for _, habit := range l.DailyHabits {
		if habit.Type != t {
			continue
		}
		if !found || habit.Intensity > max {
			max = habit.Intensity
		}
		found = true
	}
	return max, found
}
