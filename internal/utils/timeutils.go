package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimestamp accepts RFC3339 timestamps or plain dates (2006-01-02, UTC).
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: expected RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

// DurationDays converts a pair of timestamps into a day count.
func DurationDays(start, end time.Time) float64 {
	if end.Before(start) {
		start, end = end, start
	}
	return end.Sub(start).Hours() / 24
}
