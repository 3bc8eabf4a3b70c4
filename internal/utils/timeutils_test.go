package utils

import (
	"log/slog"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2024-03-01T10:30:00Z")
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected result %v %v", got, err)
	}
	got, err = ParseTimestamp(" 2024-03-05 ")
	if err != nil || !got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected result %v %v", got, err)
	}
	for _, bad := range []string{"", "yesterday", "03/05/2024"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDurationDays(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(36 * time.Hour)
	if got := DurationDays(end, start); got != 1.5 {
		t.Fatalf("expected 1.5 days, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"DEBUG": slog.LevelDebug, "warning": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
