package utils

import (
	"testing"
	"time"
)

func TestLatencyTrackerPercentile(t *testing.T) {
	tracker := NewLatencyTracker(10)
	durations := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond, 40 * time.Millisecond, 50 * time.Millisecond}
	for _, d := range durations {
		tracker.Observe(d)
	}

	if tracker.Count() != len(durations) {
		t.Fatalf("expected count %d, got %d", len(durations), tracker.Count())
	}

	p95 := tracker.Percentile(95)
	if p95 < 40*time.Millisecond {
		t.Fatalf("expected percentile >= 40ms, got %v", p95)
	}
}

func TestLatencyTrackerBoundedSize(t *testing.T) {
	tracker := NewLatencyTracker(3)
	for i := 0; i < 10; i++ {
		tracker.Observe(time.Duration(i) * time.Millisecond)
	}
	if tracker.Count() != 3 {
		t.Fatalf("expected tracker size 3, got %d", tracker.Count())
	}
	if min := tracker.Percentile(0); min != 7*time.Millisecond {
		t.Fatalf("oldest samples should be evicted, min is %v", min)
	}
}

func TestLatencyTrackerPercentiles(t *testing.T) {
	tracker := NewLatencyTracker(0)
	if got := tracker.Percentiles(50, 99); got[0] != 0 || got[1] != 0 {
		t.Fatalf("empty tracker should report zeros, got %v", got)
	}
	for i := 1; i <= 100; i++ {
		tracker.Observe(time.Duration(i) * time.Millisecond)
	}
	got := tracker.Percentiles(0, 50, 100)
	if got[0] != time.Millisecond || got[1] != 50*time.Millisecond || got[2] != 100*time.Millisecond {
		t.Fatalf("unexpected percentiles %v", got)
	}
}
