package models

import (
	"sort"
	"time"
)

// TimePoint is one observation of a metric.
type TimePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is a time-ordered sequence of observations for one metric.
type Series []TimePoint

// Values returns the observation values in series order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Span returns the earliest and latest timestamps in the series.
func (s Series) Span() TimeRange {
	if len(s) == 0 {
		return TimeRange{}
	}
	span := TimeRange{Start: s[0].Timestamp, End: s[0].Timestamp}
	for _, p := range s[1:] {
		if p.Timestamp.Before(span.Start) {
			span.Start = p.Timestamp
		}
		if p.Timestamp.After(span.End) {
			span.End = p.Timestamp
		}
	}
	return span
}

// Sorted returns a copy ordered by timestamp; equal timestamps keep input order.
func (s Series) Sorted() Series {
	out := append(Series(nil), s...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// TimeRange bounds an analysis window.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether neither bound is set.
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}
