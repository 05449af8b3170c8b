package schedule

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) overlaps the interval. Half-open
// semantics: an appointment ending exactly when another begins does not
// overlap.
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// OverlapsAny reports whether the candidate range overlaps any of the busy
// intervals. Linear scan; per-day booking counts are small.
func OverlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
