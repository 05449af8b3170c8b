package schedule

import "time"

// SlotStep is the fixed slot grid granularity. It is independent of service
// duration so that services of different lengths share one grid.
const SlotStep = 15 * time.Minute

// GridSlots walks the operating window [openAt, closeAt] on the fixed grid
// and returns every start where a booking of length total would fit without
// touching a busy interval. Candidates starting before now are skipped; the
// walk stops at the first candidate whose end would pass closeAt, since no
// later candidate can fit either.
func GridSlots(openAt, closeAt time.Time, total time.Duration, busy []Interval, now time.Time) []time.Time {
	if total <= 0 {
		return nil
	}

	var slots []time.Time
	for cursor := openAt; !cursor.Add(total).After(closeAt); cursor = cursor.Add(SlotStep) {
		if cursor.Before(now) {
			continue
		}
		if !OverlapsAny(cursor, cursor.Add(total), busy) {
			slots = append(slots, cursor)
		}
	}
	return slots
}
