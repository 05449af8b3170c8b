package schedule

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlapsBoundaryExactness(t *testing.T) {
	a := Interval{Start: at(10, 0), End: at(11, 0)}

	// Sharing only a boundary point is not an overlap.
	if a.Overlaps(at(11, 0), at(12, 0)) {
		t.Error("[10,11) and [11,12) must not overlap")
	}
	if a.Overlaps(at(9, 0), at(10, 0)) {
		t.Error("[9,10) and [10,11) must not overlap")
	}

	// One minute inside is an overlap.
	if !a.Overlaps(at(10, 59), at(11, 30)) {
		t.Error("[10,11) and [10:59,11:30) must overlap")
	}
	// Containment is an overlap.
	if !a.Overlaps(at(9, 0), at(12, 0)) {
		t.Error("[10,11) inside [9,12) must overlap")
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct{ a, b Interval }{
		{Interval{at(10, 0), at(11, 0)}, Interval{at(10, 30), at(11, 30)}},
		{Interval{at(10, 0), at(11, 0)}, Interval{at(11, 0), at(12, 0)}},
		{Interval{at(8, 0), at(9, 0)}, Interval{at(14, 0), at(15, 0)}},
		{Interval{at(9, 0), at(17, 0)}, Interval{at(10, 0), at(10, 15)}},
	}
	for _, tc := range cases {
		ab := tc.a.Overlaps(tc.b.Start, tc.b.End)
		ba := tc.b.Overlaps(tc.a.Start, tc.a.End)
		if ab != ba {
			t.Errorf("overlap not symmetric for %v vs %v: %v != %v", tc.a, tc.b, ab, ba)
		}
	}
}

func TestOverlapsAny(t *testing.T) {
	busy := []Interval{
		{at(9, 0), at(10, 15)},
		{at(13, 0), at(14, 15)},
	}

	if OverlapsAny(at(10, 15), at(11, 30), busy) {
		t.Error("slot starting exactly at a busy end must be free")
	}
	if !OverlapsAny(at(14, 0), at(15, 15), busy) {
		t.Error("slot crossing a busy interval must conflict")
	}
	if OverlapsAny(at(11, 0), at(12, 0), nil) {
		t.Error("no busy intervals means no conflicts")
	}
}
