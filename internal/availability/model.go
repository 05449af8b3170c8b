package availability

import (
	"errors"
	"time"
)

// DayWindow is one weekday's operating hours. Weekdays are numbered
// 0=Sunday..6=Saturday everywhere in the application.
type DayWindow struct {
	Weekday   int       `json:"weekday"`
	OpenHour  int       `json:"open_hour"`
	CloseHour int       `json:"close_hour"`
	Active    bool      `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Closed reports whether no booking may start on this weekday. An inactive
// record or a degenerate hour range counts as closed rather than an error.
func (w *DayWindow) Closed() bool {
	if w == nil || !w.Active {
		return true
	}
	return w.OpenHour >= w.CloseHour
}

// UpsertWindowRequest is the admin request body for a weekday's hours.
type UpsertWindowRequest struct {
	OpenHour  int  `json:"open_hour"`
	CloseHour int  `json:"close_hour"`
	Active    bool `json:"active"`
}

var (
	// ErrInvalidWeekday is returned for weekdays outside 0..6
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidHours is returned when hours are outside 0..23 or open >= close
	ErrInvalidHours = errors.New("hours must be within 0-23 with open before close")
)

// Validate validates the request. Hour ordering is only enforced for
// active windows; a record being switched off may keep stale hours.
func (r *UpsertWindowRequest) Validate() error {
	if r.OpenHour < 0 || r.OpenHour > 23 || r.CloseHour < 0 || r.CloseHour > 23 {
		return ErrInvalidHours
	}
	if r.Active && r.OpenHour >= r.CloseHour {
		return ErrInvalidHours
	}
	return nil
}

// ValidWeekday reports whether d names a real weekday index.
func ValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}
