package schedule

import "time"

// TotalDuration is the calendar footprint of one booking: the service's
// own duration plus the studio-wide buffer that follows every appointment.
type TotalDuration struct {
	ServiceMinutes int
	BufferMinutes  int
}

// Total returns the full block a booking occupies on the calendar.
func (d TotalDuration) Total() time.Duration {
	return time.Duration(d.ServiceMinutes+d.BufferMinutes) * time.Minute
}
