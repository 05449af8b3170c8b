package timezone

import (
	"fmt"
	"time"
)

// Date is a civil calendar date with no time-of-day or timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("timezone: parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf returns the civil date of an instant in the given location.
func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// String formats the date as "YYYY-MM-DD".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Studio resolves calendar dates against the studio's fixed local timezone,
// independent of the server host timezone. All instants it returns are UTC.
type Studio struct {
	loc *time.Location
}

// NewStudio loads the given IANA timezone. An empty or invalid name falls
// back to UTC rather than failing startup.
func NewStudio(name string) *Studio {
	if name == "" {
		return &Studio{loc: time.UTC}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return &Studio{loc: time.UTC}
	}
	return &Studio{loc: loc}
}

// Location exposes the underlying *time.Location for formatting.
func (s *Studio) Location() *time.Location {
	return s.loc
}

// LocalDayStartUTC returns midnight of the given calendar date in studio
// local time, expressed in UTC.
func (s *Studio) LocalDayStartUTC(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, s.loc).UTC()
}

// LocalDayEndUTC returns the first instant of the following local day, in
// UTC. Day intervals are half-open: [start, end).
func (s *Studio) LocalDayEndUTC(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, s.loc).AddDate(0, 0, 1).UTC()
}

// WeekdayOf returns the civil weekday (0=Sunday..6=Saturday) of the given
// calendar date in studio local time.
func (s *Studio) WeekdayOf(d Date) int {
	return int(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, s.loc).Weekday())
}

// At returns the UTC instant for hour:minute of the given local calendar day.
func (s *Studio) At(d Date, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, s.loc).UTC()
}

// LocalClock formats a UTC instant as the studio-local "HH:MM" wall clock.
func (s *Studio) LocalClock(t time.Time) string {
	return t.In(s.loc).Format("15:04")
}

// LocalDate returns the studio-local calendar date of an instant.
func (s *Studio) LocalDate(t time.Time) Date {
	return DateOf(t, s.loc)
}
