package bookings

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a booking. Only PENDING and COMPLETED
// bookings occupy calendar space; CANCELED ones are kept for history but
// are inert for conflict checks.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Occupying reports whether a booking in this status blocks the calendar.
func (s Status) Occupying() bool {
	return s == StatusPending || s == StatusCompleted
}

// Booking is one admitted appointment. StartsAt/EndsAt are UTC instants;
// EndsAt was snapshotted at admission as start + duration + buffer, so the
// stored interval is the booking's full calendar footprint and later edits
// to the service or buffer never move it.
type Booking struct {
	ID          string    `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email,omitempty"`
	ServiceID   string    `json:"service_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateBookingRequest is the public booking form submission.
type CreateBookingRequest struct {
	ClientName  string    `json:"client_name"`
	ClientPhone string    `json:"client_phone"`
	ClientEmail string    `json:"client_email"`
	ServiceID   string    `json:"service_id"`
	StartsAt    time.Time `json:"starts_at"`
}

// Validate checks the required fields.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.ClientPhone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(r.ServiceID) == "" {
		return ErrMissingService
	}
	if r.StartsAt.IsZero() {
		return ErrMissingStart
	}
	return nil
}

// UpdateStatusRequest is the admin status transition body.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
