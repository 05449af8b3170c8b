package bookings

import "errors"

var (
	// ErrMissingName is returned when the client name is absent
	ErrMissingName = errors.New("client name is required")

	// ErrMissingPhone is returned when the client phone is absent
	ErrMissingPhone = errors.New("client phone is required")

	// ErrMissingService is returned when no service is selected
	ErrMissingService = errors.New("service is required")

	// ErrMissingStart is returned when no start time is given
	ErrMissingStart = errors.New("start time is required")

	// ErrSlotTaken is returned when the requested interval overlaps an
	// existing booking; the client should refresh the slot list and retry
	ErrSlotTaken = errors.New("the requested time slot is already taken")

	// ErrBookingNotFound is returned when a booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidStatus is returned for an unknown status value
	ErrInvalidStatus = errors.New("status must be PENDING, COMPLETED or CANCELED")
)
