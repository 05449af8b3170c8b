package catalog

import "errors"

var (
	// ErrInvalidName is returned when the service name is empty
	ErrInvalidName = errors.New("service name is required")

	// ErrInvalidDuration is returned when the duration is not positive
	ErrInvalidDuration = errors.New("service duration must be a positive number of minutes")

	// ErrInvalidPrice is returned when the price is negative
	ErrInvalidPrice = errors.New("service price cannot be negative")

	// ErrServiceNotFound is returned when a service does not exist or is inactive
	ErrServiceNotFound = errors.New("service not found")
)
