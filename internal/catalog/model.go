package catalog

import (
	"strings"
	"time"
)

// Service is a bookable treatment from the studio's catalog. Deactivated
// services stay on record so historical bookings keep a valid reference,
// but they no longer accept new bookings.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	PriceCents      int       `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpsertServiceRequest is the admin request body for creating or updating
// a service.
type UpsertServiceRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	PriceCents      int    `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          *bool  `json:"active"`
}

// Validate validates the request
func (r *UpsertServiceRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if r.PriceCents < 0 {
		return ErrInvalidPrice
	}
	return nil
}
