package testimonials

import (
	"errors"
	"strings"
	"time"
)

// Testimonial is a client review shown on the public site once an admin
// approves it.
type Testimonial struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Quote      string    `json:"quote"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpsertTestimonialRequest is the admin request body.
type UpsertTestimonialRequest struct {
	ClientName string `json:"client_name"`
	Quote      string `json:"quote"`
	Approved   bool   `json:"approved"`
}

var (
	// ErrInvalidTestimonial is returned when name or quote is empty
	ErrInvalidTestimonial = errors.New("client name and quote are required")

	// ErrTestimonialNotFound is returned when a testimonial does not exist
	ErrTestimonialNotFound = errors.New("testimonial not found")
)

// Validate validates the request
func (r *UpsertTestimonialRequest) Validate() error {
	if strings.TrimSpace(r.ClientName) == "" || strings.TrimSpace(r.Quote) == "" {
		return ErrInvalidTestimonial
	}
	return nil
}
