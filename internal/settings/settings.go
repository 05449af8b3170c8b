package settings

import (
	"errors"
	"time"
)

// DefaultBufferMinutes is applied when the studio has not configured a
// buffer yet.
const DefaultBufferMinutes = 15

// MaxBufferMinutes bounds the configurable inter-appointment padding.
const MaxBufferMinutes = 120

// Settings is the studio-wide singleton configuration record. Exactly one
// row exists; it is created lazily on first read.
type Settings struct {
	BufferMinutes int       `json:"buffer_minutes"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the admin request body.
type UpdateSettingsRequest struct {
	BufferMinutes int `json:"buffer_minutes"`
}

// ErrInvalidBuffer is returned when the buffer is outside 0..120 minutes.
var ErrInvalidBuffer = errors.New("buffer must be between 0 and 120 minutes")

// Validate validates the request
func (r *UpdateSettingsRequest) Validate() error {
	if r.BufferMinutes < 0 || r.BufferMinutes > MaxBufferMinutes {
		return ErrInvalidBuffer
	}
	return nil
}
