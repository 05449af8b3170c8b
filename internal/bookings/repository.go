package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/serenity-studio/booking-platform/internal/schedule"
)

// Repository defines the interface for booking storage.
//
// Create must serialize admissions for overlapping intervals: of two
// concurrent inserts for colliding ranges, exactly one succeeds and the
// other fails with ErrSlotTaken. UpdateStatus gives the same guarantee
// when a transition re-occupies the calendar.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)
	OccupiedIntervals(ctx context.Context, from, to time.Time) ([]schedule.Interval, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps bookings in memory. A single mutex serializes
// the check-then-insert of Create, which is all the exclusion the
// one-practitioner calendar needs in process.
type InMemoryRepository struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{bookings: make(map[string]*Booking)}
}

// Create inserts the booking unless its interval collides with an
// occupying booking.
func (r *InMemoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if !existing.Status.Occupying() {
			continue
		}
		iv := schedule.Interval{Start: existing.StartsAt, End: existing.EndsAt}
		if iv.Overlaps(b.StartsAt, b.EndsAt) {
			return ErrSlotTaken
		}
	}

	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

// GetByID retrieves a booking by ID.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

// ListBetween returns all bookings whose interval intersects [from, to),
// ordered by start time.
func (r *InMemoryRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Booking
	for _, b := range r.bookings {
		iv := schedule.Interval{Start: b.StartsAt, End: b.EndsAt}
		if iv.Overlaps(from, to) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// OccupiedIntervals returns the intervals of PENDING/COMPLETED bookings
// intersecting [from, to).
func (r *InMemoryRepository) OccupiedIntervals(ctx context.Context, from, to time.Time) ([]schedule.Interval, error) {
	all, err := r.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	var out []schedule.Interval
	for _, b := range all {
		if b.Status.Occupying() {
			out = append(out, schedule.Interval{Start: b.StartsAt, End: b.EndsAt})
		}
	}
	return out, nil
}

// UpdateStatus transitions a booking. Moving back into an occupying status
// re-checks the calendar.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}

	if status.Occupying() && !b.Status.Occupying() {
		for _, other := range r.bookings {
			if other.ID == id || !other.Status.Occupying() {
				continue
			}
			iv := schedule.Interval{Start: other.StartsAt, End: other.EndsAt}
			if iv.Overlaps(b.StartsAt, b.EndsAt) {
				return nil, ErrSlotTaken
			}
		}
	}

	b.Status = status
	clone := *b
	return &clone, nil
}

// Delete removes a booking entirely; admin housekeeping, not part of the
// lifecycle.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}
