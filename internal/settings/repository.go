package settings

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for the settings singleton.
//
// Get materializes the default record when none exists yet, so the admin
// surface always sees a row. BufferMinutes is the read used by slot and
// admission math: it never writes and reports 0 when no record exists.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, req *UpdateSettingsRequest) (*Settings, error)
	BufferMinutes(ctx context.Context) (int, error)
}

// InMemoryRepository keeps the singleton in memory.
type InMemoryRepository struct {
	mu      sync.RWMutex
	current *Settings
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Get returns the settings, creating the default record if absent.
func (r *InMemoryRepository) Get(ctx context.Context) (*Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		r.current = &Settings{BufferMinutes: DefaultBufferMinutes, UpdatedAt: time.Now().UTC()}
	}
	return r.current, nil
}

// Update replaces the buffer value.
func (r *InMemoryRepository) Update(ctx context.Context, req *UpdateSettingsRequest) (*Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &Settings{BufferMinutes: req.BufferMinutes, UpdatedAt: time.Now().UTC()}
	return r.current, nil
}

// BufferMinutes reads the configured buffer, 0 when no record exists.
func (r *InMemoryRepository) BufferMinutes(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return 0, nil
	}
	return r.current.BufferMinutes, nil
}
