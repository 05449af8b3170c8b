package availability

import (
	"context"
	"sync"
	"time"
)

// Repository defines the interface for weekday window storage.
//
// GetByWeekday returns (nil, nil) for a weekday with no record; callers
// treat that as closed via DayWindow.Closed.
type Repository interface {
	GetByWeekday(ctx context.Context, weekday int) (*DayWindow, error)
	List(ctx context.Context) ([]*DayWindow, error)
	Upsert(ctx context.Context, weekday int, req *UpsertWindowRequest) (*DayWindow, error)
}

// InMemoryRepository keeps the weekday table in memory.
type InMemoryRepository struct {
	mu   sync.RWMutex
	days map[int]*DayWindow
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{days: make(map[int]*DayWindow)}
}

// GetByWeekday returns the window for a weekday, nil when absent.
func (r *InMemoryRepository) GetByWeekday(ctx context.Context, weekday int) (*DayWindow, error) {
	if !ValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.days[weekday], nil
}

// List returns all configured weekdays ordered Sunday first.
func (r *InMemoryRepository) List(ctx context.Context) ([]*DayWindow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*DayWindow
	for d := 0; d <= 6; d++ {
		if w, ok := r.days[d]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

// Upsert replaces a weekday's window. At most one record per weekday.
func (r *InMemoryRepository) Upsert(ctx context.Context, weekday int, req *UpsertWindowRequest) (*DayWindow, error) {
	if !ValidWeekday(weekday) {
		return nil, ErrInvalidWeekday
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	w := &DayWindow{
		Weekday:   weekday,
		OpenHour:  req.OpenHour,
		CloseHour: req.CloseHour,
		Active:    req.Active,
		UpdatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.days[weekday] = w
	r.mu.Unlock()

	return w, nil
}
