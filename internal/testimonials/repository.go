package testimonials

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for testimonial storage
type Repository interface {
	Create(ctx context.Context, req *UpsertTestimonialRequest) (*Testimonial, error)
	Update(ctx context.Context, id string, req *UpsertTestimonialRequest) (*Testimonial, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, approvedOnly bool) ([]*Testimonial, error)
}

// InMemoryRepository keeps testimonials in memory.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Testimonial
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*Testimonial)}
}

// Create stores a new testimonial.
func (r *InMemoryRepository) Create(ctx context.Context, req *UpsertTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Testimonial{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Quote:      req.Quote,
		Approved:   req.Approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.items[item.ID] = item
	r.mu.Unlock()

	return item, nil
}

// Update replaces an existing testimonial.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpsertTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrTestimonialNotFound
	}
	item.ClientName = req.ClientName
	item.Quote = req.Quote
	item.Approved = req.Approved
	item.UpdatedAt = time.Now().UTC()
	return item, nil
}

// Delete removes a testimonial.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrTestimonialNotFound
	}
	delete(r.items, id)
	return nil
}

// List returns testimonials, newest first.
func (r *InMemoryRepository) List(ctx context.Context, approvedOnly bool) ([]*Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Testimonial, 0, len(r.items))
	for _, item := range r.items {
		if approvedOnly && !item.Approved {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
