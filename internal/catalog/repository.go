package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for service storage
type Repository interface {
	Create(ctx context.Context, req *UpsertServiceRequest) (*Service, error)
	Update(ctx context.Context, id string, req *UpsertServiceRequest) (*Service, error)
	Deactivate(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Service, error)
	GetActive(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, activeOnly bool) ([]*Service, error)
}

// InMemoryRepository keeps services in memory, for tests and local runs
// without a database.
type InMemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*Service
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{services: make(map[string]*Service)}
}

// Create creates a new service in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *UpsertServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &Service{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	r.mu.Lock()
	r.services[svc.ID] = svc
	r.mu.Unlock()

	clone := *svc
	return &clone, nil
}

// Update replaces the editable fields of an existing service.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpsertServiceRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	svc.Name = req.Name
	svc.Description = req.Description
	svc.PriceCents = req.PriceCents
	svc.DurationMinutes = req.DurationMinutes
	if req.Active != nil {
		svc.Active = *req.Active
	}
	svc.UpdatedAt = time.Now().UTC()

	clone := *svc
	return &clone, nil
}

// Deactivate soft-deletes a service.
func (r *InMemoryRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return ErrServiceNotFound
	}
	svc.Active = false
	svc.UpdatedAt = time.Now().UTC()
	return nil
}

// GetByID retrieves a service regardless of its active flag.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	clone := *svc
	return &clone, nil
}

// GetActive retrieves a service only if it is still bookable.
func (r *InMemoryRepository) GetActive(ctx context.Context, id string) (*Service, error) {
	svc, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// List returns services ordered by name.
func (r *InMemoryRepository) List(ctx context.Context, activeOnly bool) ([]*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Service, 0, len(r.services))
	for _, svc := range r.services {
		if activeOnly && !svc.Active {
			continue
		}
		clone := *svc
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
