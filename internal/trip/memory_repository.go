package trip

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	trips  map[string]*Trip
	points map[PointKind]map[string]*PointOfInterest
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		trips:  make(map[string]*Trip),
		points: make(map[PointKind]map[string]*PointOfInterest),
	}
}

// PutTrip stores a trip for tests.
func (r *InMemoryRepository) PutTrip(t *Trip) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cpy := *t
	r.trips[t.ID] = &cpy
}

// PutPoint stores a point of interest for tests.
func (r *InMemoryRepository) PutPoint(p *PointOfInterest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.points[p.Kind] == nil {
		r.points[p.Kind] = make(map[string]*PointOfInterest)
	}
	cpy := *p
	r.points[p.Kind][p.ID] = &cpy
}

// GetTrip retrieves a trip by ID.
func (r *InMemoryRepository) GetTrip(_ context.Context, id string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return nil, ErrTripNotFound
	}

	cpy := *t
	return &cpy, nil
}

// GetPoint retrieves a point of interest by kind and ID.
func (r *InMemoryRepository) GetPoint(_ context.Context, kind PointKind, id string) (*PointOfInterest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.points[kind][id]
	if !ok {
		return nil, ErrPointNotFound
	}

	cpy := *p
	return &cpy, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
