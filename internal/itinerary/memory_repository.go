package itinerary

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items []*Item
}

// NewInMemoryRepository creates a new in-memory itinerary repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// ListByTripAndDate retrieves all items for one trip and calendar date.
func (r *InMemoryRepository) ListByTripAndDate(_ context.Context, tripID, date string) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Item
	for _, item := range r.items {
		if item.TripID == tripID && item.Date == date {
			cpy := *item
			items = append(items, &cpy)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderIndex < items[j].OrderIndex
	})

	return items, nil
}

// CreateBatch inserts items.
func (r *InMemoryRepository) CreateBatch(_ context.Context, items []*Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		cpy := *item
		r.items = append(r.items, &cpy)
	}
	return nil
}

// Len returns the total number of stored items.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
