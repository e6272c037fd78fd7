package itinerary

import "context"

// Repository defines persistence for itinerary items.
type Repository interface {
	// ListByTripAndDate retrieves all items for one trip and calendar date,
	// ordered by order index.
	ListByTripAndDate(ctx context.Context, tripID, date string) ([]*Item, error)

	// CreateBatch inserts items atomically. The composer relies on this to
	// write a travel segment and its activity as one unit, so a failed
	// activity insert never leaves an orphaned transport row behind.
	CreateBatch(ctx context.Context, items []*Item) error
}
