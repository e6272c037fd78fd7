package trip

import "context"

// Repository defines read access to trip planning data.
type Repository interface {
	// GetTrip retrieves a trip with its home base, if configured.
	// Returns ErrTripNotFound if the trip doesn't exist.
	GetTrip(ctx context.Context, id string) (*Trip, error)

	// GetPoint retrieves a point of interest by kind and ID, including the
	// parent destination's fallback coordinates.
	// Returns ErrPointNotFound if it doesn't exist.
	GetPoint(ctx context.Context, kind PointKind, id string) (*PointOfInterest, error)
}
