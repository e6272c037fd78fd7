// Package trip provides read access to trips, destinations and points of
// interest for itinerary composition.
package trip

import (
	"errors"

	"github.com/tripweaver/tripweaver/internal/geo"
)

// Repository errors.
var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrPointNotFound = errors.New("point of interest not found")
)

// PointKind identifies the source table of a point of interest.
type PointKind string

const (
	KindHighlight     PointKind = "highlight"
	KindEvent         PointKind = "event"
	KindAccommodation PointKind = "accommodation"
)

// ValidKind reports whether k is a known point kind.
func ValidKind(k PointKind) bool {
	switch k {
	case KindHighlight, KindEvent, KindAccommodation:
		return true
	}
	return false
}

// Category classifies a point of interest for duration suggestions.
type Category string

const (
	CategoryAttraction Category = "attraction"
	CategoryFood       Category = "food"
	CategoryActivity   Category = "activity"
	CategoryNightlife  Category = "nightlife"
	CategoryShopping   Category = "shopping"
	CategoryNature     Category = "nature"
	CategoryCultural   Category = "cultural"
	CategoryOther      Category = "other"
)

// HomeBase is the traveler's origin point for a trip.
type HomeBase struct {
	Name        string
	Coordinates geo.Coordinate
	Currency    string
}

// DefaultHomeBase is used when a trip has no home base configured.
func DefaultHomeBase() HomeBase {
	return HomeBase{
		Name:        "Vicenza",
		Coordinates: geo.Coordinate{Lat: 45.5485, Lng: 11.5479},
		Currency:    "EUR",
	}
}

// Trip holds the fields the scheduling core needs from a trip row.
type Trip struct {
	ID       string
	Name     string
	HomeBase *HomeBase
}

// PointOfInterest abstracts over highlights, events and accommodation nights.
type PointOfInterest struct {
	ID            string
	Kind          PointKind
	Title         string
	Category      Category
	Address       *string
	Coordinates   *geo.Coordinate
	DestinationID *string

	// DestinationCoordinates are the parent destination's coordinates,
	// used as a fallback when the point has none of its own.
	DestinationCoordinates *geo.Coordinate

	// DurationMinutes is an explicit visit-duration hint, if recorded.
	DurationMinutes *int
}

// ResolveCoordinates returns the point's coordinates, falling back to the
// parent destination. Nil means travel computation must be skipped.
func (p *PointOfInterest) ResolveCoordinates() *geo.Coordinate {
	if p.Coordinates != nil {
		return p.Coordinates
	}
	return p.DestinationCoordinates
}
