// Package itinerary provides the scheduling core: it composes day-by-day
// itinerary entries from points of interest, splicing in travel segments
// based on routing estimates.
package itinerary

import (
	"time"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/travelmode"
	"github.com/tripweaver/tripweaver/internal/trip"
)

// Category classifies an itinerary entry for display and timeline filtering.
type Category string

const (
	CategorySightseeing Category = "sightseeing"
	CategoryMeal        Category = "meal"
	CategoryRest        Category = "rest"
	CategoryActivity    Category = "activity"
	CategoryTransport   Category = "transport"
)

// Item is a persisted itinerary entry: one row per day per occurrence.
// Items are never mutated by this package after creation.
type Item struct {
	ID            string
	TripID        string
	DestinationID *string
	PointID       *string
	Title         string
	Description   *string

	// Date is an ISO calendar date (YYYY-MM-DD); times are HH:MM strings,
	// which makes lexicographic comparison correct for same-day ordering.
	Date      string
	StartTime *string
	EndTime   *string

	Location    *string
	Coordinates *geo.Coordinate
	Category    Category

	TravelMode         *travelmode.Mode
	TravelTimeMinutes  *int
	TravelFromLocation *string

	Notes *string

	// OrderIndex strictly orders same-day entries for display; a travel
	// entry always sorts below the activity it precedes.
	OrderIndex int

	CreatedAt time.Time
}

// categoryFor maps a point of interest to an itinerary entry category.
func categoryFor(p *trip.PointOfInterest) Category {
	if p.Kind == trip.KindAccommodation {
		return CategoryRest
	}

	switch p.Category {
	case trip.CategoryAttraction, trip.CategoryNature, trip.CategoryCultural:
		return CategorySightseeing
	case trip.CategoryFood:
		return CategoryMeal
	default:
		return CategoryActivity
	}
}
