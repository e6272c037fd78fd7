package itinerary

import "github.com/tripweaver/tripweaver/internal/trip"

// DefaultVisitMinutes applies when a category has no specific suggestion.
const DefaultVisitMinutes = 120

// visitDurations maps a point's category to a suggested visit duration.
var visitDurations = map[trip.Category]int{
	trip.CategoryAttraction: 120,
	trip.CategoryFood:       90,
	trip.CategoryActivity:   180,
	trip.CategoryNightlife:  180,
	trip.CategoryShopping:   120,
	trip.CategoryNature:     240,
	trip.CategoryCultural:   120,
}

// SuggestedDurationMinutes returns the default visit duration for a
// category when no explicit duration is supplied.
func SuggestedDurationMinutes(category trip.Category) int {
	if d, ok := visitDurations[category]; ok {
		return d
	}
	return DefaultVisitMinutes
}
