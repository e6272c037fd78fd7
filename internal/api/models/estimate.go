package models

// TravelEstimate is one mode's travel estimate between two points.
type TravelEstimate struct {
	Mode string `json:"mode"`

	// Label and Emoji are display hints for the mode.
	Label string `json:"label"`
	Emoji string `json:"emoji"`

	DurationMinutes int     `json:"durationMinutes"`
	DistanceKm      float64 `json:"distanceKm"`
}

// TravelEstimatesResponse is the response of GET /v1/travel-estimates.
type TravelEstimatesResponse struct {
	From      Point            `json:"from"`
	To        Point            `json:"to"`
	Estimates []TravelEstimate `json:"estimates"`
}
