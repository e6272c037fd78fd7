package models

// ComposeRequest is the body of POST /v1/trips/{tripId}/itinerary:compose.
type ComposeRequest struct {
	// PointKind selects the source table: highlight, event or accommodation.
	PointKind string `json:"pointKind" validate:"required"`
	PointID   string `json:"pointId" validate:"required"`

	// Date is the target calendar date (YYYY-MM-DD).
	Date string `json:"date" validate:"required"`

	// StartTime is an HH:MM local clock time. Defaults to 09:00.
	StartTime string `json:"startTime,omitempty"`

	// DurationMinutes overrides the suggested visit duration.
	DurationMinutes *int `json:"durationMinutes,omitempty"`

	// TravelMode defaults to car.
	TravelMode string `json:"travelMode,omitempty"`

	// AddTravelSegment defaults to true.
	AddTravelSegment *bool `json:"addTravelSegment,omitempty"`
}

// ComposeRangeRequest is the body of POST /v1/trips/{tripId}/itinerary:compose-range.
type ComposeRangeRequest struct {
	PointKind string   `json:"pointKind" validate:"required"`
	PointID   string   `json:"pointId" validate:"required"`
	Dates     []string `json:"dates" validate:"required,min=1"`

	StartTime       string `json:"startTime,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`

	TravelMode string `json:"travelMode,omitempty"`

	// DayLabel replaces the word "Day" in per-day title suffixes.
	DayLabel string `json:"dayLabel,omitempty"`

	AddOutbound bool `json:"addOutbound,omitempty"`
	AddReturn   bool `json:"addReturn,omitempty"`
}

// ItineraryItem is one scheduled row of a trip day.
type ItineraryItem struct {
	ID                 string    `json:"id"`
	TripID             string    `json:"tripId"`
	DestinationID      *string   `json:"destinationId,omitempty"`
	PointID            *string   `json:"pointId,omitempty"`
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	Date               string    `json:"date"`
	StartTime          *string   `json:"startTime,omitempty"`
	EndTime            *string   `json:"endTime,omitempty"`
	Location           *string   `json:"location,omitempty"`
	Coordinates        *Point    `json:"coordinates,omitempty"`
	Category           string    `json:"category"`
	TravelMode         *string   `json:"travelMode,omitempty"`
	TravelTimeMinutes  *int      `json:"travelTimeMinutes,omitempty"`
	TravelFromLocation *string   `json:"travelFromLocation,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	OrderIndex         int       `json:"orderIndex"`
	CreatedAt          Timestamp `json:"createdAt"`
}

// ComposeResponse is returned by both compose operations.
type ComposeResponse struct {
	Items []ItineraryItem `json:"items"`
}

// ItineraryDay is the response of GET /v1/trips/{tripId}/itinerary.
type ItineraryDay struct {
	TripID string          `json:"tripId"`
	Date   string          `json:"date"`
	Items  []ItineraryItem `json:"items"`
}
