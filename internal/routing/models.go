// Package routing provides travel-time estimation across transport modes,
// backed by an OSRM-compatible routing provider.
package routing

import (
	"context"
	"errors"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/travelmode"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Profile is a routing profile understood by the provider.
type Profile string

const (
	// ProfileDriving is the car routing profile.
	ProfileDriving Profile = "driving"
	// ProfileFoot is the pedestrian routing profile.
	ProfileFoot Profile = "foot"
)

// Provider defines the interface for routing providers.
type Provider interface {
	// Route computes duration and distance between two points for a profile.
	Route(ctx context.Context, req RouteRequest) (*RouteResult, error)
	// Name returns the provider identifier for logging and health tracking.
	Name() string
}

// RouteRequest is the request for computing a route.
type RouteRequest struct {
	From    geo.Coordinate
	To      geo.Coordinate
	Profile Profile
}

// RouteResult holds the computed route metrics.
type RouteResult struct {
	DurationMinutes int     `json:"durationMinutes"`
	DistanceKm      float64 `json:"distanceKm"`
}

// TravelEstimate is an ephemeral per-mode travel estimate. Only the chosen
// estimate's duration is ever copied into an itinerary item.
type TravelEstimate struct {
	Mode            travelmode.Mode `json:"mode"`
	DurationMinutes int             `json:"durationMinutes"`
	DistanceKm      float64         `json:"distanceKm"`
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
