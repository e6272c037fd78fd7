// Package travelmode defines the supported transport modes and the static
// constants used to derive non-driving estimates from a driving route.
package travelmode

// Mode identifies a transport mode for a travel segment.
type Mode string

const (
	// Car is routed directly against the driving profile.
	Car Mode = "car"
	// Train is derived from the driving estimate.
	Train Mode = "train"
	// Bus is derived from the driving estimate.
	Bus Mode = "bus"
	// Walk is routed directly against the foot profile.
	Walk Mode = "walk"
	// Flight is derived from distance alone; display-only, never used
	// when composing itinerary travel segments.
	Flight Mode = "flight"
)

// Info holds display metadata and derivation constants for a mode.
type Info struct {
	Label string
	Emoji string

	// Derived specifies whether the estimate is computed by scaling the
	// driving estimate rather than calling the routing provider.
	Derived bool

	// Factor scales the driving duration for derived modes.
	Factor float64

	// OverheadMinutes is a flat access overhead added after scaling
	// (station access for trains, stops for buses, airport procedures
	// for flights).
	OverheadMinutes int

	// MinDrivingKm gates derived modes: the estimate is only offered when
	// the driving distance exceeds this threshold.
	MinDrivingKm float64

	// MaxCrowKm gates provider-routed modes on straight-line distance;
	// zero means no gate.
	MaxCrowKm float64
}

// FlightCruiseKmh is the assumed cruise speed used for flight estimates.
const FlightCruiseKmh = 800.0

var catalog = map[Mode]Info{
	Car:    {Label: "Car", Emoji: "🚗"},
	Train:  {Label: "Train", Emoji: "🚆", Derived: true, Factor: 0.7, OverheadMinutes: 15, MinDrivingKm: 20},
	Bus:    {Label: "Bus", Emoji: "🚌", Derived: true, Factor: 1.3, OverheadMinutes: 10, MinDrivingKm: 5},
	Walk:   {Label: "Walk", Emoji: "🚶", MaxCrowKm: 5},
	Flight: {Label: "Flight", Emoji: "✈️", Derived: true, OverheadMinutes: 90, MinDrivingKm: 300},
}

// Lookup returns the catalog entry for a mode.
func Lookup(m Mode) (Info, bool) {
	info, ok := catalog[m]
	return info, ok
}

// Valid reports whether m is a known mode.
func Valid(m Mode) bool {
	_, ok := catalog[m]
	return ok
}

// All returns the supported modes in display order.
func All() []Mode {
	return []Mode{Car, Train, Bus, Walk, Flight}
}
