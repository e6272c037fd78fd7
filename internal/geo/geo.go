// Package geo provides geographic primitives for trip scheduling.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ValidateLat checks that a latitude is within [-90, 90].
func ValidateLat(lat float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", lat)
	}
	return nil
}

// ValidateLng checks that a longitude is within [-180, 180].
func ValidateLng(lng float64) error {
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", lng)
	}
	return nil
}

// Validate checks if the coordinate is within valid ranges.
func (c Coordinate) Validate() error {
	if err := ValidateLat(c.Lat); err != nil {
		return err
	}
	return ValidateLng(c.Lng)
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b Coordinate) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
