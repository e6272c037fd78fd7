package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_Identity(t *testing.T) {
	p := Coordinate{Lat: 45.4642, Lng: 9.1900}

	if d := HaversineKm(p, p); d != 0 {
		t.Errorf("expected zero distance for identical points, got %f", d)
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := Coordinate{Lat: 45.4642, Lng: 9.1900}  // Milan
	b := Coordinate{Lat: 45.5485, Lng: 11.5479} // Vicenza

	if HaversineKm(a, b) != HaversineKm(b, a) {
		t.Errorf("expected symmetric distance, got %f and %f", HaversineKm(a, b), HaversineKm(b, a))
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Milan Duomo to Vicenza center is roughly 184 km as the crow flies.
	a := Coordinate{Lat: 45.4642, Lng: 9.1900}
	b := Coordinate{Lat: 45.5485, Lng: 11.5479}

	d := HaversineKm(a, b)
	if d < 180 || d > 190 {
		t.Errorf("expected distance around 184 km, got %f", d)
	}
}

func TestHaversineKm_ShortDistance(t *testing.T) {
	// Two points ~1.1km apart (0.01 degrees latitude).
	a := Coordinate{Lat: 45.46, Lng: 9.19}
	b := Coordinate{Lat: 45.47, Lng: 9.19}

	d := HaversineKm(a, b)
	if math.Abs(d-1.112) > 0.01 {
		t.Errorf("expected distance ~1.112 km, got %f", d)
	}
}

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{Lat: 45.4642, Lng: 9.1900}, false},
		{"lat too high", Coordinate{Lat: 91, Lng: 0}, true},
		{"lat too low", Coordinate{Lat: -91, Lng: 0}, true},
		{"lng too high", Coordinate{Lat: 0, Lng: 181}, true},
		{"lng too low", Coordinate{Lat: 0, Lng: -181}, true},
		{"boundary", Coordinate{Lat: 90, Lng: -180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
