package itinerary

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:00", 540, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"9:00", "09:00"},
		{"09:00", "09:00"},
		{"0:05", "00:05"},
		{"23:59", "23:59"},
		{"noon", "noon"},
	}

	for _, tt := range tests {
		if got := normalizeClock(tt.input); got != tt.want {
			t.Errorf("normalizeClock(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAddClock_Wraparound(t *testing.T) {
	// 23:30 + 90 minutes wraps to 01:00 on the same calendar date.
	got, err := addClock("23:30", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "01:00" {
		t.Errorf("expected 01:00, got %q", got)
	}
}

func TestAddClock(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     string
	}{
		{"09:00", 120, "11:00"},
		{"09:00", 90, "10:30"},
		{"22:00", 120, "00:00"},
		{"09:00", 0, "09:00"},
		{"9:05", 55, "10:00"},
	}

	for _, tt := range tests {
		got, err := addClock(tt.start, tt.duration)
		if err != nil {
			t.Fatalf("addClock(%q, %d): %v", tt.start, tt.duration, err)
		}
		if got != tt.want {
			t.Errorf("addClock(%q, %d) = %q, want %q", tt.start, tt.duration, got, tt.want)
		}
	}
}

func TestDepartureClock_ClampsAtMidnight(t *testing.T) {
	got, err := departureClock("00:30", 95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "00:00" {
		t.Errorf("expected departure clamped to 00:00, got %q", got)
	}
}

func TestDepartureClock(t *testing.T) {
	got, err := departureClock("09:00", 95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "07:25" {
		t.Errorf("expected 07:25, got %q", got)
	}
}
