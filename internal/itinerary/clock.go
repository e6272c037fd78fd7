package itinerary

import (
	"fmt"
	"regexp"
)

// minutesPerDay is the wraparound modulus for clock arithmetic.
const minutesPerDay = 24 * 60

// clockRegex validates HH:MM time strings.
var clockRegex = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// parseClock converts an HH:MM string to minutes since midnight.
func parseClock(s string) (int, error) {
	if !clockRegex.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q: must be in HH:MM format", s)
	}

	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return h*60 + m, nil
}

// normalizeClock re-renders a valid clock string in zero-padded form.
// Stored times are compared lexicographically, so "9:00" must become
// "09:00" before it is persisted or matched against existing entries.
func normalizeClock(s string) string {
	m, err := parseClock(s)
	if err != nil {
		return s
	}
	return formatClock(m)
}

// formatClock renders minutes since midnight as a zero-padded HH:MM string.
// Values at or past midnight wrap via modulo 24 hours: an activity ending
// after midnight displays a small-hours end time on the same calendar date
// rather than rolling to the next day. This is deliberate.
func formatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// addClock returns start + duration with wraparound display.
func addClock(start string, durationMinutes int) (string, error) {
	m, err := parseClock(start)
	if err != nil {
		return "", err
	}
	return formatClock(m + durationMinutes), nil
}

// departureClock returns start - travel, clamped at midnight: departures
// never reach back into the previous day.
func departureClock(start string, travelMinutes int) (string, error) {
	m, err := parseClock(start)
	if err != nil {
		return "", err
	}

	depart := m - travelMinutes
	if depart < 0 {
		depart = 0
	}
	return formatClock(depart), nil
}
