// Package worker provides background job processing for TripWeaver.
package worker

import (
	"time"

	"github.com/tripweaver/tripweaver/internal/travelmode"
)

// PrewarmConfig holds configuration for the route prewarm job.
type PrewarmConfig struct {
	// Concurrency is the number of concurrent legs being estimated.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for estimating one leg.
	// Default: 30 seconds
	Timeout time.Duration

	// Modes are the travel modes to warm per leg. When empty, every
	// catalog mode is warmed.
	Modes []travelmode.Mode
}

// DefaultPrewarmConfig returns the default prewarm configuration.
func DefaultPrewarmConfig() PrewarmConfig {
	return PrewarmConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// withDefaults fills in zero-valued fields.
func (c PrewarmConfig) withDefaults() PrewarmConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}
