package routing

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/travelmode"
)

// Cache stores route results keyed by quantized request.
type Cache interface {
	Get(ctx context.Context, key string) (*RouteResult, bool)
	Set(ctx context.Context, key string, result *RouteResult, ttl time.Duration)
}

// EstimatorConfig holds configuration for the estimator.
type EstimatorConfig struct {
	// Provider is the routing data provider.
	Provider Provider

	// Logger for estimator operations.
	Logger zerolog.Logger

	// Cache is the route result cache (default: in-memory).
	Cache Cache

	// CacheTTL is how long to cache route results (default: 15 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the size of cache grid cells in degrees (default: 0.01 ~ 1.1km).
	// Points within the same grid cell share cached results.
	CacheGridSize float64
}

// Estimator computes per-mode travel estimates. Provider failures are never
// surfaced to callers; an estimate that cannot be computed is simply absent.
type Estimator struct {
	provider      Provider
	logger        zerolog.Logger
	cache         Cache
	cacheTTL      time.Duration
	cacheGridSize float64

	hits   atomic.Int64
	misses atomic.Int64
}

// NewEstimator creates a new estimator.
func NewEstimator(cfg EstimatorConfig) *Estimator {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	cacheGridSize := cfg.CacheGridSize
	if cacheGridSize == 0 {
		cacheGridSize = 0.01 // ~1.1km at equator
	}

	cache := cfg.Cache
	if cache == nil {
		cache = NewMemoryCache()
	}

	return &Estimator{
		provider:      cfg.Provider,
		logger:        cfg.Logger,
		cache:         cache,
		cacheTTL:      cacheTTL,
		cacheGridSize: cacheGridSize,
	}
}

// Estimate returns the travel estimate between two points for a single mode.
// Returns nil when the mode is gated out by its distance threshold or the
// route cannot be computed; callers must treat nil as "travel time unknown".
func (e *Estimator) Estimate(ctx context.Context, from, to geo.Coordinate, mode travelmode.Mode) *TravelEstimate {
	info, ok := travelmode.Lookup(mode)
	if !ok {
		e.logger.Warn().Str("mode", string(mode)).Msg("unknown travel mode requested")
		return nil
	}

	switch mode {
	case travelmode.Walk:
		// Skip the provider call entirely for straight-line distances the
		// walking gate already rules out.
		if geo.HaversineKm(from, to) >= info.MaxCrowKm {
			return nil
		}
		result := e.route(ctx, from, to, ProfileFoot)
		if result == nil {
			return nil
		}
		return &TravelEstimate{Mode: mode, DurationMinutes: result.DurationMinutes, DistanceKm: result.DistanceKm}

	case travelmode.Car:
		result := e.route(ctx, from, to, ProfileDriving)
		if result == nil {
			return nil
		}
		return &TravelEstimate{Mode: mode, DurationMinutes: result.DurationMinutes, DistanceKm: result.DistanceKm}

	default:
		driving := e.route(ctx, from, to, ProfileDriving)
		if driving == nil {
			return nil
		}
		return deriveEstimate(mode, info, driving)
	}
}

// EstimateAll returns display estimates for every applicable mode, sharing a
// single driving route across the derived modes.
func (e *Estimator) EstimateAll(ctx context.Context, from, to geo.Coordinate) []TravelEstimate {
	var estimates []TravelEstimate

	driving := e.route(ctx, from, to, ProfileDriving)
	if driving != nil {
		estimates = append(estimates, TravelEstimate{
			Mode:            travelmode.Car,
			DurationMinutes: driving.DurationMinutes,
			DistanceKm:      driving.DistanceKm,
		})

		for _, mode := range []travelmode.Mode{travelmode.Train, travelmode.Bus, travelmode.Flight} {
			info, _ := travelmode.Lookup(mode)
			if est := deriveEstimate(mode, info, driving); est != nil {
				estimates = append(estimates, *est)
			}
		}
	}

	if walk := e.Estimate(ctx, from, to, travelmode.Walk); walk != nil {
		estimates = append(estimates, *walk)
	}

	return estimates
}

// deriveEstimate scales a driving result into a derived-mode estimate.
// Returns nil when the driving distance is under the mode's threshold.
func deriveEstimate(mode travelmode.Mode, info travelmode.Info, driving *RouteResult) *TravelEstimate {
	if driving.DistanceKm <= info.MinDrivingKm {
		return nil
	}

	var minutes int
	if mode == travelmode.Flight {
		minutes = int(math.Round(driving.DistanceKm/travelmode.FlightCruiseKmh*60)) + info.OverheadMinutes
	} else {
		minutes = int(math.Round(float64(driving.DurationMinutes)*info.Factor)) + info.OverheadMinutes
	}

	return &TravelEstimate{
		Mode:            mode,
		DurationMinutes: minutes,
		DistanceKm:      driving.DistanceKm,
	}
}

// route fetches a route from the cache or the provider. Any provider failure
// is downgraded to nil after logging.
func (e *Estimator) route(ctx context.Context, from, to geo.Coordinate, profile Profile) *RouteResult {
	if from.Validate() != nil || to.Validate() != nil {
		return nil
	}

	key := e.cacheKey(from, to, profile)
	if cached, ok := e.cache.Get(ctx, key); ok {
		e.hits.Add(1)
		e.logger.Debug().Str("cache_key", key).Msg("route cache hit")
		return cached
	}
	e.misses.Add(1)

	result, err := e.provider.Route(ctx, RouteRequest{From: from, To: to, Profile: profile})
	if err != nil {
		e.logger.Warn().Err(err).
			Str("profile", string(profile)).
			Float64("from_lat", from.Lat).
			Float64("from_lng", from.Lng).
			Float64("to_lat", to.Lat).
			Float64("to_lng", to.Lng).
			Str("provider", e.provider.Name()).
			Msg("route unavailable")
		return nil
	}

	e.cache.Set(ctx, key, result, e.cacheTTL)
	return result
}

// cacheKey quantizes both endpoints to grid cells so nearby points share
// cached results. Format: {profile}:{fromLat},{fromLng}:{toLat},{toLng}.
func (e *Estimator) cacheKey(from, to geo.Coordinate, profile Profile) string {
	gridFromLat := math.Floor(from.Lat/e.cacheGridSize) * e.cacheGridSize
	gridFromLng := math.Floor(from.Lng/e.cacheGridSize) * e.cacheGridSize
	gridToLat := math.Floor(to.Lat/e.cacheGridSize) * e.cacheGridSize
	gridToLng := math.Floor(to.Lng/e.cacheGridSize) * e.cacheGridSize

	return fmt.Sprintf("route:%s:%.2f,%.2f:%.2f,%.2f",
		profile,
		gridFromLat, gridFromLng,
		gridToLat, gridToLng,
	)
}

// Stats contains estimator cache statistics.
type Stats struct {
	CacheHits   int64
	CacheMisses int64
	Provider    string
}

// CacheStats returns cache hit/miss counters.
func (e *Estimator) CacheStats() Stats {
	return Stats{
		CacheHits:   e.hits.Load(),
		CacheMisses: e.misses.Load(),
		Provider:    e.provider.Name(),
	}
}

// ProviderName returns the name of the underlying provider.
func (e *Estimator) ProviderName() string {
	return e.provider.Name()
}
