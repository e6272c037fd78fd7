package worker_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/routing"
	"github.com/tripweaver/tripweaver/internal/trip"
	"github.com/tripweaver/tripweaver/internal/worker"
)

// countingProvider serves a fixed driving result and counts route calls.
type countingProvider struct {
	calls atomic.Int32
}

func (p *countingProvider) Route(_ context.Context, req routing.RouteRequest) (*routing.RouteResult, error) {
	p.calls.Add(1)
	if req.Profile == routing.ProfileFoot {
		return &routing.RouteResult{DurationMinutes: 25, DistanceKm: 1.8}, nil
	}
	return &routing.RouteResult{DurationMinutes: 40, DistanceKm: 35.0}, nil
}

func (p *countingProvider) Name() string {
	return "counting"
}

func strPtr(s string) *string {
	return &s
}

func seedDay(t *testing.T, items *itinerary.InMemoryRepository) {
	t.Helper()

	rows := []*itinerary.Item{
		{
			ID:          "iti_travel",
			TripID:      "trp_milan",
			Title:       "Travel to Duomo di Milano",
			Date:        "2025-06-14",
			StartTime:   strPtr("07:25"),
			EndTime:     strPtr("09:00"),
			Coordinates: &geo.Coordinate{Lat: 45.4642, Lng: 9.1900},
			Category:    itinerary.CategoryTransport,
			OrderIndex:  0,
		},
		{
			ID:          "iti_duomo",
			TripID:      "trp_milan",
			Title:       "Duomo di Milano",
			Date:        "2025-06-14",
			StartTime:   strPtr("09:00"),
			EndTime:     strPtr("11:00"),
			Coordinates: &geo.Coordinate{Lat: 45.4642, Lng: 9.1900},
			Category:    itinerary.CategorySightseeing,
			OrderIndex:  1,
		},
		{
			ID:          "iti_lunch",
			TripID:      "trp_milan",
			Title:       "Lunch at Luini",
			Date:        "2025-06-14",
			StartTime:   strPtr("12:00"),
			EndTime:     strPtr("13:30"),
			Coordinates: &geo.Coordinate{Lat: 45.4656, Lng: 9.1916},
			Category:    itinerary.CategoryMeal,
			OrderIndex:  2,
		},
		{
			ID:         "iti_notes",
			TripID:     "trp_milan",
			Title:      "Buy tickets online",
			Date:       "2025-06-14",
			Category:   itinerary.CategoryActivity,
			OrderIndex: 3,
		},
	}
	require.NoError(t, items.CreateBatch(context.Background(), rows))
}

func newPrewarmJob(t *testing.T, provider routing.Provider, cfg worker.PrewarmConfig) (*worker.PrewarmJob, *trip.InMemoryRepository, *itinerary.InMemoryRepository) {
	t.Helper()

	logger := zerolog.New(io.Discard)
	estimator := routing.NewEstimator(routing.EstimatorConfig{
		Provider: provider,
		Logger:   logger,
	})

	trips := trip.NewInMemoryRepository()
	items := itinerary.NewInMemoryRepository()

	job := worker.NewPrewarmJob(worker.PrewarmJobConfig{
		Config:    cfg,
		Logger:    logger,
		Estimator: estimator,
		Trips:     trips,
		Items:     items,
	})
	return job, trips, items
}

func TestDefaultPrewarmConfig(t *testing.T) {
	cfg := worker.DefaultPrewarmConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Modes)
}

func TestPrewarmJob_Run(t *testing.T) {
	provider := &countingProvider{}
	job, trips, items := newPrewarmJob(t, provider, worker.PrewarmConfig{})
	trips.PutTrip(&trip.Trip{ID: "trp_milan", Name: "Milan Weekend"})
	seedDay(t, items)

	result, err := job.Run(context.Background(), "trp_milan", "2025-06-14")
	require.NoError(t, err)

	// Home base to Duomo, then Duomo to Luini. Transport rows and rows
	// without coordinates contribute no legs.
	assert.Equal(t, 2, result.TotalLegs)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Greater(t, provider.calls.Load(), int32(0))

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalRuns)
	assert.Equal(t, int64(2), metrics.SuccessfulLegs)
}

func TestPrewarmJob_Run_EmptyDay(t *testing.T) {
	provider := &countingProvider{}
	job, trips, _ := newPrewarmJob(t, provider, worker.PrewarmConfig{})
	trips.PutTrip(&trip.Trip{ID: "trp_milan", Name: "Milan Weekend"})

	result, err := job.Run(context.Background(), "trp_milan", "2025-06-14")
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalLegs)
	assert.Equal(t, int32(0), provider.calls.Load())
}

func TestPrewarmJob_Run_TripNotFound(t *testing.T) {
	job, _, _ := newPrewarmJob(t, &countingProvider{}, worker.PrewarmConfig{})

	_, err := job.Run(context.Background(), "trp_missing", "2025-06-14")
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}
