package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/itinerary"
	"github.com/tripweaver/tripweaver/internal/routing"
	"github.com/tripweaver/tripweaver/internal/trip"
)

// PrewarmJob warms the route cache for a trip day ahead of time, so that
// interactive compose and estimate calls hit cached results.
type PrewarmJob struct {
	config    PrewarmConfig
	logger    zerolog.Logger
	estimator *routing.Estimator
	trips     trip.Repository
	items     itinerary.Repository

	metrics *PrewarmMetrics
}

// PrewarmMetrics tracks prewarm job statistics.
type PrewarmMetrics struct {
	mu sync.RWMutex

	TotalRuns      int64
	SuccessfulLegs int64
	FailedLegs     int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// PrewarmJobConfig holds configuration for creating a PrewarmJob.
type PrewarmJobConfig struct {
	Config    PrewarmConfig
	Logger    zerolog.Logger
	Estimator *routing.Estimator
	Trips     trip.Repository
	Items     itinerary.Repository
}

// NewPrewarmJob creates a new prewarm job processor.
func NewPrewarmJob(cfg PrewarmJobConfig) *PrewarmJob {
	return &PrewarmJob{
		config:    cfg.Config.withDefaults(),
		logger:    cfg.Logger,
		estimator: cfg.Estimator,
		trips:     cfg.Trips,
		items:     cfg.Items,
		metrics:   &PrewarmMetrics{},
	}
}

// PrewarmResult contains the result of one prewarm run.
type PrewarmResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalLegs  int
	Successful int
	Failed     int
}

// leg is one origin/destination pair to warm.
type leg struct {
	from geo.Coordinate
	to   geo.Coordinate
}

// Run warms the route cache for every leg of one trip day: home base to
// the first activity, then activity to activity in order-index order.
func (j *PrewarmJob) Run(ctx context.Context, tripID, date string) (*PrewarmResult, error) {
	startTime := time.Now()

	t, err := j.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	items, err := j.items.ListByTripAndDate(ctx, tripID, date)
	if err != nil {
		return nil, err
	}

	legs := dayLegs(t, items)
	result := &PrewarmResult{
		StartTime: startTime,
		TotalLegs: len(legs),
	}

	j.logger.Info().
		Str("trip_id", tripID).
		Str("date", date).
		Int("legs", len(legs)).
		Int("concurrency", j.config.Concurrency).
		Msg("starting route prewarm job")

	legsChan := make(chan leg, len(legs))
	resultsChan := make(chan bool, len(legs))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.prewarmWorker(ctx, legsChan, resultsChan)
		}()
	}

	for _, l := range legs {
		legsChan <- l
	}
	close(legsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for ok := range resultsChan {
		if ok {
			result.Successful++
		} else {
			result.Failed++
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("route prewarm job completed")

	return result, nil
}

func (j *PrewarmJob) prewarmWorker(ctx context.Context, legs <-chan leg, results chan<- bool) {
	for l := range legs {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.warmLeg(ctx, l)
		}
	}
}

// warmLeg asks the estimator for every configured mode on one leg. The
// estimator's cache keeps the underlying provider results warm.
func (j *PrewarmJob) warmLeg(ctx context.Context, l leg) bool {
	legCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	if len(j.config.Modes) == 0 {
		return len(j.estimator.EstimateAll(legCtx, l.from, l.to)) > 0
	}

	warmed := 0
	for _, mode := range j.config.Modes {
		if est := j.estimator.Estimate(legCtx, l.from, l.to, mode); est != nil {
			warmed++
		}
	}
	return warmed > 0
}

// dayLegs derives the legs of a day from its itinerary: home base to the
// first located activity, then each located activity to the next.
// Transport rows and rows without coordinates are skipped.
func dayLegs(t *trip.Trip, items []*itinerary.Item) []leg {
	homeBase := trip.DefaultHomeBase()
	if t.HomeBase != nil {
		homeBase = *t.HomeBase
	}

	var legs []leg
	prev := homeBase.Coordinates
	for _, item := range items {
		if item.Category == itinerary.CategoryTransport || item.Coordinates == nil {
			continue
		}
		if *item.Coordinates != prev {
			legs = append(legs, leg{from: prev, to: *item.Coordinates})
			prev = *item.Coordinates
		}
	}
	return legs
}

func (j *PrewarmJob) updateMetrics(result *PrewarmResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SuccessfulLegs += int64(result.Successful)
	j.metrics.FailedLegs += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *PrewarmJob) GetMetrics() PrewarmMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return PrewarmMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SuccessfulLegs:  j.metrics.SuccessfulLegs,
		FailedLegs:      j.metrics.FailedLegs,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *PrewarmJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"successful_legs":   m.SuccessfulLegs,
		"failed_legs":       m.FailedLegs,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
