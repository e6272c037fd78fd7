package routing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/travelmode"
)

// mockProvider is a mock routing provider for testing.
type mockProvider struct {
	name      string
	results   map[Profile]*RouteResult
	err       error
	callCount atomic.Int32
}

func (m *mockProvider) Route(_ context.Context, req RouteRequest) (*RouteResult, error) {
	m.callCount.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	result, ok := m.results[req.Profile]
	if !ok {
		return nil, ErrNoRouteFound
	}
	return result, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

var (
	milan   = geo.Coordinate{Lat: 45.4642, Lng: 9.1900}
	vicenza = geo.Coordinate{Lat: 45.5485, Lng: 11.5479}
)

func newTestEstimator(provider Provider) *Estimator {
	return NewEstimator(EstimatorConfig{Provider: provider})
}

func TestEstimator_Estimate_Car(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 95, DistanceKm: 120.4}},
	}
	estimator := newTestEstimator(provider)

	est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Car)
	if est == nil {
		t.Fatal("expected car estimate, got nil")
	}
	if est.DurationMinutes != 95 {
		t.Errorf("expected 95 minutes, got %d", est.DurationMinutes)
	}
	if est.DistanceKm != 120.4 {
		t.Errorf("expected 120.4 km, got %f", est.DistanceKm)
	}
}

func TestEstimator_Estimate_TrainScaling(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 95, DistanceKm: 120.4}},
	}
	estimator := newTestEstimator(provider)

	est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Train)
	if est == nil {
		t.Fatal("expected train estimate, got nil")
	}
	// round(95*0.7)+15 = 67+15
	if est.DurationMinutes != 82 {
		t.Errorf("expected 82 minutes, got %d", est.DurationMinutes)
	}
}

func TestEstimator_Estimate_TrainBelowThreshold(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 25, DistanceKm: 15}},
	}
	estimator := newTestEstimator(provider)

	if est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Train); est != nil {
		t.Errorf("expected no train estimate under 20 km driving distance, got %+v", est)
	}
}

func TestEstimator_Estimate_BusScaling(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 30, DistanceKm: 10}},
	}
	estimator := newTestEstimator(provider)

	est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Bus)
	if est == nil {
		t.Fatal("expected bus estimate, got nil")
	}
	// round(30*1.3)+10 = 39+10
	if est.DurationMinutes != 49 {
		t.Errorf("expected 49 minutes, got %d", est.DurationMinutes)
	}
}

func TestEstimator_Estimate_BusBelowThreshold(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 10, DistanceKm: 4}},
	}
	estimator := newTestEstimator(provider)

	if est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Bus); est != nil {
		t.Errorf("expected no bus estimate under 5 km driving distance, got %+v", est)
	}
}

func TestEstimator_Estimate_WalkGatedByCrowDistance(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileFoot: {DurationMinutes: 600, DistanceKm: 50}},
	}
	estimator := newTestEstimator(provider)

	// Milan to Vicenza is far beyond the 5 km walking gate.
	if est := estimator.Estimate(context.Background(), milan, vicenza, travelmode.Walk); est != nil {
		t.Errorf("expected no walk estimate beyond 5 km, got %+v", est)
	}
	if provider.callCount.Load() != 0 {
		t.Errorf("expected no provider call for gated walk, got %d", provider.callCount.Load())
	}
}

func TestEstimator_Estimate_WalkWithinGate(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileFoot: {DurationMinutes: 25, DistanceKm: 1.8}},
	}
	estimator := newTestEstimator(provider)

	near := geo.Coordinate{Lat: 45.4700, Lng: 9.1850}
	est := estimator.Estimate(context.Background(), milan, near, travelmode.Walk)
	if est == nil {
		t.Fatal("expected walk estimate within 5 km, got nil")
	}
	if est.DurationMinutes != 25 {
		t.Errorf("expected 25 minutes, got %d", est.DurationMinutes)
	}
}

func TestEstimator_Estimate_ProviderFailure(t *testing.T) {
	provider := &mockProvider{name: "test", err: errors.New("connection refused")}
	estimator := newTestEstimator(provider)

	if est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Car); est != nil {
		t.Errorf("expected nil estimate on provider failure, got %+v", est)
	}
}

func TestEstimator_Estimate_UnknownMode(t *testing.T) {
	provider := &mockProvider{name: "test"}
	estimator := newTestEstimator(provider)

	if est := estimator.Estimate(context.Background(), vicenza, milan, travelmode.Mode("teleport")); est != nil {
		t.Errorf("expected nil estimate for unknown mode, got %+v", est)
	}
}

func TestEstimator_EstimateAll_LongDistance(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 240, DistanceKm: 400}},
	}
	estimator := newTestEstimator(provider)

	estimates := estimator.EstimateAll(context.Background(), milan, geo.Coordinate{Lat: 41.9028, Lng: 12.4964})

	byMode := make(map[travelmode.Mode]TravelEstimate)
	for _, est := range estimates {
		byMode[est.Mode] = est
	}

	if _, ok := byMode[travelmode.Walk]; ok {
		t.Error("expected no walk estimate for a cross-country hop")
	}
	if byMode[travelmode.Car].DurationMinutes != 240 {
		t.Errorf("expected car 240 minutes, got %d", byMode[travelmode.Car].DurationMinutes)
	}
	// round(240*0.7)+15
	if byMode[travelmode.Train].DurationMinutes != 183 {
		t.Errorf("expected train 183 minutes, got %d", byMode[travelmode.Train].DurationMinutes)
	}
	// round(240*1.3)+10
	if byMode[travelmode.Bus].DurationMinutes != 322 {
		t.Errorf("expected bus 322 minutes, got %d", byMode[travelmode.Bus].DurationMinutes)
	}
	// round(400/800*60)+90
	if byMode[travelmode.Flight].DurationMinutes != 120 {
		t.Errorf("expected flight 120 minutes, got %d", byMode[travelmode.Flight].DurationMinutes)
	}
}

func TestEstimator_EstimateAll_ShortHop(t *testing.T) {
	provider := &mockProvider{
		name: "test",
		results: map[Profile]*RouteResult{
			ProfileDriving: {DurationMinutes: 8, DistanceKm: 2.4},
			ProfileFoot:    {DurationMinutes: 30, DistanceKm: 2.2},
		},
	}
	estimator := newTestEstimator(provider)

	near := geo.Coordinate{Lat: 45.4800, Lng: 9.2000}
	estimates := estimator.EstimateAll(context.Background(), milan, near)

	byMode := make(map[travelmode.Mode]TravelEstimate)
	for _, est := range estimates {
		byMode[est.Mode] = est
	}

	if len(estimates) != 2 {
		t.Fatalf("expected car and walk only, got %d estimates: %+v", len(estimates), estimates)
	}
	if _, ok := byMode[travelmode.Car]; !ok {
		t.Error("expected car estimate")
	}
	if _, ok := byMode[travelmode.Walk]; !ok {
		t.Error("expected walk estimate")
	}
}

func TestEstimator_CacheHit(t *testing.T) {
	provider := &mockProvider{
		name:    "test",
		results: map[Profile]*RouteResult{ProfileDriving: {DurationMinutes: 95, DistanceKm: 120.4}},
	}
	estimator := newTestEstimator(provider)

	ctx := context.Background()
	estimator.Estimate(ctx, vicenza, milan, travelmode.Car)
	estimator.Estimate(ctx, vicenza, milan, travelmode.Car)

	if provider.callCount.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.callCount.Load())
	}

	stats := estimator.CacheStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %+v", stats)
	}
}
