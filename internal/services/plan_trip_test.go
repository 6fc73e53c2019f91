package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/domain"
	"trip-log-service/internal/eld"
	"trip-log-service/internal/mapview"
	"trip-log-service/internal/ports"
)

var (
	ankara   = domain.Coordinates{Lon: 32.8597, Lat: 39.9334}
	izmir    = domain.Coordinates{Lon: 27.1428, Lat: 38.4237}
	istanbul = domain.Coordinates{Lon: 28.9784, Lat: 41.0082}
)

func newTestProvider() *routing.MockProvider {
	p := routing.NewMockProvider(map[string]domain.Coordinates{
		"ankara":   ankara,
		"izmir":    izmir,
		"istanbul": istanbul,
	})
	p.AddRoute([]domain.Coordinates{istanbul, ankara, izmir}, domain.Route{
		DistanceMeters:  1_609_344, // 1000 miles
		DurationSeconds: 36_000,
		Geometry:        []domain.Coordinates{istanbul, ankara, izmir},
	})
	return p
}

func testRequest() TripRequest {
	return TripRequest{Pickup: "ankara", Dropoff: "izmir", Current: "istanbul", CycleHours: 70}
}

func TestPlanTrip(t *testing.T) {
	p := newTestProvider()

	plan, err := PlanTrip(context.Background(), testRequest(), p, p)
	require.NoError(t, err)

	require.Len(t, plan.Trip.Stops, 3)
	assert.Equal(t, domain.RolePickup, plan.Trip.Stops[0].Role)
	assert.Equal(t, domain.RoleDropoff, plan.Trip.Stops[1].Role)
	assert.Equal(t, domain.RoleCurrent, plan.Trip.Stops[2].Role)
	assert.InDelta(t, 1000, plan.Trip.TotalMiles(), 1e-9)

	assert.Len(t, plan.Panels, 3)
	for i, panel := range plan.Panels {
		assert.Equal(t, i+1, panel.Day)
		assert.Equal(t, "Ankara", panel.From)
		assert.Equal(t, "Izmir", panel.To)
		assert.Equal(t, eld.Synthesize(1000, 70), panel.Timeline)
	}

	assert.Equal(t, mapview.Populated, plan.Map.State)
	assert.Len(t, plan.Map.Markers, 3)
	assert.NotEmpty(t, plan.Polyline)
	require.NotNil(t, plan.GeoJSON)
	assert.Equal(t, 1_609_344, plan.GeoJSON.Properties["distance_meters"])
}

func TestPlanTripTrimsInput(t *testing.T) {
	p := newTestProvider()
	req := TripRequest{Pickup: "  ankara ", Dropoff: "izmir\t", Current: " istanbul", CycleHours: 24}

	plan, err := PlanTrip(context.Background(), req, p, p)
	require.NoError(t, err)
	assert.Len(t, plan.Panels, 1)
	assert.Equal(t, "ankara", plan.Trip.Stops[0].Query)
}

func TestPlanTripValidation(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*TripRequest)
	}{
		{"empty pickup", func(r *TripRequest) { r.Pickup = "   " }},
		{"empty dropoff", func(r *TripRequest) { r.Dropoff = "" }},
		{"empty current", func(r *TripRequest) { r.Current = "" }},
		{"long query", func(r *TripRequest) { r.Pickup = strings.Repeat("a", 201) }},
		{"newline", func(r *TripRequest) { r.Current = "a\nb" }},
		{"negative cycle", func(r *TripRequest) { r.CycleHours = -1 }},
		{"huge cycle", func(r *TripRequest) { r.CycleHours = 10001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider()
			req := testRequest()
			tt.mut(&req)

			_, err := PlanTrip(context.Background(), req, p, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var se *StageError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, StageValidate, se.Stage)
			assert.Zero(t, p.Calls("geocode:ankara"), "no upstream calls on invalid input")
		})
	}
}

func TestPlanTripZeroCycle(t *testing.T) {
	p := newTestProvider()
	req := testRequest()
	req.CycleHours = 0

	plan, err := PlanTrip(context.Background(), req, p, p)
	require.NoError(t, err)
	assert.Empty(t, plan.Panels)
}

func TestPlanTripLocationNotFound(t *testing.T) {
	p := newTestProvider()
	req := testRequest()
	req.Dropoff = "atlantis"

	_, err := PlanTrip(context.Background(), req, p, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageGeocode, se.Stage)
	assert.Equal(t, domain.RoleDropoff, se.Stop)
	assert.Equal(t, "One or both locations could not be found. Try again.", UserMessage(err))
}

// failingGeocoder fails selected queries with selected errors.
type failingGeocoder struct {
	inner ports.Geocoder
	fail  map[string]error
	delay map[string]time.Duration
}

func (g failingGeocoder) Geocode(ctx context.Context, q string) (domain.Coordinates, error) {
	time.Sleep(g.delay[q])
	if err, ok := g.fail[q]; ok {
		return domain.Coordinates{}, err
	}
	return g.inner.Geocode(ctx, q)
}

func TestPlanTripReportsFirstFailingStop(t *testing.T) {
	p := newTestProvider()
	g := failingGeocoder{inner: p, fail: map[string]error{
		"istanbul": errors.New("connection reset"),
		"izmir":    ports.ErrNotFound,
	}}
	// The later stop fails first in time.
	g.delay = map[string]time.Duration{"izmir": 20 * time.Millisecond}

	for i := 0; i < 5; i++ {
		_, err := PlanTrip(context.Background(), testRequest(), g, p)

		var se *StageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, domain.RoleDropoff, se.Stop)
		assert.ErrorIs(t, err, ErrLocationNotFound)
	}
}

func TestPlanTripGeocodeTransportFailure(t *testing.T) {
	p := newTestProvider()
	g := failingGeocoder{inner: p, fail: map[string]error{"ankara": errors.New("dial tcp: timeout")}}

	_, err := PlanTrip(context.Background(), testRequest(), g, p)
	assert.ErrorIs(t, err, ErrGeocodeFailed)
	assert.Equal(t, "Failed to fetch coordinates.", UserMessage(err))
}

func TestPlanTripNoRoute(t *testing.T) {
	p := newTestProvider()
	p.Routes = map[string]domain.Route{}

	_, err := PlanTrip(context.Background(), testRequest(), p, p)
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.Equal(t, "No route found.", UserMessage(err))
}

type brokenDirections struct{}

func (brokenDirections) Route(context.Context, []domain.Coordinates) (domain.Route, error) {
	return domain.Route{}, errors.New("status 502")
}

func TestPlanTripRouteFailure(t *testing.T) {
	p := newTestProvider()

	_, err := PlanTrip(context.Background(), testRequest(), p, brokenDirections{})
	assert.ErrorIs(t, err, ErrRouteFailed)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageRoute, se.Stage)
	assert.Equal(t, "Failed to fetch route.", UserMessage(err))
}

// recordingDirections captures the waypoints it was asked for.
type recordingDirections struct {
	mu   sync.Mutex
	got  []domain.Coordinates
	resp domain.Route
}

func (d *recordingDirections) Route(_ context.Context, w []domain.Coordinates) (domain.Route, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got = w
	return d.resp, nil
}

func TestPlanTripRoutesCurrentPickupDropoff(t *testing.T) {
	p := newTestProvider()
	d := &recordingDirections{resp: domain.Route{Geometry: []domain.Coordinates{istanbul, izmir}}}

	plan, err := PlanTrip(context.Background(), testRequest(), p, d)
	require.NoError(t, err)
	assert.Equal(t, []domain.Coordinates{istanbul, ankara, izmir}, d.got)

	// Distance falls back to the geometry length when the provider omits it.
	assert.Greater(t, plan.Trip.Route.DistanceMeters, 300_000)
}

func TestUserMessageInvalidInput(t *testing.T) {
	err := &StageError{Stage: StageValidate, Kind: ErrInvalidInput, Err: errors.New("pickup is required")}
	assert.Equal(t, "pickup is required", UserMessage(err))
	assert.Equal(t, "validate: invalid input: pickup is required", err.Error())
	assert.Equal(t, "Internal error.", UserMessage(errors.New("boom")))
}
