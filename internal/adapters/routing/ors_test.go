package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

func newTestORS(t *testing.T, h http.HandlerFunc) *ORSProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := NewORSProvider("ors-key", WithORSBaseURL(srv.URL), WithORSHTTPClient(srv.Client()), WithORSCountry("US"))
	require.NoError(t, err)
	p.client.firstBackoff = time.Millisecond
	return p
}

func TestORSGeocode(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "ors-key", r.Header.Get("Authorization"))
		assert.Equal(t, "1901 W Madison St, Phoenix, AZ", r.URL.Query().Get("text"))
		assert.Equal(t, "US", r.URL.Query().Get("boundary.country"))
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-112.09,33.48]}}]}`))
	})

	got, err := p.Geocode(context.Background(), "1901 W Madison St, Phoenix, AZ")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -112.09, Lat: 33.48}, got)
}

func TestORSGeocodeNotFound(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	})

	_, err := p.Geocode(context.Background(), "zzz")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestORSRoute(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/directions/driving-car/geojson", r.URL.Path)

		var body orsDirectionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, [][]float64{{-112.09, 33.48}, {-111.93, 33.42}}, body.Coordinates)

		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature",
			"properties":{"summary":{"distance":16093.44,"duration":900.2}},
			"geometry":{"type":"LineString","coordinates":[[-112.09,33.48],[-111.93,33.42]]}}]}`))
	})

	route, err := p.Route(context.Background(), []domain.Coordinates{
		{Lon: -112.09, Lat: 33.48},
		{Lon: -111.93, Lat: 33.42},
	})
	require.NoError(t, err)
	assert.Equal(t, 16093, route.DistanceMeters)
	assert.Equal(t, 900, route.DurationSeconds)
	assert.Len(t, route.Geometry, 2)
}

func TestORSRouteNotFound(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":2010,"message":"Could not find routable point"}}`))
	})

	_, err := p.Route(context.Background(), []domain.Coordinates{{}, {Lon: 1, Lat: 1}})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestORSRouteRejectsNonLineGeometry(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature",
			"properties":{"summary":{"distance":1,"duration":1}},
			"geometry":{"type":"Point","coordinates":[1,1]}}]}`))
	})

	_, err := p.Route(context.Background(), []domain.Coordinates{{}, {Lon: 1, Lat: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LineString")
}

func TestORSRetryStopsOnCanceledContext(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Geocode(ctx, "Phoenix")
	assert.ErrorIs(t, err, context.Canceled)
}
