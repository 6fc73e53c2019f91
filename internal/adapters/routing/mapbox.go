package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

// MapboxProvider resolves addresses with the Mapbox geocoding v5 API and routes
// with directions v5 using live traffic.
//
// The provider is safe for concurrent use.
type MapboxProvider struct {
	client  apiClient
	token   string
	baseURL string
	profile string
}

type MapboxOption func(*MapboxProvider)

// WithMapboxBaseURL points the provider at another host, e.g. a test server.
func WithMapboxBaseURL(u string) MapboxOption {
	return func(p *MapboxProvider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithMapboxHTTPClient replaces the default 10s-timeout client.
func WithMapboxHTTPClient(c *http.Client) MapboxOption {
	return func(p *MapboxProvider) { p.client.session = c }
}

func NewMapboxProvider(token string, opts ...MapboxOption) (*MapboxProvider, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("mapbox access token is empty")
	}

	p := &MapboxProvider{
		client:  newAPIClient(nil, nil),
		token:   token,
		baseURL: "https://api.mapbox.com",
		profile: "mapbox/driving-traffic",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type mapboxGeocodeResponse struct {
	Features []struct {
		Center []float64 `json:"center"`
	} `json:"features"`
}

// Geocode returns the center of the first matching place.
func (m *MapboxProvider) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "mapbox.Geocode")(&err)

	if strings.TrimSpace(query) == "" {
		return domain.Coordinates{}, errors.New("mapbox geocode: query must be non-empty")
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", m.baseURL, url.PathEscape(query))

	resp, err := m.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := m.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("access_token", m.token)
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("mapbox geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded mapboxGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("mapbox geocode %q: decode response: %w", query, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("mapbox geocode %q: %w", query, ports.ErrNotFound)
	}

	center := decoded.Features[0].Center
	if len(center) != 2 {
		return domain.Coordinates{}, fmt.Errorf("mapbox geocode %q: invalid center %v", query, center)
	}

	return domain.Coordinates{Lon: center[0], Lat: center[1]}, nil
}

type mapboxDirectionsResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64          `json:"distance"`
		Duration float64          `json:"duration"`
		Geometry geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// Route returns the first driving route through waypoints in order.
func (m *MapboxProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, "mapbox.Route")(&err)

	if len(waypoints) < 2 {
		return domain.Route{}, fmt.Errorf("mapbox route: need at least 2 waypoints, got %d", len(waypoints))
	}

	endpoint := fmt.Sprintf("%s/directions/v5/%s/%s", m.baseURL, m.profile, joinWaypoints(waypoints))

	resp, err := m.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := m.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("geometries", "geojson")
		q.Set("steps", "true")
		q.Set("overview", "full")
		q.Set("access_token", m.token)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		var he *httpStatusError
		// Mapbox answers 422 with code NoRoute/NoSegment when points are unreachable.
		if errors.As(err, &he) && he.Code == http.StatusUnprocessableEntity {
			return domain.Route{}, fmt.Errorf("mapbox route: %s: %w", he.Body, ports.ErrNotFound)
		}
		return domain.Route{}, fmt.Errorf("mapbox route: %w", err)
	}
	defer resp.Body.Close()

	var decoded mapboxDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Route{}, fmt.Errorf("mapbox route: decode response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.Route{}, fmt.Errorf("mapbox route: code %q: %w", decoded.Code, ports.ErrNotFound)
	}

	first := decoded.Routes[0]
	return newRoute(first.Distance, first.Duration, first.Geometry.Geometry())
}

func joinWaypoints(waypoints []domain.Coordinates) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, formatCoord(w.Lon)+","+formatCoord(w.Lat))
	}
	return strings.Join(parts, ";")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// newRoute rounds upstream float metrics and flattens a LineString geometry.
func newRoute(meters, seconds float64, g orb.Geometry) (domain.Route, error) {
	line, ok := g.(orb.LineString)
	if !ok {
		return domain.Route{}, fmt.Errorf("route geometry: expected LineString, got %T", g)
	}

	geometry := make([]domain.Coordinates, 0, len(line))
	for _, p := range line {
		geometry = append(geometry, domain.FromPoint(p))
	}

	return domain.Route{
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(seconds)),
		Geometry:        geometry,
	}, nil
}
