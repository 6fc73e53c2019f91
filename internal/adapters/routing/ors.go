package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/paulmach/orb/geojson"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
	"trip-log-service/internal/ports"
)

// ORSProvider implements RoutingProvider using OpenRouteService.
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	client  apiClient
	baseURL string
	profile string
	country string
}

type ORSOption func(*ORSProvider)

func WithORSBaseURL(u string) ORSOption {
	return func(p *ORSProvider) { p.baseURL = strings.TrimRight(u, "/") }
}

func WithORSHTTPClient(c *http.Client) ORSOption {
	return func(p *ORSProvider) { p.client.session = c }
}

// WithORSCountry restricts geocoding to an ISO country code, e.g. "US".
func WithORSCountry(code string) ORSOption {
	return func(p *ORSProvider) { p.country = code }
}

func NewORSProvider(apiKey string, opts ...ORSOption) (*ORSProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	p := &ORSProvider{
		client: newAPIClient(nil, func(r *http.Request) {
			r.Header.Set("Authorization", apiKey)
		}),
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves one address with /geocode/search.
func (o *ORSProvider) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	if strings.TrimSpace(query) == "" {
		return domain.Coordinates{}, errors.New("ors geocode: query must be non-empty")
	}

	endpoint := o.baseURL + "/geocode/search"

	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", query)
		q.Set("size", "1")
		if o.country != "" {
			q.Set("boundary.country", o.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: decode response: %w", query, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: %w", query, ports.ErrNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("ors geocode %q: invalid coordinate format", query)
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}

type orsDirectionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type orsSummary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Route fetches /v2/directions/{profile}/geojson and reads the first feature.
func (o *ORSProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if len(waypoints) < 2 {
		return domain.Route{}, fmt.Errorf("ors route: need at least 2 waypoints, got %d", len(waypoints))
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	body := orsDirectionsRequest{Coordinates: make([][]float64, 0, len(waypoints))}
	for _, w := range waypoints {
		body.Coordinates = append(body.Coordinates, w.CoordsToList())
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Route{}, fmt.Errorf("ors route: marshal request: %w", err)
	}

	resp, err := o.client.doWithRetry(ctx, func() (*http.Request, error) {
		return o.client.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		var he *httpStatusError
		// ORS reports unroutable points as 404 (code 2009/2010 in the body).
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			return domain.Route{}, fmt.Errorf("ors route: %s: %w", he.Body, ports.ErrNotFound)
		}
		return domain.Route{}, fmt.Errorf("ors route: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Route{}, fmt.Errorf("ors route: read response: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return domain.Route{}, fmt.Errorf("ors route: decode response: %w", err)
	}

	if len(fc.Features) == 0 {
		return domain.Route{}, fmt.Errorf("ors route: %w", ports.ErrNotFound)
	}

	first := fc.Features[0]

	var summary orsSummary
	if s, ok := first.Properties["summary"]; ok {
		b, err := json.Marshal(s)
		if err != nil {
			return domain.Route{}, fmt.Errorf("ors route: summary: %w", err)
		}
		if err := json.Unmarshal(b, &summary); err != nil {
			return domain.Route{}, fmt.Errorf("ors route: summary: %w", err)
		}
	}

	return newRoute(summary.Distance, summary.Duration, first.Geometry)
}
