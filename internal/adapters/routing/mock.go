package routing

import (
	"context"
	"fmt"
	"sync"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/ports"
)

// MockProvider answers from fixed tables. Unknown queries and waypoint lists
// yield ports.ErrNotFound. Calls are counted per query for cache tests.
type MockProvider struct {
	Places map[string]domain.Coordinates
	Routes map[string]domain.Route
	// Err, when set, is returned from every call.
	Err error

	mu    sync.Mutex
	calls map[string]int
}

func NewMockProvider(places map[string]domain.Coordinates) *MockProvider {
	return &MockProvider{
		Places: places,
		Routes: map[string]domain.Route{},
		calls:  map[string]int{},
	}
}

// AddRoute registers the route returned for exactly these waypoints.
func (p *MockProvider) AddRoute(waypoints []domain.Coordinates, r domain.Route) {
	p.Routes[RouteKey(waypoints)] = r
}

func (p *MockProvider) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	p.count("geocode:" + query)
	if p.Err != nil {
		return domain.Coordinates{}, p.Err
	}

	c, ok := p.Places[query]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocode %q: %w", query, ports.ErrNotFound)
	}
	return c, nil
}

func (p *MockProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error) {
	key := RouteKey(waypoints)
	p.count(key)
	if p.Err != nil {
		return domain.Route{}, p.Err
	}

	r, ok := p.Routes[key]
	if !ok {
		return domain.Route{}, fmt.Errorf("mock route: %w", ports.ErrNotFound)
	}
	return r, nil
}

// Calls reports how often a geocode query ("geocode:<q>") or a route key was requested.
func (p *MockProvider) Calls(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[key]
}

func (p *MockProvider) count(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = map[string]int{}
	}
	p.calls[key]++
}
