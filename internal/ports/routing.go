package ports

import (
	"context"
	"errors"

	"trip-log-service/internal/domain"
)

// ErrNotFound reports that the upstream service answered but had no match:
// no geocoding feature for a query, or no route through the waypoints.
var ErrNotFound = errors.New("not found")

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Return the best match for query, or ErrNotFound.
	Geocode(ctx context.Context, query string) (domain.Coordinates, error)
}

// Contract for fetching a driving route through ordered waypoints.
type DirectionsProvider interface {
	// Return the first route through waypoints, or ErrNotFound.
	Route(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error)
}

// RoutingProvider is a single upstream that offers both lookups.
type RoutingProvider interface {
	Geocoder
	DirectionsProvider
}
