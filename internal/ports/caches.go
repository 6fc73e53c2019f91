package ports

import (
	"context"

	"trip-log-service/internal/domain"
)

// GeocodeCache memoizes normalized address -> coordinates answers.
type GeocodeCache interface {
	// Return the cached subset of addresses; misses are simply absent.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// RouteCache memoizes routes by a waypoint key.
type RouteCache interface {
	// ok is false on a miss.
	Get(ctx context.Context, key string) (route domain.Route, ok bool, err error)
	Put(ctx context.Context, key string, route domain.Route) error
}
