package routing

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/logging"
	"trip-log-service/internal/ports"
)

// CachedProvider wraps an upstream RoutingProvider with:
//   - address normalization
//   - persistent geocode caching
//   - route caching
//   - collapsing of concurrent identical geocode queries
//
// Either cache may be nil. Cache failures never fail a lookup; they are logged
// and the upstream is asked instead.
type CachedProvider struct {
	upstream ports.RoutingProvider
	geocodes ports.GeocodeCache
	routes   ports.RouteCache
	inflight singleflight.Group

	// sharedTimeout bounds a collapsed upstream geocode, which no caller's context cancels.
	sharedTimeout time.Duration
}

func NewCachedProvider(upstream ports.RoutingProvider, geocodes ports.GeocodeCache, routes ports.RouteCache) *CachedProvider {
	return &CachedProvider{
		upstream:      upstream,
		geocodes:      geocodes,
		routes:        routes,
		sharedTimeout: 30 * time.Second,
	}
}

// Normalize collapses whitespace so equivalent queries share cache keys.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RouteKey identifies an ordered waypoint list at ~1m precision.
func RouteKey(waypoints []domain.Coordinates) string {
	var b strings.Builder
	b.WriteString("route:")
	for i, w := range waypoints {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(w.Lon, 'f', 5, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(w.Lat, 'f', 5, 64))
	}
	return b.String()
}

func (c *CachedProvider) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	norm := Normalize(query)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: query must be non-empty")
	}

	logger := logging.FromContext(ctx)

	if c.geocodes != nil {
		hits, err := c.geocodes.GetMany(ctx, []string{norm})
		if err != nil {
			logging.LogError(logger, "geocode cache read failed", err, slog.String("query", norm))
		} else if coord, ok := hits[norm]; ok {
			return coord, nil
		}
	}

	// The shared lookup outlives any single caller; each caller stops waiting
	// on its own context.
	ch := c.inflight.DoChan(norm, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		return c.upstream.Geocode(shared, norm)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.Coordinates{}, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return domain.Coordinates{}, res.Err
	}
	coord := res.Val.(domain.Coordinates)

	if c.geocodes != nil {
		if err := c.geocodes.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			logging.LogError(logger, "geocode cache write failed", err, slog.String("query", norm))
		}
	}

	return coord, nil
}

func (c *CachedProvider) Route(ctx context.Context, waypoints []domain.Coordinates) (domain.Route, error) {
	key := RouteKey(waypoints)
	logger := logging.FromContext(ctx)

	if c.routes != nil {
		r, ok, err := c.routes.Get(ctx, key)
		if err != nil {
			logging.LogError(logger, "route cache read failed", err, slog.String("key", key))
		} else if ok {
			return r, nil
		}
	}

	r, err := c.upstream.Route(ctx, waypoints)
	if err != nil {
		return domain.Route{}, err
	}

	if c.routes != nil {
		if err := c.routes.Put(ctx, key, r); err != nil {
			logging.LogError(logger, "route cache write failed", err, slog.String("key", key))
		}
	}

	return r, nil
}
