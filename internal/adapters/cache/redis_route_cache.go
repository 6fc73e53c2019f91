package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

// RedisRouteCache stores routes as JSON with a TTL. Traffic-aware routes go
// stale quickly, so entries are never kept without expiry.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisRouteCache{Client: client, TTL: ttl, Prefix: "trip-log:"}
}

type cachedRoute struct {
	DistanceMeters  int         `json:"distance_meters"`
	DurationSeconds int         `json:"duration_seconds"`
	Geometry        [][]float64 `json:"geometry"`
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.redis.Get")(&err)

	if c.Client == nil {
		return domain.Route{}, false, errors.New("route cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, c.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache %q: %w", key, err)
	}

	var cr cachedRoute
	if err := json.Unmarshal(raw, &cr); err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache %q: decode: %w", key, err)
	}

	r := domain.Route{
		DistanceMeters:  cr.DistanceMeters,
		DurationSeconds: cr.DurationSeconds,
		Geometry:        make([]domain.Coordinates, 0, len(cr.Geometry)),
	}
	for _, p := range cr.Geometry {
		if len(p) != 2 {
			return domain.Route{}, false, fmt.Errorf("get route cache %q: invalid point %v", key, p)
		}
		r.Geometry = append(r.Geometry, domain.Coordinates{Lon: p[0], Lat: p[1]})
	}

	return r, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, r domain.Route) error {
	if c.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	cr := cachedRoute{
		DistanceMeters:  r.DistanceMeters,
		DurationSeconds: r.DurationSeconds,
		Geometry:        make([][]float64, 0, len(r.Geometry)),
	}
	for _, p := range r.Geometry {
		cr.Geometry = append(cr.Geometry, p.CoordsToList())
	}

	raw, err := json.Marshal(cr)
	if err != nil {
		return fmt.Errorf("put route cache %q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, c.Prefix+key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put route cache %q: %w", key, err)
	}
	return nil
}
