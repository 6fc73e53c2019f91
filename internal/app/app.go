// Package app assembles the routing provider and its caches from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-log-service/internal/adapters/cache"
	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/config"
	"trip-log-service/internal/logging"
	"trip-log-service/internal/platform/db"
	"trip-log-service/internal/ports"
)

// App holds the wired provider and the resources it owns.
type App struct {
	Provider *routing.CachedProvider

	logger  *slog.Logger
	closers []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

// Build connects the configured geocode cache, route cache and upstream provider.
// On error, anything already opened is closed.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *App, err error) {
	a := &App{logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	upstream, err := NewUpstream(cfg)
	if err != nil {
		return nil, err
	}

	var geocodes ports.GeocodeCache
	if cfg.CacheDriver != "none" {
		sqlDB, gc, err := OpenGeocodeCache(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, namedCloser{"close_geocode_db", sqlDB})
		geocodes = gc

		if cfg.SeedPath != "" {
			n, err := cache.SeedFromJSON(ctx, gc, cfg.SeedPath)
			if err != nil {
				return nil, fmt.Errorf("build app: %w", err)
			}
			logging.LogOperation(logger, "geocode cache seeded", slog.Int("addresses", n))
		}
	}

	var routes ports.RouteCache
	if cfg.RedisURL != "" {
		client, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, namedCloser{"close_redis", client})
		routes = cache.NewRedisRouteCache(client, cfg.RouteCacheTTL)
	}

	a.Provider = routing.NewCachedProvider(upstream, geocodes, routes)
	logging.LogOperation(logger, "provider ready",
		slog.String("provider", cfg.RoutingProvider),
		slog.String("cache_driver", cfg.CacheDriver),
		slog.Bool("route_cache", routes != nil))

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		logging.SafeCloseWithLogging(a.closers[i].c, a.logger, a.closers[i].name)
	}
	a.closers = nil
}

// NewUpstream returns the live provider selected by ROUTING_PROVIDER.
func NewUpstream(cfg config.Config) (ports.RoutingProvider, error) {
	switch cfg.RoutingProvider {
	case "mapbox":
		return routing.NewMapboxProvider(cfg.MapboxToken)
	case "ors":
		return routing.NewORSProvider(cfg.ORSAPIKey)
	}
	return nil, fmt.Errorf("new upstream: unknown provider %q", cfg.RoutingProvider)
}

// OpenGeocodeCache opens the database for CACHE_DRIVER and ensures its schema.
// The caller owns the returned *sql.DB.
func OpenGeocodeCache(ctx context.Context, cfg config.Config) (*sql.DB, ports.GeocodeCache, error) {
	var (
		sqlDB   *sql.DB
		dialect cache.Dialect
		err     error
	)

	switch cfg.CacheDriver {
	case "sqlite":
		sqlDB, err = db.OpenSQLite(cfg.DBPath)
		dialect = cache.DialectSQLite
	case "postgres":
		sqlDB, err = db.OpenPostgres(cfg.DatabaseURL)
		dialect = cache.DialectPostgres
	default:
		return nil, nil, fmt.Errorf("open geocode cache: unsupported driver %q", cfg.CacheDriver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open geocode cache: %w", err)
	}

	if err := cache.InitSchema(ctx, sqlDB, dialect); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("open geocode cache: %w", err)
	}

	if dialect == cache.DialectPostgres {
		return sqlDB, cache.NewSQLGeocodeCache(sqlDB), nil
	}
	return sqlDB, cache.NewSqliteGeocodeCache(sqlDB), nil
}

func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("open redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("open redis: ping: %w", err)
	}

	return client, nil
}
