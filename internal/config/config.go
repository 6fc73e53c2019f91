package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the server and the CLI.
// Values come from the process environment, optionally populated from a .env file.
type Config struct {
	Port     string
	LogLevel slog.Level

	RoutingProvider string
	MapboxToken     string
	ORSAPIKey       string

	CacheDriver   string
	DBPath        string
	DatabaseURL   string
	SeedPath      string
	RedisURL      string
	RouteCacheTTL time.Duration

	RateLimitRPS int
	CORSOrigin   string
}

// LoadDotEnv reads .env into the environment if present.
// A missing file is not an error; the caller may log the returned flag.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment and validates provider credentials.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		RoutingProvider: strings.ToLower(Get("ROUTING_PROVIDER", "mapbox")),
		MapboxToken:     Get("MAPBOX_TOKEN", ""),
		ORSAPIKey:       Get("ORS_API_KEY", ""),
		CacheDriver:     strings.ToLower(Get("CACHE_DRIVER", "sqlite")),
		DBPath:          Get("DB_PATH", "data/app.db"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		SeedPath:        Get("SEED_PATH", ""),
		RedisURL:        Get("REDIS_URL", ""),
		CORSOrigin:      Get("CORS_ORIGIN", "*"),
	}

	level, err := parseLevel(Get("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg.LogLevel = level

	ttl, err := time.ParseDuration(Get("ROUTE_CACHE_TTL", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: ROUTE_CACHE_TTL: %w", err)
	}
	cfg.RouteCacheTTL = ttl

	rps, err := strconv.Atoi(Get("RATE_LIMIT_RPS", "5"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_RPS: %w", err)
	}
	cfg.RateLimitRPS = rps

	switch cfg.RoutingProvider {
	case "mapbox":
		if cfg.MapboxToken == "" {
			return Config{}, fmt.Errorf("load config: MAPBOX_TOKEN is required for provider %q", cfg.RoutingProvider)
		}
	case "ors":
		if cfg.ORSAPIKey == "" {
			return Config{}, fmt.Errorf("load config: ORS_API_KEY is required for provider %q", cfg.RoutingProvider)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown ROUTING_PROVIDER %q", cfg.RoutingProvider)
	}

	switch cfg.CacheDriver {
	case "sqlite", "none":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for cache driver %q", cfg.CacheDriver)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return l, nil
}
