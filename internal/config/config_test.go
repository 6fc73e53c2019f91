package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFallback(t *testing.T) {
	t.Setenv("TRIP_TEST_KEY", "")
	assert.Equal(t, "fallback", Get("TRIP_TEST_KEY", "fallback"))

	t.Setenv("TRIP_TEST_KEY", "  value ")
	assert.Equal(t, "value", Get("TRIP_TEST_KEY", "fallback"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "mapbox")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ROUTE_CACHE_TTL", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.CacheDriver)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 15*time.Minute, cfg.RouteCacheTTL)
	assert.Equal(t, 5, cfg.RateLimitRPS)
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "ors")
	t.Setenv("ORS_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORS_API_KEY")
}

func TestLoadRejectsPostgresWithoutURL(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "mapbox")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("CACHE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("ROUTING_PROVIDER", "mapbox")
	t.Setenv("MAPBOX_TOKEN", "pk.test")
	t.Setenv("CACHE_DRIVER", "none")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
}
