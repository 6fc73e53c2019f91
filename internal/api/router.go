package api

import (
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"trip-log-service/internal/api/handlers"
	"trip-log-service/internal/ports"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Geocoder   ports.Geocoder
	Directions ports.DirectionsProvider
	Logger     *slog.Logger

	// RateLimitRPS is the per-client request rate; 0 or less disables limiting.
	RateLimitRPS int
	CORSOrigin   string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	tripHandler := &handlers.TripHandler{Geocoder: d.Geocoder, Directions: d.Directions}

	router.HandlerFunc(http.MethodGet, "/health", handlers.Health)
	router.HandlerFunc(http.MethodPost, "/v1/trips", tripHandler.Plan)
	router.HandlerFunc(http.MethodGet, "/v1/eld", handlers.ELD)
	router.HandlerFunc(http.MethodGet, "/v1/eld/panels/:day/chart.png", handlers.Chart)

	limiter := newIPRateLimiter(d.RateLimitRPS)

	var h http.Handler = router
	h = gzipMiddleware(h)
	h = limiter.middleware(h)
	h = corsMiddleware(d.CORSOrigin, h)
	h = loggingMiddleware(h)
	h = requestContextMiddleware(logger, h)
	return h
}
