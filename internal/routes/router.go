package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"aerometrics/fleetdw/internal/api"
	"aerometrics/fleetdw/internal/config"
	"aerometrics/fleetdw/internal/logging"
	"aerometrics/fleetdw/internal/metrics"
	"aerometrics/fleetdw/internal/middleware"
)

// RegisterRoutes builds the ops router: health, load trigger, run history.
// The /metrics endpoint is mounted outside this router (see cmd/server).
func RegisterRoutes(
	cfg *config.Config,
	warehouse *sqlx.DB,
	lookup *gorm.DB,
	handlers *api.Handlers,
	metricsReg *metrics.MetricsRegistry,
	upSince time.Time,
) http.Handler {

	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(warehouse, lookup, upSince))

	// API v1 routes, guarded by the static API key
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.APIKeyMiddleware(cfg.Server.APIKey))

		v1.Post("/loads", handlers.TriggerLoad())
		v1.Get("/runs/last", handlers.LastRun())
	})

	return r
}
