package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/travel-planner/internal/middleware"
)

// RouterConfig carries the knobs NewRouter needs from config.Config.
type RouterConfig struct {
	Logger         *slog.Logger
	CORSOrigins    []string
	IdentityHeader string
	MaxBodyBytes   int64
}

// NewRouter builds the full HTTP handler: global middleware, the public
// health/docs/metrics routes, and the identity-protected /api routes.
// main.go and the handler tests both use it so tests exercise real routing.
//
// Middleware order: RequestID → RealIP → SlogLogger → Metrics → Recoverer → CORS.
func NewRouter(s *Server, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.IdentityHeader == "" {
		cfg.IdentityHeader = middleware.DefaultIdentityHeader
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(cfg.Logger))
	r.Use(middleware.NewMetricsHandler())
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins, cfg.IdentityHeader))

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewIdentityHandler(cfg.IdentityHeader))
		r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/export", s.ExportTrips)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Get("/summary", s.GetTripSummary)

				r.Get("/itineraries", s.ListItineraries)
				r.Post("/itineraries", s.CreateItinerary)
				r.Get("/expenses", s.ListExpenses)
				r.Post("/expenses", s.CreateExpense)
			})
		})
	})

	return r
}
