// Package api serves surf reports over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/logging"
	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/spots"
)

// DefaultRequestTimeout bounds each request, including upstream CWA calls.
const DefaultRequestTimeout = 30 * time.Second

// SpotFinder is the spot lookup surface the handlers use.
type SpotFinder interface {
	List() ([]models.Spot, error)
	Search(query string) ([]models.Spot, error)
	Nearest(lat, lon float64) (*spots.SpotDistance, error)
	Resolve(ctx context.Context, query string) (*spots.Resolution, error)
	Ping() error
}

// ReportBuilder builds reports for one spot or a batch of spots.
type ReportBuilder interface {
	BuildSpotReport(ctx context.Context, spot models.Spot) (*report.SpotReport, error)
	BuildReports(ctx context.Context, spots []models.Spot) ([]*report.SpotReport, error)
}

// Server holds the handler dependencies and the router.
type Server struct {
	spots    SpotFinder
	reports  ReportBuilder
	logger   *zap.Logger
	validate *validator.Validate
	timeout  time.Duration

	router *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewServer builds the router with its middleware chain and routes.
func NewServer(finder SpotFinder, reports ReportBuilder, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		spots:    finder,
		reports:  reports,
		logger:   logging.OrNop(logger),
		validate: validator.New(),
		timeout:  DefaultRequestTimeout,
		router:   chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mountRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// mountRoutes registers middleware outermost first, then the routes.
func (s *Server) mountRoutes() {
	s.router.Use(Recoverer(s.logger))
	s.router.Use(RequestID)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(middleware.Timeout(s.timeout))

	s.router.NotFound(s.handleNotFound)

	s.router.Get("/", s.handleIndex)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/spots", s.handleListSpots)
		r.Get("/spots/search", s.handleSearchSpots)
		r.Get("/assess", s.handleAssess)
		// nearby is registered before the parameter route so it is never
		// treated as a spot name.
		r.Get("/weather", s.handleAllWeather)
		r.Get("/weather/nearby", s.handleNearbyWeather)
		r.Get("/weather/{spot}", s.handleSpotWeather)
	})
}
