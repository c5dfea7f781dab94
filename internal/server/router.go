package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/essaylens/internal/logging"
	"github.com/abhisek/essaylens/internal/metrics"
)

// RouterConfig holds the dependencies of the route tree.
type RouterConfig struct {
	Analyzer        Analyzer
	Logger          logging.Logger
	Metrics         *metrics.Metrics
	Version         string
	AnalysisTimeout time.Duration
	MaxBodyBytes    int64
}

// NewRouter wires middleware, health, metrics and the v1 API.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogging(cfg.Logger, "/healthz", "/metrics"))
	r.Use(chimw.Recoverer)

	h := &handlers{
		analyzer: cfg.Analyzer,
		log:      cfg.Logger,
		version:  cfg.Version,
		timeout:  cfg.AnalysisTimeout,
		maxBody:  cfg.MaxBodyBytes,
		started:  time.Now(),
	}

	r.Get("/healthz", h.health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/v1", func(api chi.Router) {
		api.Post("/analyze", h.analyze)
	})
	return r
}
