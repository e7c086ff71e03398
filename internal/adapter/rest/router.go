// Package rest exposes the plan gateway and the affordability engine over JSON HTTP.
package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

// PlanStore defines the gateway operations the handlers need.
type PlanStore interface {
	Load(ctx context.Context, key domain.PlanKey) (domain.PlanSnapshot, error)
	Save(ctx context.Context, key domain.PlanKey, req domain.SaveRequest) error
}

// Config wires the router.
type Config struct {
	Plans  PlanStore
	Logger *slog.Logger

	// APIToken protects /api routes when set
	APIToken string

	// AllowedOrigins lists CORS origins; "*" allows any
	AllowedOrigins []string

	// Health reports storage readiness for /healthz; nil means always healthy
	Health func(ctx context.Context) error

	// Gatherer serves /metrics; nil uses the default Prometheus registry
	Gatherer prometheus.Gatherer

	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	h := &Handler{plans: cfg.Plans, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors(cfg.AllowedOrigins))

	r.Get("/healthz", healthHandler(cfg.Health))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(api chi.Router) {
		api.Use(chimw.Timeout(timeout))
		api.Use(requireToken(cfg.APIToken))

		api.Get("/retirement-data", h.handleLoad)
		api.Post("/retirement-data", h.handleSave)
		api.Get("/plan", h.handlePlan)
		api.Post("/calculations", h.handleCalculate)
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
