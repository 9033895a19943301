package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/alexander-presign/internal/metrics"
)

// Pinger reports backend health. *keystore.Keystore implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterConfig contains the dependencies for the HTTP router.
type RouterConfig struct {
	Presign *PresignHandler
	Keys    *KeysHandler
	Health  Pinger
	Metrics *metrics.Metrics

	// MetricsPath is where the Prometheus handler is mounted; empty
	// disables the endpoint.
	MetricsPath string

	Logger zerolog.Logger
}

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recoverer(cfg.Logger))
	r.Use(Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
	}

	r.Get("/health", handleHealth(cfg.Health))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/presign", cfg.Presign.HandlePresign)
		if cfg.Keys != nil {
			r.Get("/keys", cfg.Keys.HandleList)
		}
	})

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics.Handler())
	}

	return r
}

// handleHealth reports service and keystore health.
func handleHealth(pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}
