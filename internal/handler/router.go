// Package handler serves the local ops endpoints: health, readiness and
// metrics for the running client.
package handler

import (
	"net/http"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/boddenberg/luxe-client-go/internal/infra/observability"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// NewRouter creates the ops router. cb is the gateway's circuit breaker;
// it may be nil when the gateway runs without one.
func NewRouter(cb *gobreaker.CircuitBreaker, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(cb))
	r.Get("/readyz", readyzHandler(cb))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/gateway", gatewayMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Health: GET /healthz
// ============================================================

func healthzHandler(cb *gobreaker.CircuitBreaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		circuit := circuitState(cb)
		status := "healthy"
		if circuit != gobreaker.StateClosed.String() && cb != nil {
			status = "degraded"
		}
		writeJSON(w, http.StatusOK, domain.HealthStatus{Status: status, Circuit: circuit})
	}
}

// readyzHandler reports not ready while the breaker is open, since every
// backend call would fail fast.
func readyzHandler(cb *gobreaker.CircuitBreaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cb != nil && cb.State() == gobreaker.StateOpen {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// ============================================================
// Metrics: GET /v1/metrics/gateway
// ============================================================

func gatewayMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetGatewaySnapshot())
	}
}

func circuitState(cb *gobreaker.CircuitBreaker) string {
	if cb == nil {
		return "disabled"
	}
	return cb.State().String()
}
