package observability

import (
	"errors"
	"time"

	"github.com/boddenberg/luxe-client-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const (
	gatewayCallsName = "luxe_gateway_calls_total"
	gatewayErrsName  = "luxe_gateway_errors_total"
	viewMountsName   = "luxe_view_mounts_total"
	useCasesName     = "luxe_use_cases_total"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the ops /metrics endpoint can use it.
	Registry *prometheus.Registry

	gatewayDuration *prometheus.HistogramVec
	gatewayCalls    *prometheus.CounterVec
	gatewayErrors   *prometheus.CounterVec
	viewMounts      *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
	useCases        *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		gatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "luxe_gateway_duration_seconds",
				Help:    "Duration of backend calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gatewayCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: gatewayCallsName,
				Help: "Total backend calls by operation and outcome.",
			},
			[]string{"operation", "status"},
		),
		gatewayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: gatewayErrsName,
				Help: "Total failed backend calls by error kind.",
			},
			[]string{"kind"},
		),
		viewMounts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: viewMountsName,
				Help: "Total view mounts by view.",
			},
			[]string{"view"},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "luxe_session_events_total",
				Help: "Session lifecycle events (login, logout, restore).",
			},
			[]string{"event"},
		),
		useCases: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: useCasesName,
				Help: "Completed service use cases by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// RecordGatewayCall records one backend round trip. Cancelled calls are
// counted but not treated as errors.
func (m *Metrics) RecordGatewayCall(operation string, d time.Duration, err error) {
	m.gatewayDuration.WithLabelValues(operation).Observe(d.Seconds())

	switch {
	case err == nil:
		m.gatewayCalls.WithLabelValues(operation, "success").Inc()
	case domain.IsCanceled(err):
		m.gatewayCalls.WithLabelValues(operation, "canceled").Inc()
	default:
		m.gatewayCalls.WithLabelValues(operation, "error").Inc()
		m.gatewayErrors.WithLabelValues(domain.ErrorKind(err)).Inc()
	}
}

// IncrViewMount counts a view being mounted by the shell.
func (m *Metrics) IncrViewMount(view string) {
	m.viewMounts.WithLabelValues(view).Inc()
}

// IncrSessionEvent counts a session lifecycle event.
func (m *Metrics) IncrSessionEvent(event string) {
	m.sessionEvents.WithLabelValues(event).Inc()
}

// RecordUseCase counts one finished service call. Outcomes are success,
// canceled, rejected (validation or a backend refusal) and error.
func (m *Metrics) RecordUseCase(operation string, err error) {
	m.useCases.WithLabelValues(operation, UseCaseOutcome(err)).Inc()
}

// UseCaseOutcome is the outcome label RecordUseCase uses for err.
func UseCaseOutcome(err error) string {
	var validation *domain.ErrValidation
	switch {
	case err == nil:
		return "success"
	case domain.IsCanceled(err):
		return "canceled"
	case errors.As(err, &validation), domain.ErrorKind(err) == "request_failed":
		return "rejected"
	default:
		return "error"
	}
}

// GetGatewaySnapshot returns a snapshot suitable for the
// GET /v1/metrics/gateway ops endpoint.
func (m *Metrics) GetGatewaySnapshot() *domain.GatewayMetrics {
	snap := &domain.GatewayMetrics{
		ByOperation: map[string]int64{},
		ByErrorKind: map[string]int64{},
		ViewMounts:  map[string]int64{},
		UseCases:    map[string]map[string]int64{},
	}

	families, err := m.Registry.Gather()
	if err != nil {
		return snap
	}

	for _, mf := range families {
		switch mf.GetName() {
		case gatewayCallsName:
			for _, metric := range mf.GetMetric() {
				n := int64(counterValue(metric))
				snap.TotalCalls += n
				snap.ByOperation[labelValue(metric, "operation")] += n
				if labelValue(metric, "status") == "error" {
					snap.ErrorCount += n
				}
			}
		case gatewayErrsName:
			for _, metric := range mf.GetMetric() {
				snap.ByErrorKind[labelValue(metric, "kind")] += int64(counterValue(metric))
			}
		case useCasesName:
			for _, metric := range mf.GetMetric() {
				op := labelValue(metric, "operation")
				if snap.UseCases[op] == nil {
					snap.UseCases[op] = map[string]int64{}
				}
				snap.UseCases[op][labelValue(metric, "outcome")] += int64(counterValue(metric))
			}
		case viewMountsName:
			for _, metric := range mf.GetMetric() {
				snap.ViewMounts[labelValue(metric, "view")] += int64(counterValue(metric))
			}
		}
	}

	if snap.TotalCalls > 0 {
		snap.ErrorRate = float64(snap.ErrorCount) / float64(snap.TotalCalls)
	}
	return snap
}

func counterValue(m *dto.Metric) float64 {
	if m.GetCounter() == nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
