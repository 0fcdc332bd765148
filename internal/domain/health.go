package domain

// ============================================================
// Ops API Responses
// ============================================================

// HealthStatus is returned by GET /healthz on the ops server.
type HealthStatus struct {
	Status  string `json:"status"`  // healthy, degraded
	Circuit string `json:"circuit"` // closed, half-open, open
}

// GatewayMetrics is returned by GET /v1/metrics/gateway.
type GatewayMetrics struct {
	TotalCalls  int64            `json:"totalCalls"`
	ErrorCount  int64            `json:"errorCount"`
	ErrorRate   float64          `json:"errorRate"`
	ByOperation map[string]int64 `json:"byOperation"`
	ByErrorKind map[string]int64 `json:"byErrorKind"`
	ViewMounts  map[string]int64 `json:"viewMounts"`

	// UseCases counts service calls by operation, then outcome.
	UseCases map[string]map[string]int64 `json:"useCases"`
}
