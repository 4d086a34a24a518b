package obs

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks application metrics using atomic counters. Upstream
// failures are counted by class: errors the EAN service reported in its
// envelope vs transport-level failures.
type Metrics struct {
	searches        atomic.Int64
	apiErrors       atomic.Int64
	transportErrors atomic.Int64
	logger          *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncSearches increments the total search counter.
func (m *Metrics) IncSearches() {
	m.searches.Add(1)
}

// IncAPIErrors increments the counter of EAN-reported errors.
func (m *Metrics) IncAPIErrors() {
	m.apiErrors.Add(1)
}

// IncTransportErrors increments the counter of transport failures.
func (m *Metrics) IncTransportErrors() {
	m.transportErrors.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Searches:        m.searches.Load(),
		APIErrors:       m.apiErrors.Load(),
		TransportErrors: m.transportErrors.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Searches        int64
	APIErrors       int64
	TransportErrors int64
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.Snapshot()

		counters := []struct {
			name  string
			help  string
			value int64
		}{
			{"searches_total", "Total number of hotel searches issued upstream", snapshot.Searches},
			{"ean_api_errors_total", "Total number of errors reported by the EAN service", snapshot.APIErrors},
			{"transport_errors_total", "Total number of transport-level upstream failures", snapshot.TransportErrors},
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		for _, c := range counters {
			if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value); err != nil {
				m.logger.Error("failed to write metrics", "error", err)
				return
			}
		}
	}
}
