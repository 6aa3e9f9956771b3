package handler

import (
	"fmt"
	"net/http"

	"github.com/usermgmt/usermgmt/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "usermgmt_api_requests_total %d\n", snap.Requests)
	writeMetric(w, "usermgmt_api_responses_total{outcome=%q} %d\n", metrics.OutcomeSuccess, snap.Successes)
	writeMetric(w, "usermgmt_api_responses_total{outcome=%q} %d\n", metrics.OutcomeClientError, snap.ClientErrors)
	writeMetric(w, "usermgmt_api_responses_total{outcome=%q} %d\n", metrics.OutcomeServerError, snap.ServerErrors)
	writeMetric(w, "usermgmt_api_responses_total{outcome=%q} %d\n", metrics.OutcomeTransportError, snap.TransportErrors)
	writeMetric(w, "usermgmt_api_responses_total{outcome=%q} %d\n", metrics.OutcomeDecodeError, snap.DecodeErrors)
	writeMetric(w, "usermgmt_api_duration_seconds_count %d\n", snap.DurationCount)
	writeMetric(w, "usermgmt_api_duration_seconds_sum %.6f\n", float64(snap.DurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
