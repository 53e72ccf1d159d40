package handler

import (
	"fmt"
	"net/http"

	"github.com/sumzhq/sumz-portal/internal/metrics"
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
//
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "sumz_api_keys_created_total %d\n", snap.KeysCreated)
	writeMetric(w, "sumz_api_keys_regenerated_total %d\n", snap.KeysRegenerated)
	writeMetric(w, "sumz_api_keys_deleted_total %d\n", snap.KeysDeleted)
	writeMetric(w, "sumz_api_key_quota_rejections_total %d\n", snap.QuotaRejections)

	writeMetric(w, "sumz_signups_total %d\n", snap.Signups)
	writeMetric(w, "sumz_logins_total{status=\"success\"} %d\n", snap.Logins)
	writeMetric(w, "sumz_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
