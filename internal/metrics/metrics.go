package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_center_admin",
			Name:      "api_requests_total",
			Help:      "Backend API requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beauty_center_admin",
			Name:      "api_request_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	viewRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_center_admin",
			Name:      "view_refreshes_total",
			Help:      "Table view refreshes by view name.",
		},
		[]string{"view"},
	)

	exportDownloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beauty_center_admin",
			Name:      "export_downloads_total",
			Help:      "Report downloads by report kind.",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, viewRefreshes, exportDownloads)
	})
}

// ObserveRequest records one backend call.
func ObserveRequest(operation, outcome string, elapsed time.Duration) {
	apiRequests.WithLabelValues(operation, outcome).Inc()
	apiDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// IncViewRefresh counts a table refresh.
func IncViewRefresh(view string) {
	viewRefreshes.WithLabelValues(view).Inc()
}

// IncExportDownload counts a downloaded report.
func IncExportDownload(kind string) {
	exportDownloads.WithLabelValues(kind).Inc()
}
