// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog refresh attempts",
		},
		[]string{"result"},
	)

	CatalogRefreshErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_errors_total",
			Help: "Catalog refresh failures by error code",
		},
		[]string{"error_code"},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_properties",
			Help: "Number of properties in the current catalog snapshot",
		},
	)

	CatalogRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_dropped_total",
			Help: "Feed rows dropped during normalization (missing id or title)",
		},
	)

	MatchRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of match scoring requests",
		},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "match_duration_seconds",
			Help: "Duration of match scoring in seconds",
		},
	)

	InquiriesSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiries_submitted_total",
			Help: "Inquiry submissions by result",
		},
		[]string{"result"},
	)
)
