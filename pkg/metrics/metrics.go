// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestBatchesTotal counts bulk uploads by outcome: clean, with_errors or rejected.
	IngestBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wtsplinks",
			Name:      "ingest_batches_total",
			Help:      "Bulk upload batches by outcome",
		},
		[]string{"outcome", "source"},
	)

	// IngestRecordsTotal counts individual records by result.
	IngestRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wtsplinks",
			Name:      "ingest_records_total",
			Help:      "Bulk upload records by result",
		},
		[]string{"result"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "wtsplinks",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of bulk upload batches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wtsplinks",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wtsplinks",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordBatch records one finished or rejected ingestion batch.
func RecordBatch(outcome, source string, succeeded, failed int, seconds float64) {
	IngestBatchesTotal.WithLabelValues(outcome, source).Inc()
	IngestRecordsTotal.WithLabelValues("succeeded").Add(float64(succeeded))
	IngestRecordsTotal.WithLabelValues("failed").Add(float64(failed))
	IngestDuration.Observe(seconds)
}
