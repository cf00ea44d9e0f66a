package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the warehouse loader
type MetricsRegistry struct {
	// HTTP Metrics (ops surface)
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Load Metrics
	RecordsProcessedTotal prometheus.CounterVec
	RecordsRejectedTotal  prometheus.CounterVec
	DimensionRowsCreated  prometheus.CounterVec
	FactRowsTotal         prometheus.CounterVec
	LoadDuration          prometheus.Histogram
	LoadsTotal            prometheus.CounterVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetdw_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),

		RecordsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_records_processed_total",
				Help: "Total cleaned source records consumed by load runs, by record type",
			},
			[]string{"record_type"},
		),
		RecordsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_records_rejected_total",
				Help: "Total records rejected during validation, by reason code",
			},
			[]string{"reason"},
		),
		DimensionRowsCreated: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_dimension_rows_created_total",
				Help: "Dimension rows created lazily during loads, by dimension",
			},
			[]string{"dimension"},
		),
		FactRowsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_fact_rows_total",
				Help: "Fact rows written, by fact table and insert/update outcome",
			},
			[]string{"fact", "op"},
		),
		LoadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fleetdw_load_duration_seconds",
				Help:    "End-to-end load run duration in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		LoadsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_loads_total",
				Help: "Total load runs by terminal status",
			},
			[]string{"status"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fleetdw_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_cache_hits_total",
				Help: "Total lookup cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fleetdw_cache_misses_total",
				Help: "Total lookup cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
	}
}
