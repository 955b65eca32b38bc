// Package metrics holds the Prometheus collectors for the data layer, the
// HTTP layer and the process, plus the background sampler that refreshes the
// gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database Metrics
var (
	// DBQueryTotal counts executed statements by kind (SELECT/INSERT/UPDATE/DELETE/DDL)
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_total",
			Help: "Total DB queries executed",
		},
		[]string{"query_type"},
	)

	// DBQueryDuration tracks statement latency in seconds by kind
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "DB query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"query_type"},
	)

	// DBQueryErrors counts statements that failed and were rolled back
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total DB queries that failed",
		},
		[]string{"query_type"},
	)

	DBActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_active_connections",
			Help: "Active DB connections",
		},
	)

	DBIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Idle DB connections held by the pool",
		},
	)
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// Process Metrics
var (
	ProcessUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_uptime_seconds",
			Help: "API uptime in seconds",
		},
	)

	CPUUsagePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_cpu_usage_percent",
			Help: "CPU usage percentage",
		},
	)

	MemoryUsagePercent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_memory_usage_percent",
			Help: "Memory usage percentage",
		},
	)
)
