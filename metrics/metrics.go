package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal tracks handled HTTP requests per method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hdv_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hdv_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// SlowQueriesTotal tracks database queries over the slow-query threshold
	SlowQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hdv_db_slow_queries_total",
			Help: "Total number of slow database queries",
		},
	)

	// PriceEntriesInserted tracks price rows written by seeding and simulation
	PriceEntriesInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hdv_price_entries_inserted_total",
			Help: "Total number of price entries inserted",
		},
	)
)
