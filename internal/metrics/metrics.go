// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package metrics provides Prometheus metrics collection for observability.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format
// and cover the HTTP surface, the search pipeline, the interval store, the
// result cache, and write conflicts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Search Pipeline Metrics
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Total number of search queries executed",
		},
		[]string{"centered", "hours_filtered"}, // "true"/"false"
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_result_count",
			Help:    "Number of spots returned per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	// Interval Store Metrics
	WindowMerges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hours_window_merges_total",
			Help: "Total number of windows absorbed during interval merges",
		},
	)

	WindowsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hours_windows_inserted_total",
			Help: "Total number of availability window inserts",
		},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total number of result cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total number of result cache misses",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_evictions_total",
			Help: "Total number of result cache evictions (mutation or TTL)",
		},
	)

	// Concurrency Metrics
	WriteConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "write_conflicts_total",
			Help: "Total number of writes rejected for a stale version token",
		},
	)

	WritesMissingToken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "writes_missing_token_total",
			Help: "Total number of writes rejected for a missing If-Match header",
		},
	)

	// Event Bus Metrics
	MutationEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mutation_events_published_total",
			Help: "Total number of spot mutation events published",
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSearch records one executed search and its result count.
func RecordSearch(centered, hoursFiltered bool, results int) {
	SearchesTotal.WithLabelValues(boolLabel(centered), boolLabel(hoursFiltered)).Inc()
	SearchResults.Observe(float64(results))
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
