/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry holds the process metrics and tracing setup.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP requests by method, route, and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skald_api_requests_total",
		Help: "Total HTTP API requests.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skald_api_request_duration_seconds",
		Help:    "HTTP API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections gauges in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skald_api_active_connections",
		Help: "In-flight HTTP API requests.",
	})

	// RadioRequestsTotal counts radio generations by station type.
	RadioRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skald_radio_requests_total",
		Help: "Total radio generation requests.",
	}, []string{"station"})

	// RadioRequestDuration observes radio generation latency.
	RadioRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skald_radio_request_duration_seconds",
		Help:    "Radio generation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"station"})

	// RadioFallbackTracks counts tracks contributed per fallback stage.
	RadioFallbackTracks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skald_radio_fallback_tracks_total",
		Help: "Tracks contributed to similarity results by each fallback stage.",
	}, []string{"stage"})
)

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
