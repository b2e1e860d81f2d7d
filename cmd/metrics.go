package cmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Server metrics, exposed on GET /metrics.
var (
	projectionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "compchart",
		Name:      "projection_requests_total",
		Help:      "Projection requests by outcome.",
	}, []string{"outcome"}) // ok, invalid_plan, upstream, error

	projectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "compchart",
		Name:      "projection_duration_seconds",
		Help:      "Wall-clock latency of projection requests.",
		Buckets:   prometheus.DefBuckets,
	})
)
