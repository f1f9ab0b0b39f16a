package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the instrumentation for the identify endpoint. A fresh
// registry per server keeps tests isolated from each other.
type metrics struct {
	registry         *prometheus.Registry
	identifyRequests *prometheus.CounterVec
	identifyDuration prometheus.Histogram
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &metrics{
		registry: registry,
		identifyRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reelid",
			Name:      "identify_requests_total",
			Help:      "Identification requests by outcome.",
		}, []string{"outcome"}),
		identifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reelid",
			Name:      "identify_duration_seconds",
			Help:      "Wall time of identification requests.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
