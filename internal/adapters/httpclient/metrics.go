package httpclient

import (
	"github.com/prometheus/client_golang/prometheus"
)

type clientMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

func newClientMetrics(registerer prometheus.Registerer) *clientMetrics {
	m := &clientMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Subsystem: "http_client",
				Name:      "requests_total",
				Help:      "Outbound API requests by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "storefront",
				Subsystem: "http_client",
				Name:      "request_duration_seconds",
				Help:      "Outbound API request duration including retries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "storefront",
				Subsystem: "http_client",
				Name:      "retries_total",
				Help:      "Retried outbound API attempts by method",
			},
			[]string{"method"},
		),
	}
	if registerer != nil {
		registerer.MustRegister(m.requests, m.duration, m.retries)
	}
	return m
}
