package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "views_"

var (
	registerOnce sync.Once

	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
)

// Init registers the request metrics.
func Init() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "requests_total",
				Help: "Total number of requests by method, endpoint and status",
			},
			[]string{"method", "endpoint", "http_status"},
		)
		requestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "request_latency_seconds",
				Help:    "Request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		)

		prometheus.MustRegister(requestsTotal, requestLatency)
	})
}

// ObserveRequest records one handled request.
func ObserveRequest(method, endpoint string, status int, duration time.Duration) {
	if requestsTotal != nil {
		requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	}
	if requestLatency != nil {
		requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	}
}
