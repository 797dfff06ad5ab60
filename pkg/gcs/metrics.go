package gcs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector records request counts and latencies of the client.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetricsCollector creates the collectors and registers them with reg. A
// nil reg leaves them unregistered.
func NewMetricsCollector(reg prometheus.Registerer) (*MetricsCollector, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcs",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of API requests sent, partitioned by status code and method.",
	}, []string{"code", "method"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gcs",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Histogram of latencies for API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"code", "method"})

	if reg != nil {
		for _, c := range []prometheus.Collector{requests, latency} {
			err := reg.Register(c)
			if err != nil {
				return nil, fmt.Errorf("registering client metrics: %w", err)
			}
		}
	}

	return &MetricsCollector{requests: requests, latency: latency}, nil
}

// Requests exposes the request counter, for tests and custom exporters.
func (m *MetricsCollector) Requests() *prometheus.CounterVec { return m.requests }

// Latency exposes the latency histogram.
func (m *MetricsCollector) Latency() *prometheus.HistogramVec { return m.latency }

// MetricsResponseInterceptor observes every exchange. Transport failures are
// counted under code "error".
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		code := "error"
		if resp.Error == nil {
			code = strconv.Itoa(resp.StatusCode)
		}

		collector.requests.WithLabelValues(code, req.Method).Inc()
		collector.latency.WithLabelValues(code, req.Method).Observe(resp.Duration.Seconds())

		return nil
	}
}
