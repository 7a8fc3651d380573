// Package metrics holds the Prometheus instruments for VIN decoding and
// exposes them over HTTP in the Prometheus text exposition format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBuckets are the decode latency buckets (in seconds).
var DefaultBuckets = []float64{0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.01}

// OutcomeOK is the outcome label for a successful decode.
const OutcomeOK = "ok"

// Metrics provides observability for the decode path. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Decode outcomes by source ("http", "nats", "cli") and error code
	// ("ok", "invalid_length", "unknown_manufacturer").
	DecodeOutcome *prometheus.CounterVec

	// Single decode latency by source.
	DecodeLatency *prometheus.HistogramVec

	// Number of VINs per batch request.
	BatchSize prometheus.Histogram

	// Requests rejected by the rate limiter.
	RateLimited prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates a Metrics instance registered on reg. A nil reg gets a fresh
// registry with the Go runtime and process collectors attached.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	f := promauto.With(reg)
	return &Metrics{
		DecodeOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vin_decode_outcomes_total",
			Help: "Total VIN decode attempts by source and outcome",
		}, []string{"source", "outcome"}),

		DecodeLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vin_decode_duration_seconds",
			Help:    "Duration of a single VIN decode",
			Buckets: DefaultBuckets,
		}, []string{"source"}),

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "vin_decode_batch_size",
			Help:    "Number of VINs submitted per batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "vin_http_rate_limited_total",
			Help: "Total HTTP requests rejected by the rate limiter",
		}),

		gatherer: reg,
	}
}

// IncrementOutcome records one decode outcome. An empty outcome counts as OutcomeOK.
func (m *Metrics) IncrementOutcome(source, outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = OutcomeOK
	}
	m.DecodeOutcome.WithLabelValues(source, outcome).Inc()
}

// ObserveDecodeLatency records the duration of one decode.
func (m *Metrics) ObserveDecodeLatency(source string, d time.Duration) {
	if m != nil {
		m.DecodeLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}

// IncrementRateLimited counts one rejected request.
func (m *Metrics) IncrementRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// Handler returns an http.Handler serving the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
