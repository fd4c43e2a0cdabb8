// Package metrics exposes Prometheus counters for tweet generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the use case layer reports into.
type Recorder interface {
	RecordGeneration(outcome string)
	RecordUpstreamStatus(statusCode int)
	RecordUpstreamLatency(d time.Duration)
	RecordDeletion(found bool)
}

// Generation outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
	OutcomeUpstreamError = "upstream_error"
	OutcomeStorageError  = "storage_error"
)

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	generations     *prometheus.CounterVec
	upstreamStatus  *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
	deletions       *prometheus.CounterVec
}

// NewCollector registers the collectors on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tweetgen_generations_total",
			Help: "Tweet generation requests by outcome.",
		}, []string{"outcome"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tweetgen_upstream_responses_total",
			Help: "Inference API responses by HTTP status code.",
		}, []string{"status_code"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tweetgen_upstream_latency_seconds",
			Help:    "Inference API call latency in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tweetgen_deletions_total",
			Help: "Tweet deletion requests by result.",
		}, []string{"found"}),
	}

	reg.MustRegister(
		c.generations,
		c.upstreamStatus,
		c.upstreamLatency,
		c.deletions,
	)

	return c
}

func (c *Collector) RecordGeneration(outcome string) {
	c.generations.WithLabelValues(outcome).Inc()
}

// RecordUpstreamStatus counts a status code; 0 stands for a transport failure.
func (c *Collector) RecordUpstreamStatus(statusCode int) {
	c.upstreamStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordUpstreamLatency(d time.Duration) {
	c.upstreamLatency.Observe(d.Seconds())
}

func (c *Collector) RecordDeletion(found bool) {
	c.deletions.WithLabelValues(strconv.FormatBool(found)).Inc()
}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Useful where metrics are not wired.
type Nop struct{}

func (Nop) RecordGeneration(string)             {}
func (Nop) RecordUpstreamStatus(int)            {}
func (Nop) RecordUpstreamLatency(time.Duration) {}
func (Nop) RecordDeletion(bool)                 {}
