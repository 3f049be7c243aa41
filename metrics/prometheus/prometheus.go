// Package prometheus provides Prometheus implementation of transcoder metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/viant/transcoder/metrics"
)

// Default histogram buckets for mapping latency (in seconds).
var defaultBuckets = []float64{
	.00001, .000025, .00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .1,
}

// timer wraps a Prometheus observer to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

type conversionMetrics struct {
	matchedTotal   *prometheus.CounterVec
	unmatchedTotal prometheus.Counter
	faultsTotal    prometheus.Counter
	mapDuration    prometheus.Histogram
}

// New creates Prometheus metrics registered with reg
func New(reg prometheus.Registerer) metrics.Metrics {
	m := &conversionMetrics{
		matchedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transcoder_conversions_matched_total",
			Help: "Total number of conversions produced per strategy",
		}, []string{"strategy"}),

		unmatchedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transcoder_conversions_unmatched_total",
			Help: "Total number of conversions no strategy produced",
		}),

		faultsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transcoder_conversions_faults_total",
			Help: "Total number of failed conversions",
		}),

		mapDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transcoder_map_duration_seconds",
			Help:    "Top level mapping time in seconds",
			Buckets: defaultBuckets,
		}),
	}

	reg.MustRegister(
		m.matchedTotal,
		m.unmatchedTotal,
		m.faultsTotal,
		m.mapDuration,
	)
	return m
}

func (m *conversionMetrics) Matched(strategy string) {
	m.matchedTotal.WithLabelValues(strategy).Inc()
}

func (m *conversionMetrics) Unmatched() {
	m.unmatchedTotal.Inc()
}

func (m *conversionMetrics) Fault() {
	m.faultsTotal.Inc()
}

func (m *conversionMetrics) MapDuration() metrics.Timer {
	return &timer{h: m.mapDuration, start: time.Now()}
}

var _ metrics.Metrics = (*conversionMetrics)(nil)
