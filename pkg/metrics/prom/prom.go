// Package prom implements the metrics interfaces on top of Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tether-go/tether/pkg/bind"
	"github.com/tether-go/tether/pkg/metrics"
)

// DefaultBuckets are the histogram buckets used when none are configured,
// sized for delivery latencies in seconds.
var DefaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

type counter struct {
	c prometheus.Counter
}

// NewCounter registers a Prometheus counter with reg and returns it behind
// the metrics interface.
func NewCounter(reg prometheus.Registerer, opts prometheus.CounterOpts) metrics.Counter {
	return &counter{c: promauto.With(reg).NewCounter(opts)}
}

func (w *counter) Inc()              { w.c.Inc() }
func (w *counter) Add(delta float64) { w.c.Add(delta) }

type gauge struct {
	g prometheus.Gauge
}

// NewGauge registers a Prometheus gauge with reg and returns it behind the
// metrics interface.
func NewGauge(reg prometheus.Registerer, opts prometheus.GaugeOpts) metrics.Gauge {
	return &gauge{g: promauto.With(reg).NewGauge(opts)}
}

func (w *gauge) Set(value float64) { w.g.Set(value) }
func (w *gauge) Inc()              { w.g.Inc() }
func (w *gauge) Dec()              { w.g.Dec() }
func (w *gauge) Add(delta float64) { w.g.Add(delta) }

type histogram struct {
	h prometheus.Histogram
}

// NewHistogram registers a Prometheus histogram with reg and returns it
// behind the metrics interface. DefaultBuckets apply when opts.Buckets is
// nil.
func NewHistogram(reg prometheus.Registerer, opts prometheus.HistogramOpts) metrics.Histogram {
	if opts.Buckets == nil {
		opts.Buckets = DefaultBuckets
	}
	return &histogram{h: promauto.With(reg).NewHistogram(opts)}
}

func (w *histogram) Observe(value float64) { w.h.Observe(value) }

// BindMetrics assembles the binding-layer metric set under the tether
// namespace and registers it with reg. Install the result with
// bind.SetMetrics.
func BindMetrics(reg prometheus.Registerer) bind.Metrics {
	return bind.Metrics{
		BindingsTotal: NewCounter(reg, prometheus.CounterOpts{
			Namespace: "tether",
			Subsystem: "bind",
			Name:      "bindings_total",
			Help:      "Total number of binding handles created",
		}),
		BindingsActive: NewGauge(reg, prometheus.GaugeOpts{
			Namespace: "tether",
			Subsystem: "bind",
			Name:      "bindings_active",
			Help:      "Number of binding handles not yet released",
		}),
		ScopesTotal: NewCounter(reg, prometheus.CounterOpts{
			Namespace: "tether",
			Subsystem: "bind",
			Name:      "scopes_total",
			Help:      "Total number of scope builder runs",
		}),
		BagsClosed: NewCounter(reg, prometheus.CounterOpts{
			Namespace: "tether",
			Subsystem: "bind",
			Name:      "bags_closed_total",
			Help:      "Total number of bags closed",
		}),
	}
}

var (
	_ metrics.Counter   = (*counter)(nil)
	_ metrics.Gauge     = (*gauge)(nil)
	_ metrics.Histogram = (*histogram)(nil)
)
