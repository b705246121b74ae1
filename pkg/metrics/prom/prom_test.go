package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tether-go/tether/pkg/bind"
	"github.com/tether-go/tether/pkg/metrics"
)

// gatherValues flattens the registry into name -> sample value.
func gatherValues(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return values
}

func TestNewCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCounter(reg, prometheus.CounterOpts{Name: "test_total", Help: "test"})

	c.Inc()
	c.Add(2)

	values := gatherValues(t, reg)
	assert.Equal(t, 3.0, values["test_total"])
}

func TestNewGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := NewGauge(reg, prometheus.GaugeOpts{Name: "test_active", Help: "test"})

	g.Set(5)
	g.Inc()
	g.Dec()
	g.Add(-2)

	values := gatherValues(t, reg)
	assert.Equal(t, 3.0, values["test_active"])
}

func TestNewHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHistogram(reg, prometheus.HistogramOpts{Name: "test_seconds", Help: "test"})

	h.Observe(0.01)
	h.Observe(0.5)

	values := gatherValues(t, reg)
	assert.Equal(t, 2.0, values["test_seconds"])
}

func TestHistogramDrivesTimer(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHistogram(reg, prometheus.HistogramOpts{Name: "op_seconds", Help: "test"})

	timer := metrics.StartTimer(h)
	timer.ObserveDuration()

	values := gatherValues(t, reg)
	assert.Equal(t, 1.0, values["op_seconds"])
}

func TestBindMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := BindMetrics(reg)

	require.NotNil(t, m.BindingsTotal)
	require.NotNil(t, m.BindingsActive)
	require.NotNil(t, m.ScopesTotal)
	require.NotNil(t, m.BagsClosed)

	m.BindingsTotal.Inc()
	m.BindingsActive.Inc()
	m.BindingsActive.Dec()
	m.ScopesTotal.Inc()
	m.BagsClosed.Inc()

	values := gatherValues(t, reg)
	assert.Equal(t, 1.0, values["tether_bind_bindings_total"])
	assert.Equal(t, 0.0, values["tether_bind_bindings_active"])
	assert.Equal(t, 1.0, values["tether_bind_scopes_total"])
	assert.Equal(t, 1.0, values["tether_bind_bags_closed_total"])
}

func TestBindMetricsInstalled(t *testing.T) {
	reg := prometheus.NewRegistry()
	bind.SetMetrics(BindMetrics(reg))
	t.Cleanup(func() { bind.SetMetrics(bind.Metrics{}) })

	cell := bind.NewIntValue(0)
	sub := bind.BindFunc(cell.Changes(), func(int) {})
	sub.Unsubscribe()

	values := gatherValues(t, reg)
	assert.Equal(t, 1.0, values["tether_bind_bindings_total"])
	assert.Equal(t, 0.0, values["tether_bind_bindings_active"])
}
