package bind

import "github.com/tether-go/tether/pkg/metrics"

// Metrics is the instrumentation hook for the binding layer. Fields left
// nil are replaced with no-ops on install.
type Metrics struct {
	// BindingsTotal counts binding handles created.
	BindingsTotal metrics.Counter

	// BindingsActive tracks binding handles not yet released.
	BindingsActive metrics.Gauge

	// ScopesTotal counts scope builder runs.
	ScopesTotal metrics.Counter

	// BagsClosed counts bag teardowns.
	BagsClosed metrics.Counter
}

// NopMetrics returns a Metrics with every field set to a no-op.
func NopMetrics() Metrics {
	return Metrics{
		BindingsTotal:  metrics.NopCounter(),
		BindingsActive: metrics.NopGauge(),
		ScopesTotal:    metrics.NopCounter(),
		BagsClosed:     metrics.NopCounter(),
	}
}

// met is read without synchronization on hot paths; install once at startup.
var met = NopMetrics()

// SetMetrics installs the process-wide binding metrics. Nil fields fall back
// to no-ops. Call it before bindings are created.
func SetMetrics(m Metrics) {
	if m.BindingsTotal == nil {
		m.BindingsTotal = metrics.NopCounter()
	}
	if m.BindingsActive == nil {
		m.BindingsActive = metrics.NopGauge()
	}
	if m.ScopesTotal == nil {
		m.ScopesTotal = metrics.NopCounter()
	}
	if m.BagsClosed == nil {
		m.BagsClosed = metrics.NopCounter()
	}
	met = m
}
