package bind

import "testing"

type countingCounter struct{ n int }

func (c *countingCounter) Inc()              { c.n++ }
func (c *countingCounter) Add(delta float64) { c.n += int(delta) }

type countingGauge struct{ v int }

func (g *countingGauge) Set(value float64) { g.v = int(value) }
func (g *countingGauge) Inc()              { g.v++ }
func (g *countingGauge) Dec()              { g.v-- }
func (g *countingGauge) Add(delta float64) { g.v += int(delta) }

func TestMetricsWiring(t *testing.T) {
	total := &countingCounter{}
	active := &countingGauge{}
	scopes := &countingCounter{}
	bags := &countingCounter{}
	SetMetrics(Metrics{
		BindingsTotal:  total,
		BindingsActive: active,
		ScopesTotal:    scopes,
		BagsClosed:     bags,
	})
	t.Cleanup(func() { SetMetrics(Metrics{}) })

	cell := NewIntValue(0)
	sub := BindFunc(cell.Changes(), func(int) {})
	if total.n != 1 || active.v != 1 {
		t.Errorf("expected 1 binding created and active, got total=%d active=%d", total.n, active.v)
	}

	sub.Unsubscribe()
	if active.v != 0 {
		t.Errorf("expected active gauge back to 0, got %d", active.v)
	}
	sub.Unsubscribe()
	if active.v != 0 {
		t.Errorf("expected repeated release not to decrement again, got %d", active.v)
	}

	owner := &testOwner{}
	Scope(owner, func(c *Collector) {
		c.Add(BindFunc(cell.Changes(), func(int) {}))
	})
	if scopes.n != 1 {
		t.Errorf("expected 1 scope run, got %d", scopes.n)
	}
	if total.n != 2 || active.v != 1 {
		t.Errorf("expected scoped binding counted, got total=%d active=%d", total.n, active.v)
	}

	owner.Bag().Close()
	if bags.n != 1 {
		t.Errorf("expected 1 bag closed, got %d", bags.n)
	}
	if active.v != 0 {
		t.Errorf("expected bag close to release the scoped binding, got active=%d", active.v)
	}
}

func TestSetMetricsNilFields(t *testing.T) {
	// Partially filled metrics must not leave nil hooks behind.
	total := &countingCounter{}
	SetMetrics(Metrics{BindingsTotal: total})
	t.Cleanup(func() { SetMetrics(Metrics{}) })

	cell := NewStringValue("x")
	sub := BindFunc(cell.Changes(), func(string) {})
	sub.Unsubscribe()

	owner := &testOwner{}
	Scope(owner, func(c *Collector) {})
	owner.Bag().Close()

	if total.n != 1 {
		t.Errorf("expected the one installed counter to record, got %d", total.n)
	}
}
