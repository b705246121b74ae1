package bind

import "github.com/tether-go/tether/pkg/rx"

// Collector gathers the handles created during one Scope run.
type Collector struct {
	subs []rx.Subscription
}

// Add registers handles with the scope under construction. Nil handles are
// ignored so conditional branches can pass results through unguarded.
func (c *Collector) Add(subs ...rx.Subscription) {
	for _, s := range subs {
		if s != nil {
			c.subs = append(c.subs, s)
		}
	}
}

// Scope runs build immediately, aggregates every collected handle into one
// composite, registers the composite with the owner's bag and returns it.
//
// The builder body is plain Go: use if for conditional bindings and for
// over a collection for repeated ones. Collecting nothing is legal and
// yields a composite whose release is a no-op. Each Scope call is
// independent; the collector holds no state between runs, and repeated
// calls against the same owner put separate composites in the same bag.
func Scope(o Owner, build func(*Collector)) *rx.Composite {
	c := &Collector{}
	build(c)

	composite := rx.NewComposite(c.subs...)
	o.Bag().Add(composite)
	met.ScopesTotal.Inc()
	return composite
}
