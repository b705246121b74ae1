package bind

import "github.com/tether-go/tether/pkg/rx"

// Owner is anything with a binding lifetime. A view-model typically embeds
// Lifetime to satisfy it.
type Owner interface {
	// Bag returns the owner's bag. Every call must return the same Bag;
	// bindings registered through it live exactly as long as the owner.
	Bag() *Bag
}

// Lifetime is the default Owner implementation, meant to be embedded:
//
//	type LoginVM struct {
//	    bind.Lifetime
//	    Username *bind.MutableValue[string]
//	}
//
// The zero value is ready to use. Teardown is explicit: whoever created the
// owner calls Close when the owner's life ends. There is no ambient
// registry doing it behind the scenes, and Close is safe to call twice.
type Lifetime struct {
	bag Bag
}

// Bag returns the lifetime's bag.
func (l *Lifetime) Bag() *Bag {
	return &l.bag
}

// Scope runs build and registers the resulting composite with this
// lifetime. See Scope.
func (l *Lifetime) Scope(build func(*Collector)) *rx.Composite {
	return Scope(l, build)
}

// Close releases every binding registered with this lifetime. Idempotent.
func (l *Lifetime) Close() {
	l.bag.Close()
}
