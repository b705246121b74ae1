package bind

import (
	"sync"
	"sync/atomic"

	"github.com/tether-go/tether/pkg/rx"
)

// Bag collects binding handles that share one lifetime. The zero value is
// ready to use. Identity matters: everything registered with the same Bag
// is released by the same Close, so an owner keeps exactly one Bag and
// hands out pointers to it.
type Bag struct {
	mu     sync.Mutex
	subs   []rx.Subscription
	closed atomic.Bool
}

// Add registers handles with the bag. Adding to a closed bag releases the
// handles immediately instead; nothing registers anywhere after teardown.
func (b *Bag) Add(subs ...rx.Subscription) {
	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		for _, s := range subs {
			if s != nil {
				s.Unsubscribe()
			}
		}
		return
	}
	for _, s := range subs {
		if s != nil {
			b.subs = append(b.subs, s)
		}
	}
	b.mu.Unlock()
}

// Len returns the number of registered handles.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Closed reports whether the bag has been closed.
func (b *Bag) Closed() bool {
	return b.closed.Load()
}

// Close releases every registered handle, newest first, exactly once.
// Further calls are no-ops, and handles are themselves idempotent, so a
// handle also released individually is not released twice in effect.
func (b *Bag) Close() {
	if b.closed.Swap(true) {
		// Already closed
		return
	}
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
	met.BagsClosed.Inc()
}
