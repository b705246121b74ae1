package rx

import (
	"sync"
	"sync/atomic"
)

// Subscription is the handle returned by Subscribe. Unsubscribe is
// idempotent. Closed reports whether the subscription has been released,
// either explicitly or because the source terminated.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// teardownSub runs its teardown functions exactly once, on the first
// Unsubscribe.
type teardownSub struct {
	closed atomic.Bool
	fns    []func()
}

// NewSubscription returns a Subscription that runs the given functions
// exactly once when released. With no functions it is an inert handle.
func NewSubscription(fns ...func()) Subscription {
	return &teardownSub{fns: fns}
}

func (s *teardownSub) Unsubscribe() {
	if s.closed.Swap(true) {
		// Already released
		return
	}
	for _, fn := range s.fns {
		if fn != nil {
			fn()
		}
	}
}

func (s *teardownSub) Closed() bool {
	return s.closed.Load()
}

// WithTeardown wraps a subscription so fn runs exactly once when the handle
// is released. A nil fn is ignored.
func WithTeardown(s Subscription, fn func()) Subscription {
	return &wrappedSub{inner: s, fn: fn}
}

type wrappedSub struct {
	inner Subscription
	once  sync.Once
	fn    func()
}

func (s *wrappedSub) Unsubscribe() {
	s.inner.Unsubscribe()
	if s.fn != nil {
		s.once.Do(s.fn)
	}
}

func (s *wrappedSub) Closed() bool {
	return s.inner.Closed()
}

// Composite aggregates subscriptions into a single handle. Releasing the
// composite releases every child exactly once; children added after the
// composite was released are released immediately.
type Composite struct {
	mu     sync.Mutex
	subs   []Subscription
	closed atomic.Bool
}

// NewComposite creates a composite holding the given subscriptions.
func NewComposite(subs ...Subscription) *Composite {
	c := &Composite{}
	c.Add(subs...)
	return c
}

// Add registers subscriptions with the composite. Nil entries are ignored.
func (c *Composite) Add(subs ...Subscription) {
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		for _, s := range subs {
			if s != nil {
				s.Unsubscribe()
			}
		}
		return
	}
	for _, s := range subs {
		if s != nil {
			c.subs = append(c.subs, s)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of registered subscriptions.
func (c *Composite) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Unsubscribe releases every child, newest first. Idempotent.
func (c *Composite) Unsubscribe() {
	if c.closed.Swap(true) {
		// Already released
		return
	}
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
}

// Closed reports whether the composite has been released.
func (c *Composite) Closed() bool {
	return c.closed.Load()
}
