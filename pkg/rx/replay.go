package rx

import "sync"

// ReplaySubject is a hot multicast stream that retains the latest value. A
// new subscriber receives the current value during Subscribe, then every
// subsequent one. The current value is also readable synchronously through
// Value, with no subscription involved.
//
// A ReplaySubject carries state, not a computation: it has no terminal
// events. The type offers no Error or Complete, so a stream projected from
// one can never fail; subscriptions stay live until explicitly released.
//
// Writes from multiple goroutines are each safe, but their relative delivery
// order is whatever the goroutines race to; callers that need a total order
// route writes through one serializing point such as a Loop.
type ReplaySubject[T any] struct {
	mu    sync.RWMutex
	value T

	list subscribers[T]
}

// NewReplaySubject creates a subject seeded with initial. There is no empty
// state: Value is answerable from the moment the subject exists.
func NewReplaySubject[T any](initial T) *ReplaySubject[T] {
	return &ReplaySubject[T]{value: initial}
}

// Value returns the current value without subscribing.
func (s *ReplaySubject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Next stores value and notifies subscribers in subscription order, on the
// caller's goroutine. The stored value is visible to Value before any
// observer runs.
func (s *ReplaySubject[T]) Next(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.list.deliver(value)
}

// Update atomically applies fn to the current value, stores the result and
// notifies subscribers. Returns the new value.
func (s *ReplaySubject[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	value := fn(s.value)
	s.value = value
	s.mu.Unlock()

	s.list.deliver(value)
	return value
}

// Subscribe registers the observer and immediately delivers the current
// value to it, before Subscribe returns.
func (s *ReplaySubject[T]) Subscribe(o Observer[T]) Subscription {
	sub := s.list.add(o)

	// Replay outside any lock; a re-entrant write from the observer must not
	// deadlock.
	o.OnNext(s.Value())
	return sub
}
