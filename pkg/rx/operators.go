package rx

import (
	"sync"
	"sync/atomic"
)

// Map transforms each value of src with fn. Terminal events pass through
// unchanged.
func Map[T, U any](src Observable[T], fn func(T) U) Observable[U] {
	return ObservableFunc[U](func(o Observer[U]) Subscription {
		return src.Subscribe(NewObserver(
			func(v T) { o.OnNext(fn(v)) },
			o.OnError,
			o.OnComplete,
		))
	})
}

// Filter forwards only the values of src for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Subscription {
		return src.Subscribe(NewObserver(
			func(v T) {
				if keep(v) {
					o.OnNext(v)
				}
			},
			o.OnError,
			o.OnComplete,
		))
	})
}

// Skip drops the first n values for each subscriber, then forwards the rest.
func Skip[T any](src Observable[T], n int) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Subscription {
		seen := 0
		return src.Subscribe(NewObserver(
			func(v T) {
				if seen < n {
					seen++
					return
				}
				o.OnNext(v)
			},
			o.OnError,
			o.OnComplete,
		))
	})
}

// DistinctUntilChanged drops values equal to the previously forwarded one.
// A nil eq falls back to DefaultEquals.
func DistinctUntilChanged[T any](src Observable[T], eq func(T, T) bool) Observable[T] {
	if eq == nil {
		eq = DefaultEquals[T]
	}
	return ObservableFunc[T](func(o Observer[T]) Subscription {
		var last T
		have := false
		return src.Subscribe(NewObserver(
			func(v T) {
				if have && eq(last, v) {
					return
				}
				last, have = v, true
				o.OnNext(v)
			},
			o.OnError,
			o.OnComplete,
		))
	})
}

// ObserveOn re-delivers every event of src through the scheduler, preserving
// order when the scheduler is serialized. Events still in flight when the
// handle is released are discarded. The handle closes on explicit release
// only; with an asynchronous scheduler there is no synchronous moment at
// which upstream termination could be reflected in it.
func ObserveOn[T any](src Observable[T], s Scheduler) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Subscription {
		var released atomic.Bool
		inner := src.Subscribe(NewObserver(
			func(v T) {
				s.Schedule(func() {
					if !released.Load() {
						o.OnNext(v)
					}
				})
			},
			func(err error) {
				s.Schedule(func() {
					if !released.Load() {
						o.OnError(err)
					}
				})
			},
			func() {
				s.Schedule(func() {
					if !released.Load() {
						o.OnComplete()
					}
				})
			},
		))
		return NewSubscription(func() {
			released.Store(true)
			inner.Unsubscribe()
		})
	})
}

// Create builds an Observable from a register function. For each subscriber,
// register receives a guarded observer and returns the teardown to run when
// the subscription ends. The guard makes the producer side safe to write:
// events after a terminal or after release are discarded, the teardown runs
// exactly once, and a terminal event raised while register is still running
// is honored.
func Create[T any](register func(Observer[T]) (teardown func())) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) Subscription {
		sub := &createSub[T]{observer: o}
		sub.setTeardown(register(sub))
		return sub
	})
}

// createSub is both the guarded observer handed to a Create producer and the
// subscription handed to the consumer.
type createSub[T any] struct {
	mu       sync.Mutex
	observer Observer[T]
	closed   bool
	teardown func()
}

func (s *createSub[T]) OnNext(value T) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.observer.OnNext(value)
	}
}

func (s *createSub[T]) OnError(err error) {
	if s.close() {
		s.observer.OnError(err)
	}
}

func (s *createSub[T]) OnComplete() {
	if s.close() {
		s.observer.OnComplete()
	}
}

func (s *createSub[T]) Unsubscribe() {
	s.close()
}

func (s *createSub[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close marks the subscription closed and runs the teardown once. Returns
// true on the first close.
func (s *createSub[T]) close() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	td := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	if td != nil {
		td()
	}
	return true
}

func (s *createSub[T]) setTeardown(td func()) {
	s.mu.Lock()
	if !s.closed {
		s.teardown = td
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Terminated while register was still running; release now.
	if td != nil {
		td()
	}
}
