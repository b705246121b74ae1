package rx

// Observer receives events from an Observable.
//
// OnNext delivers the next value. OnError and OnComplete are terminal: once
// either has been called, no further events are delivered on that
// subscription and its handle reports Closed.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// funcObserver adapts plain callbacks to the Observer interface.
type funcObserver[T any] struct {
	next     func(T)
	err      func(error)
	complete func()
}

func (o *funcObserver[T]) OnNext(value T) {
	if o.next != nil {
		o.next(value)
	}
}

func (o *funcObserver[T]) OnError(err error) {
	if o.err != nil {
		o.err(err)
	}
}

func (o *funcObserver[T]) OnComplete() {
	if o.complete != nil {
		o.complete()
	}
}

// NewObserver builds an Observer from callbacks. Any callback may be nil, in
// which case the corresponding event is ignored.
func NewObserver[T any](next func(T), err func(error), complete func()) Observer[T] {
	return &funcObserver[T]{next: next, err: err, complete: complete}
}

// Observable is a multicast stream of values.
type Observable[T any] interface {
	// Subscribe registers the observer and returns the handle that detaches
	// it. Whether the observer receives a value immediately depends on the
	// source: replaying sources deliver their current value during Subscribe.
	Subscribe(o Observer[T]) Subscription
}

// ObservableFunc adapts a subscribe function to the Observable interface.
type ObservableFunc[T any] func(Observer[T]) Subscription

// Subscribe calls fn(o).
func (fn ObservableFunc[T]) Subscribe(o Observer[T]) Subscription {
	return fn(o)
}
