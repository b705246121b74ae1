package bind

import "github.com/tether-go/tether/pkg/rx"

// Bind subscribes sink to src and returns the handle that releases the
// binding.
//
// Sources projected from value cells replay the current value and never
// terminate, so the sink's OnError and OnComplete stay silent for them. Raw
// streams may error or complete: terminal events reach the sink unconverted
// and close this handle without affecting sibling subscriptions to the same
// source. Sanitize upstream errors before binding a raw stream into state
// that must stay alive.
func Bind[T any](src rx.Observable[T], sink rx.Observer[T]) rx.Subscription {
	met.BindingsTotal.Inc()
	met.BindingsActive.Inc()
	return rx.WithTeardown(src.Subscribe(sink), met.BindingsActive.Dec)
}

// BindFunc binds a plain function as the sink. Terminal events of raw
// streams are not visible through fn; the handle's Closed reports them.
func BindFunc[T any](src rx.Observable[T], fn func(T)) rx.Subscription {
	return Bind(src, rx.NewObserver(fn, nil, nil))
}
