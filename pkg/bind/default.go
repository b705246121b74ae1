package bind

import "github.com/tether-go/tether/pkg/rx"

// Defaulted adapts a cell holding an optional value (a pointer) to the
// non-optional surface bindings and controls expect. Reads substitute the
// default for absent values; writes wrap the value back into a pointer. The
// default is computed lazily, only when an absent value is actually
// observed, so an expensive default costs nothing while real values flow.
//
// Defaulted implements Control, which is how an optional-valued cell plugs
// into a two-way binding with a non-optional one:
//
//	opt := bind.NewMutableValue[*string](nil)
//	cell := bind.NewMutableValue("fallback")
//	bind.BindControl(cell, bind.WithDefault(opt, func() string { return "fallback" }))
type Defaulted[T any] struct {
	src *MutableValue[*T]
	def func() T
}

// WithDefault adapts src so absent values read as def().
func WithDefault[T any](src *MutableValue[*T], def func() T) *Defaulted[T] {
	return &Defaulted[T]{src: src, def: def}
}

// Read returns the current value, substituting the default when absent.
func (d *Defaulted[T]) Read() T {
	return d.resolve(d.src.Read())
}

// SetValue writes a present value through to the underlying cell.
func (d *Defaulted[T]) SetValue(value T) {
	d.src.Accept(&value)
}

// Changes returns the replaying projection with absent values substituted.
func (d *Defaulted[T]) Changes() rx.Observable[T] {
	return rx.Map(d.src.Changes(), d.resolve)
}

func (d *Defaulted[T]) resolve(p *T) T {
	if p == nil {
		return d.def()
	}
	return *p
}
