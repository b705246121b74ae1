package bind

import "github.com/tether-go/tether/pkg/rx"

// ReplayValue is a readable reactive cell. It always holds a value, the
// current value is readable synchronously at any time, and the projected
// channel replays the current value to each new subscriber before delivering
// subsequent writes.
//
// Writes notify subscribers synchronously on the writer's goroutine, in
// subscription order; the cell itself never hops threads. Bindings that need
// delivery on a particular scheduler apply the hop on their own side.
//
// A ReplayValue never errors and never completes. Failures belong in
// dedicated state, for example a separate error cell, never in the stream.
type ReplayValue[T any] struct {
	subject *rx.ReplaySubject[T]
	equal   func(T, T) bool
}

// NewReplayValue creates a cell seeded with initial. There is no empty
// state: a cell is readable from the moment it exists.
func NewReplayValue[T any](initial T) *ReplayValue[T] {
	return &ReplayValue[T]{subject: rx.NewReplaySubject(initial)}
}

// Read returns the current value without subscribing.
func (v *ReplayValue[T]) Read() T {
	return v.subject.Value()
}

// Write replaces the current value and synchronously notifies subscribers.
// Every write notifies, including writes of an equal value; duplicate
// suppression is a binding concern, not a cell concern.
func (v *ReplayValue[T]) Write(value T) {
	v.subject.Next(value)
}

// Update atomically applies fn to the current value and writes the result.
func (v *ReplayValue[T]) Update(fn func(T) T) {
	v.subject.Update(fn)
}

// Changes returns the replaying projection of the cell: each subscriber
// receives the current value immediately, then every subsequent write.
func (v *ReplayValue[T]) Changes() rx.Observable[T] {
	return v.subject
}

// WithEquals sets the equality function two-way bindings use to recognize
// echoes of this cell's values. Set it at construction time, before the
// cell is bound.
func (v *ReplayValue[T]) WithEquals(eq func(T, T) bool) *ReplayValue[T] {
	v.equal = eq
	return v
}

// MutableValue is a ReplayValue whose value may also be written back from
// outside its owner, making it usable as either endpoint of a two-way
// binding. Accept and Write are one operation under two names: Accept is
// the spelling used where external input feeds back into the cell.
type MutableValue[T any] struct {
	ReplayValue[T]
}

// NewMutableValue creates a two-way capable cell seeded with initial.
func NewMutableValue[T any](initial T) *MutableValue[T] {
	return &MutableValue[T]{ReplayValue[T]{subject: rx.NewReplaySubject(initial)}}
}

// Accept writes a value arriving from outside the cell's owner, typically a
// bound control or a peer cell. A Read immediately after Accept observes
// the accepted value.
func (m *MutableValue[T]) Accept(value T) {
	m.subject.Next(value)
}

// Channel returns the bidirectional projection: its subscribe side replays
// and follows the cell, its Next side is Accept. Both sides address the
// same underlying state, so there is exactly one current value.
func (m *MutableValue[T]) Channel() *rx.ReplaySubject[T] {
	return m.subject
}

// WithEquals sets the equality function two-way bindings use for this cell.
func (m *MutableValue[T]) WithEquals(eq func(T, T) bool) *MutableValue[T] {
	m.equal = eq
	return m
}
