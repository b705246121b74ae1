package bind

import "github.com/tether-go/tether/pkg/rx"

// ActionChannel is a fire-and-forget event stream for one-shot commands:
// show a dialog, play a sound, navigate. It holds no current value and
// replays nothing; triggers that happen while nobody subscribes are dropped.
type ActionChannel[T any] struct {
	subject *rx.Subject[T]
}

// NewActionChannel creates an action channel.
func NewActionChannel[T any]() *ActionChannel[T] {
	return &ActionChannel[T]{subject: rx.NewSubject[T]()}
}

// Trigger multicasts payload to the current subscribers, synchronously, in
// subscription order. With no subscribers it is a no-op.
func (c *ActionChannel[T]) Trigger(payload T) {
	c.subject.Next(payload)
}

// Events returns the non-replaying projection: subscribers observe only
// triggers that happen after they subscribe.
func (c *ActionChannel[T]) Events() rx.Observable[T] {
	return c.subject
}

// NoArgActionChannel is an ActionChannel for events that carry no payload.
type NoArgActionChannel struct {
	inner *ActionChannel[struct{}]
}

// NewNoArgActionChannel creates a payload-free action channel.
func NewNoArgActionChannel() *NoArgActionChannel {
	return &NoArgActionChannel{inner: NewActionChannel[struct{}]()}
}

// Trigger multicasts the event to the current subscribers.
func (c *NoArgActionChannel) Trigger() {
	c.inner.Trigger(struct{}{})
}

// Events returns the non-replaying projection.
func (c *NoArgActionChannel) Events() rx.Observable[struct{}] {
	return c.inner.Events()
}
