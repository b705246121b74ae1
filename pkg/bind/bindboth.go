package bind

import (
	"sync"
	"sync/atomic"

	"github.com/tether-go/tether/pkg/rx"
)

// Control is the contract of an externally controlled state endpoint: a UI
// widget wrapper, a device knob, any peer that pushes its own changes and
// accepts programmatic updates. Changes may or may not replay the current
// state on subscribe; BindControl compensates either way.
type Control[T any] interface {
	Changes() rx.Observable[T]
	SetValue(value T)
}

// BothOptions configures two-way bindings. The zero value selects the
// shared delivery loop and the cells' equality.
type BothOptions struct {
	// Scheduler carries both directions of the binding. Every two-way
	// binding that can form a cycle must share one serialized scheduler.
	// Defaults to Delivery().
	Scheduler rx.Scheduler
}

func mergeBoth(opts []BothOptions) BothOptions {
	var o BothOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Scheduler == nil {
		o.Scheduler = Delivery()
	}
	return o
}

// BindBoth keeps two cells equal in both directions.
//
// The left cell leads: its current value is pushed to the right cell when
// the binding is created, and the right cell's initial replay is skipped.
// From then on a write to either cell reaches the other through an
// asynchronous hop on the binding's scheduler, never on the writer's stack.
// The notification a cell raises while the binding itself is writing that
// cell is an echo, not a change, and is not forwarded back. Every genuine
// write is stamped from one clock and a hop arriving at a cell that already
// holds a newer stamp is stale and dropped, so writes racing in from both
// sides settle on the newest one. A value the target already holds is
// dropped on arrival; a burst from one side crosses intact, one hop per
// write.
//
// The returned composite releases both directions together, and releasing
// it twice is a no-op.
func BindBoth[T any](left, right *MutableValue[T], opts ...BothOptions) *rx.Composite {
	o := mergeBoth(opts)
	eq := pickEquals(left.equal, right.equal)

	var clock atomic.Uint64
	var leftVer, rightVer atomic.Uint64
	// applyingLeft is raised while the right-to-left direction writes the
	// left cell, so the opposite direction can tell the resulting
	// notification from a caller's write. applyingRight mirrors it.
	var applyingLeft, applyingRight atomic.Bool

	leftToRight := &direction[T]{
		target:   right,
		eq:       eq,
		sched:    o.Scheduler,
		clock:    &clock,
		srcVer:   &leftVer,
		dstVer:   &rightVer,
		muted:    &applyingLeft,
		applying: &applyingRight,
	}
	rightToLeft := &direction[T]{
		target:   left,
		eq:       eq,
		sched:    o.Scheduler,
		clock:    &clock,
		srcVer:   &rightVer,
		dstVer:   &leftVer,
		muted:    &applyingRight,
		applying: &applyingLeft,
	}

	leftToRight.sub.setInner(left.Changes().Subscribe(rx.NewObserver(leftToRight.observe, nil, nil)))
	rightToLeft.sub.setInner(rx.Skip[T](right.Changes(), 1).Subscribe(rx.NewObserver(rightToLeft.observe, nil, nil)))

	met.BindingsTotal.Inc()
	met.BindingsActive.Inc()
	return rx.NewComposite(&leftToRight.sub, &rightToLeft.sub,
		rx.NewSubscription(met.BindingsActive.Dec))
}

// direction is one half of a two-way binding: it stamps genuine changes of
// its source cell and applies them to the target through the scheduler hop.
type direction[T any] struct {
	sub      hopSub
	target   *MutableValue[T]
	eq       func(T, T) bool
	sched    rx.Scheduler
	clock    *atomic.Uint64
	srcVer   *atomic.Uint64
	dstVer   *atomic.Uint64
	muted    *atomic.Bool
	applying *atomic.Bool
}

func (d *direction[T]) observe(v T) {
	if d.muted.Load() {
		return
	}
	stamp := d.clock.Add(1)
	d.srcVer.Store(stamp)
	d.sched.Schedule(func() { d.apply(v, stamp) })
}

func (d *direction[T]) apply(v T, stamp uint64) {
	if d.sub.Closed() {
		return
	}
	if stamp <= d.dstVer.Load() {
		return
	}
	d.dstVer.Store(stamp)
	if d.eq(d.target.Read(), v) {
		return
	}
	d.applying.Store(true)
	defer d.applying.Store(false)
	d.target.Accept(v)
}

// BindControl keeps a cell and an external control in sync.
//
// The cell leads: its current value reaches the control first, through the
// hop. The control's replay of its own stale state during subscribe is
// discarded, and a re-emission the control raises from inside SetValue is
// an echo and goes nowhere. The binding remembers the last value the
// control is known to hold, so a cell write matching it is not re-sent and
// an asynchronous re-emission of it is not looped back. Writes racing in
// from both sides settle on the newest stamp, as with BindBoth.
//
// If the control's stream errors or completes, only the control-to-cell
// direction ends; the cell keeps driving the control and the composite
// stays open until released.
func BindControl[T any](cell *MutableValue[T], ctl Control[T], opts ...BothOptions) *rx.Composite {
	o := mergeBoth(opts)
	eq := pickEquals(cell.equal, nil)

	var clock atomic.Uint64
	var cellVer, ctlVer atomic.Uint64
	var applyingCell, applyingCtl atomic.Bool

	// held reports whether the control already has v, recording v as the
	// control's value otherwise. Both directions consult it before acting.
	var heldMu sync.Mutex
	var heldValue T
	var heldKnown bool
	held := func(v T) bool {
		heldMu.Lock()
		defer heldMu.Unlock()
		if heldKnown && eq(heldValue, v) {
			return true
		}
		heldValue, heldKnown = v, true
		return false
	}

	toControl := &hopSub{}
	toControl.setInner(cell.Changes().Subscribe(rx.NewObserver(
		func(v T) {
			if applyingCell.Load() {
				return
			}
			stamp := clock.Add(1)
			cellVer.Store(stamp)
			o.Scheduler.Schedule(func() {
				if toControl.Closed() {
					return
				}
				if stamp <= ctlVer.Load() {
					return
				}
				ctlVer.Store(stamp)
				if held(v) {
					return
				}
				applyingCtl.Store(true)
				defer applyingCtl.Store(false)
				ctl.SetValue(v)
			})
		},
		nil, nil,
	)))

	toCell := &hopSub{}
	var subscribed atomic.Bool
	toCell.setInner(ctl.Changes().Subscribe(rx.NewObserver(
		func(v T) {
			if !subscribed.Load() {
				// the control's replay of its pre-binding state
				return
			}
			if applyingCtl.Load() {
				return
			}
			stamp := clock.Add(1)
			ctlVer.Store(stamp)
			o.Scheduler.Schedule(func() {
				if toCell.Closed() {
					return
				}
				if stamp <= cellVer.Load() {
					return
				}
				cellVer.Store(stamp)
				if held(v) {
					return
				}
				if eq(cell.Read(), v) {
					return
				}
				applyingCell.Store(true)
				defer applyingCell.Store(false)
				cell.Accept(v)
			})
		},
		nil, nil,
	)))
	subscribed.Store(true)

	met.BindingsTotal.Inc()
	met.BindingsActive.Inc()
	return rx.NewComposite(toControl, toCell,
		rx.NewSubscription(met.BindingsActive.Dec))
}

func pickEquals[T any](a, b func(T, T) bool) func(T, T) bool {
	if a != nil {
		return a
	}
	if b != nil {
		return b
	}
	return rx.DefaultEquals[T]
}

// hopSub is the handle for one direction of a two-way binding. Its Closed
// must be answerable from a scheduled callback even while the upstream
// Subscribe call is still replaying, before the inner handle exists.
type hopSub struct {
	mu       sync.Mutex
	released bool
	inner    rx.Subscription
}

func (s *hopSub) setInner(inner rx.Subscription) {
	s.mu.Lock()
	released := s.released
	s.inner = inner
	s.mu.Unlock()

	if released {
		inner.Unsubscribe()
	}
}

func (s *hopSub) Unsubscribe() {
	s.mu.Lock()
	s.released = true
	inner := s.inner
	s.mu.Unlock()

	if inner != nil {
		inner.Unsubscribe()
	}
}

func (s *hopSub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return true
	}
	return s.inner != nil && s.inner.Closed()
}
