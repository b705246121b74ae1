// Package bind connects view-model state to whatever consumes it, with
// lifecycle scoping built in. It sits on the stream engine in pkg/rx and
// adds three things: value cells with synchronous reads, combinators that
// wire cells to sinks and controls in one or both directions, and an owner
// contract that tears every binding down exactly once.
//
// # Cells and channels
//
// ReplayValue holds state: always readable, and its projection replays the
// current value to each new subscriber. MutableValue additionally accepts
// writes from the outside, which makes it two-way capable. ActionChannel
// carries one-shot events instead of state: no replay, and triggers with no
// subscriber are dropped.
//
//	count := bind.NewMutableValue(0)
//	alerts := bind.NewActionChannel[string]()
//
// # Binding
//
// One-way bindings subscribe a sink to a projection. Two-way bindings keep
// two endpoints equal:
//
//	bind.BindFunc(count.Changes(), func(n int) { render(n) })
//	bind.BindBoth(count, slider)
//
// BindBoth and BindControl reschedule each direction onto a serialized
// delivery loop, so propagation never re-enters on the writer's stack. The
// notification raised by the binding's own write is an echo and is not
// forwarded back, and every genuine write carries a stamp, so sides racing
// against each other settle on the newest value instead of looping. All
// two-way bindings that can form a cycle must share one delivery loop; by
// default they all use Delivery().
//
// # Ownership
//
// A view-model embeds Lifetime and groups its bindings in scopes:
//
//	type VM struct {
//	    bind.Lifetime
//	    Count *bind.MutableValue[int]
//	}
//
//	vm.Scope(func(c *bind.Collector) {
//	    c.Add(bind.BindFunc(vm.Count.Changes(), render))
//	    for _, row := range rows {
//	        c.Add(bind.BindFunc(row.Changes(), renderRow))
//	    }
//	})
//
// Everything a scope collects is released by vm.Close(), exactly once, no
// matter how often Close is called.
//
// # Errors
//
// Cells never error: their projections have no terminal events at the type
// level. Raw streams bound with Bind or BindFunc keep their error channel,
// and a terminal event there closes only that one subscription. Convert
// upstream failures into ordinary state before they reach a cell.
//
// # Threads
//
// Writes notify synchronously on the writer's goroutine in subscription
// order. The library never hops threads on a plain write; only two-way
// bindings introduce a hop, on their delivery loop. Writers racing on one
// cell get a safe but unspecified interleaving; route writes through one
// loop when their order matters.
package bind
