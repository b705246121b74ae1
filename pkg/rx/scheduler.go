package rx

import (
	"log/slog"
	"sync/atomic"
)

// Scheduler runs callbacks at some later point, possibly immediately.
type Scheduler interface {
	Schedule(fn func())
}

// Direct returns a scheduler that runs callbacks inline on the caller's
// goroutine. Useful in tests and for bindings that are known to be acyclic.
func Direct() Scheduler {
	return directScheduler{}
}

type directScheduler struct{}

func (directScheduler) Schedule(fn func()) {
	fn()
}

// LoopOptions configures a Loop. The zero value is usable.
type LoopOptions struct {
	// Queue is the callback queue capacity. Defaults to 1024.
	Queue int

	// Logger receives overflow warnings. Defaults to slog.Default().
	Logger *slog.Logger

	// Name tags the loop in log output.
	Name string
}

// Loop is a single-goroutine serialized scheduler. Callbacks run strictly in
// enqueue order, one at a time. Scheduling onto a Loop is the asynchronous
// hop that breaks re-entrant notification chains: the callback never runs on
// the stack that scheduled it, and a callback enqueued while another is
// pending still runs, in order, rather than being coalesced away.
type Loop struct {
	ch     chan func()
	done   chan struct{}
	closed atomic.Bool
	logger *slog.Logger
}

// NewLoop starts the loop goroutine and returns the scheduler. The caller
// owns the loop and must Close it when done.
func NewLoop(opts ...LoopOptions) *Loop {
	var o LoopOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Queue <= 0 {
		o.Queue = 1024
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	logger := o.Logger
	if o.Name != "" {
		logger = logger.With("loop", o.Name)
	}

	l := &Loop{
		ch:     make(chan func(), o.Queue),
		done:   make(chan struct{}),
		logger: logger,
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.ch:
			if l.closed.Load() {
				// Close raced the dequeue, discard
				return
			}
			fn()
		case <-l.done:
			return
		}
	}
}

// Schedule enqueues fn. It never blocks: when the queue is full the callback
// is dropped with a warning, because blocking here would deadlock a callback
// that schedules onto its own loop. After Close it is a no-op.
func (l *Loop) Schedule(fn func()) {
	if l.closed.Load() {
		return
	}
	select {
	case l.ch <- fn:
		// Queued
	case <-l.done:
		// Loop is closing, discard
	default:
		l.logger.Warn("delivery queue full, discarding callback")
	}
}

// Flush blocks until every callback scheduled before the call has run.
// Returns immediately on a closed loop. Must not be called from the loop
// goroutine itself.
func (l *Loop) Flush() {
	if l.closed.Load() {
		return
	}
	marker := make(chan struct{})
	select {
	case l.ch <- func() { close(marker) }:
	case <-l.done:
		return
	}
	select {
	case <-marker:
	case <-l.done:
	}
}

// Close stops the loop. Callbacks still queued are discarded. Idempotent.
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	close(l.done)
}
