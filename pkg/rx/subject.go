package rx

import (
	"sync"
	"sync/atomic"
)

// subscribers provides shared subscriber bookkeeping for Subject and
// ReplaySubject: an ordered list guarded by an RWMutex, delivered to with the
// copy-before-notify pattern so no lock is held while observers run.
type subscribers[T any] struct {
	mu   sync.RWMutex
	subs []*listSub[T]
}

// listSub is one registered observer. Closing is idempotent and detaches the
// entry from its list.
type listSub[T any] struct {
	list     *subscribers[T]
	observer Observer[T]
	closed   atomic.Bool
}

func (s *listSub[T]) Unsubscribe() {
	if s.closed.Swap(true) {
		return
	}
	if s.list != nil {
		s.list.remove(s)
	}
}

func (s *listSub[T]) Closed() bool {
	return s.closed.Load()
}

func (l *subscribers[T]) add(o Observer[T]) *listSub[T] {
	sub := &listSub[T]{list: l, observer: o}
	l.mu.Lock()
	l.subs = append(l.subs, sub)
	l.mu.Unlock()
	return sub
}

func (l *subscribers[T]) remove(sub *listSub[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.subs {
		if existing == sub {
			// Shift-remove: delivery order for the remaining subscribers
			// must stay the subscription order.
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}

// snapshot copies the subscriber list while holding the lock, so delivery
// can happen without it.
func (l *subscribers[T]) snapshot() []*listSub[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	subs := make([]*listSub[T], len(l.subs))
	copy(subs, l.subs)
	return subs
}

// drain removes and returns every subscriber.
func (l *subscribers[T]) drain() []*listSub[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	subs := l.subs
	l.subs = nil
	return subs
}

// deliver pushes value to every live subscriber in subscription order.
func (l *subscribers[T]) deliver(value T) {
	for _, sub := range l.snapshot() {
		if !sub.closed.Load() {
			sub.observer.OnNext(value)
		}
	}
}

// Subject is a hot, non-replaying multicast stream. Next delivers the value
// synchronously to the current subscribers, in subscription order; values
// pushed while nobody subscribes are dropped, not buffered.
//
// Error and Complete are terminal: they close every live subscription, and
// observers subscribing afterwards receive the terminal event immediately
// along with an already-closed handle.
type Subject[T any] struct {
	list subscribers[T]

	stateMu sync.Mutex
	done    bool
	err     error
}

// NewSubject creates an empty, live subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Next multicasts value to the current subscribers. After a terminal event
// it is a no-op.
func (s *Subject[T]) Next(value T) {
	s.stateMu.Lock()
	done := s.done
	s.stateMu.Unlock()
	if done {
		return
	}
	s.list.deliver(value)
}

// Error terminates the subject. Every live subscription receives OnError and
// is closed. A nil err is treated as completion.
func (s *Subject[T]) Error(err error) {
	if err == nil {
		s.Complete()
		return
	}
	s.terminate(err)
}

// Complete terminates the subject. Every live subscription receives
// OnComplete and is closed.
func (s *Subject[T]) Complete() {
	s.terminate(nil)
}

func (s *Subject[T]) terminate(err error) {
	s.stateMu.Lock()
	if s.done {
		s.stateMu.Unlock()
		return
	}
	s.done = true
	s.err = err
	s.stateMu.Unlock()

	for _, sub := range s.list.drain() {
		if sub.closed.Swap(true) {
			continue
		}
		if err != nil {
			sub.observer.OnError(err)
		} else {
			sub.observer.OnComplete()
		}
	}
}

// Subscribe registers the observer. On a terminated subject the terminal
// event is delivered immediately and the returned handle is already closed.
func (s *Subject[T]) Subscribe(o Observer[T]) Subscription {
	s.stateMu.Lock()
	if s.done {
		err := s.err
		s.stateMu.Unlock()
		sub := &listSub[T]{observer: o}
		sub.closed.Store(true)
		if err != nil {
			o.OnError(err)
		} else {
			o.OnComplete()
		}
		return sub
	}
	// Register while holding stateMu so a concurrent terminal cannot slip
	// between the done check and the registration.
	sub := s.list.add(o)
	s.stateMu.Unlock()
	return sub
}
