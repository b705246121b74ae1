// Package rx provides the hot-stream engine underneath the binding layer:
// observers, subjects, a small operator set and serialized schedulers.
//
// Streams here are hot and multicast. Subscribing never starts a producer;
// it attaches to one that already exists.
//
// # Core Types
//
// Subject[T] is a non-replaying multicast stream:
//
//	s := NewSubject[string]()
//	sub := s.Subscribe(NewObserver(func(v string) { fmt.Println(v) }, nil, nil))
//	s.Next("hello")   // delivered
//	sub.Unsubscribe()
//	s.Next("gone")    // dropped
//
// ReplaySubject[T] retains the latest value and replays it to each new
// subscriber. It has no terminal events, so it models state rather than a
// finite computation:
//
//	s := NewReplaySubject(0)
//	s.Next(1)
//	v := s.Value()    // 1, synchronous
//	s.Subscribe(...)  // observer immediately sees 1
//
// # Schedulers
//
// A Loop is a single goroutine running callbacks strictly in enqueue order.
// Scheduling onto a Loop is the asynchronous hop two-way bindings use to
// break re-entrant notification cycles:
//
//	loop := NewLoop()
//	defer loop.Close()
//	loop.Schedule(func() { ... })
//	loop.Flush() // wait for everything queued so far (tests)
//
// # Thread Safety
//
// Subjects are safe for concurrent use, and delivery to one subscriber
// always follows subscription order. The relative order of concurrent
// writers is not defined; route writes through one serializing point, such
// as a Loop, when a total order matters.
package rx
