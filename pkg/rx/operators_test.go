package rx

import (
	"errors"
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	s := NewSubject[int]()
	r := newRecorder[string]()

	Map[int, string](s, strconv.Itoa).Subscribe(r)
	s.Next(1)
	s.Next(2)

	values := r.Values()
	if len(values) != 2 || values[0] != "1" || values[1] != "2" {
		t.Errorf(`expected ["1" "2"], got %v`, values)
	}
}

func TestMapForwardsTerminal(t *testing.T) {
	s := NewSubject[int]()
	r := newRecorder[int]()
	boom := errors.New("boom")

	sub := Map(s, func(n int) int { return n * 2 }).Subscribe(r)
	s.Error(boom)

	if errs := r.Errors(); len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("expected mapped stream to forward error, got %v", errs)
	}
	if !sub.Closed() {
		t.Error("expected handle closed after upstream error")
	}
}

func TestFilter(t *testing.T) {
	s := NewSubject[int]()
	r := newRecorder[int]()

	Filter(s, func(n int) bool { return n%2 == 0 }).Subscribe(r)
	for i := 1; i <= 6; i++ {
		s.Next(i)
	}

	values := r.Values()
	if len(values) != 3 || values[0] != 2 || values[1] != 4 || values[2] != 6 {
		t.Errorf("expected [2 4 6], got %v", values)
	}
}

func TestSkip(t *testing.T) {
	s := NewReplaySubject("initial")
	r := newRecorder[string]()

	Skip[string](s, 1).Subscribe(r)
	s.Next("first")
	s.Next("second")

	values := r.Values()
	if len(values) != 2 || values[0] != "first" || values[1] != "second" {
		t.Errorf("expected replay skipped, got %v", values)
	}
}

func TestDistinctUntilChanged(t *testing.T) {
	s := NewSubject[int]()
	r := newRecorder[int]()

	DistinctUntilChanged[int](s, nil).Subscribe(r)
	for _, n := range []int{1, 1, 2, 2, 2, 3, 1} {
		s.Next(n)
	}

	values := r.Values()
	want := []int{1, 2, 3, 1}
	if len(values) != len(want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, values)
		}
	}
}

func TestDistinctUntilChangedCustomEquality(t *testing.T) {
	s := NewSubject[string]()
	r := newRecorder[string]()

	// Compare by length only
	DistinctUntilChanged(s, func(a, b string) bool { return len(a) == len(b) }).Subscribe(r)
	s.Next("aa")
	s.Next("bb")
	s.Next("ccc")

	values := r.Values()
	if len(values) != 2 || values[0] != "aa" || values[1] != "ccc" {
		t.Errorf(`expected ["aa" "ccc"], got %v`, values)
	}
}

func TestDefaultEquals(t *testing.T) {
	if !DefaultEquals(1, 1) || DefaultEquals(1, 2) {
		t.Error("int equality broken")
	}
	if !DefaultEquals("a", "a") || DefaultEquals("a", "b") {
		t.Error("string equality broken")
	}
	if !DefaultEquals([]int{1, 2}, []int{1, 2}) {
		t.Error("expected deep equality for slices")
	}
	if DefaultEquals([]int{1}, []int{2}) {
		t.Error("expected slice inequality")
	}
}

func TestCreate(t *testing.T) {
	teardowns := 0
	src := Create(func(o Observer[int]) func() {
		o.OnNext(1)
		o.OnNext(2)
		return func() { teardowns++ }
	})

	r := newRecorder[int]()
	sub := src.Subscribe(r)

	if values := r.Values(); len(values) != 2 {
		t.Errorf("expected 2 values, got %v", values)
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
	if teardowns != 1 {
		t.Errorf("expected teardown once, ran %d times", teardowns)
	}
}

func TestCreateGuardsAfterTerminal(t *testing.T) {
	var producer Observer[int]
	src := Create(func(o Observer[int]) func() {
		producer = o
		return nil
	})

	r := newRecorder[int]()
	sub := src.Subscribe(r)

	producer.OnNext(1)
	producer.OnError(errors.New("boom"))
	producer.OnNext(2)                  // dropped
	producer.OnError(errors.New("dup")) // dropped

	if values := r.Values(); len(values) != 1 {
		t.Errorf("expected 1 value, got %v", values)
	}
	if errs := r.Errors(); len(errs) != 1 {
		t.Errorf("expected 1 error, got %v", errs)
	}
	if !sub.Closed() {
		t.Error("expected closed handle after error")
	}
}

func TestCreateTerminalDuringRegister(t *testing.T) {
	teardowns := 0
	src := Create(func(o Observer[int]) func() {
		o.OnComplete()
		return func() { teardowns++ }
	})

	r := newRecorder[int]()
	sub := src.Subscribe(r)

	if r.Completes() != 1 {
		t.Errorf("expected completion, got %d", r.Completes())
	}
	if !sub.Closed() {
		t.Error("expected closed handle")
	}
	if teardowns != 1 {
		t.Errorf("expected teardown to run when terminal preceded registration, ran %d times", teardowns)
	}
}

func TestObserveOn(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	s := NewSubject[int]()
	r := newRecorder[int]()
	ObserveOn[int](s, loop).Subscribe(r)

	s.Next(1)
	s.Next(2)
	loop.Flush()

	values := r.Values()
	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("expected [1 2] in order, got %v", values)
	}
}

func TestObserveOnDiscardsAfterRelease(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	s := NewSubject[int]()
	r := newRecorder[int]()
	sub := ObserveOn[int](s, loop).Subscribe(r)

	s.Next(1)
	sub.Unsubscribe()
	loop.Flush()

	if values := r.Values(); len(values) != 0 {
		t.Errorf("expected in-flight event discarded, got %v", values)
	}
}
