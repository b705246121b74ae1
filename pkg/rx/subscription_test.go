package rx

import "testing"

func TestNewSubscriptionRunsOnce(t *testing.T) {
	count := 0
	sub := NewSubscription(func() { count++ })

	sub.Unsubscribe()
	sub.Unsubscribe()

	if count != 1 {
		t.Errorf("expected teardown to run once, ran %d times", count)
	}
	if !sub.Closed() {
		t.Error("expected closed handle")
	}
}

func TestWithTeardown(t *testing.T) {
	inner := 0
	extra := 0
	sub := WithTeardown(NewSubscription(func() { inner++ }), func() { extra++ })

	sub.Unsubscribe()
	sub.Unsubscribe()

	if inner != 1 || extra != 1 {
		t.Errorf("expected both teardowns once, got inner=%d extra=%d", inner, extra)
	}
}

func TestWithTeardownNilFunc(t *testing.T) {
	sub := WithTeardown(NewSubscription(), nil)

	sub.Unsubscribe()
	sub.Unsubscribe()

	if !sub.Closed() {
		t.Error("expected closed handle")
	}
}

func TestCompositeReleasesAll(t *testing.T) {
	counts := make([]int, 3)
	c := NewComposite(
		NewSubscription(func() { counts[0]++ }),
		NewSubscription(func() { counts[1]++ }),
		NewSubscription(func() { counts[2]++ }),
	)

	if c.Len() != 3 {
		t.Errorf("expected 3 children, got %d", c.Len())
	}

	c.Unsubscribe()
	c.Unsubscribe()

	for i, n := range counts {
		if n != 1 {
			t.Errorf("child %d released %d times, expected 1", i, n)
		}
	}
	if !c.Closed() {
		t.Error("expected closed composite")
	}
}

func TestCompositeReleaseOrder(t *testing.T) {
	var order []int
	c := NewComposite()
	for i := 0; i < 3; i++ {
		i := i
		c.Add(NewSubscription(func() { order = append(order, i) }))
	}

	c.Unsubscribe()

	// Newest first
	if len(order) != 3 || order[0] != 2 || order[1] != 1 || order[2] != 0 {
		t.Errorf("expected release order [2 1 0], got %v", order)
	}
}

func TestCompositeAddAfterClose(t *testing.T) {
	c := NewComposite()
	c.Unsubscribe()

	count := 0
	c.Add(NewSubscription(func() { count++ }))

	if count != 1 {
		t.Errorf("expected immediate release after close, got %d", count)
	}
}

func TestCompositeEmpty(t *testing.T) {
	c := NewComposite()

	// Releasing an empty composite is a legal no-op
	c.Unsubscribe()
	if !c.Closed() {
		t.Error("expected closed composite")
	}
}

func TestCompositeIgnoresNil(t *testing.T) {
	c := NewComposite(nil, NewSubscription(), nil)
	if c.Len() != 1 {
		t.Errorf("expected nil entries ignored, got %d", c.Len())
	}
}
