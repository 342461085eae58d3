package overlay

import "testing"

func TestBusPublishOrderAndUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var got []string
	a := bus.Subscribe(Scroll, func() { got = append(got, "a") })
	bus.Subscribe(Scroll, func() { got = append(got, "b") })
	bus.Subscribe(Resize, func() { got = append(got, "resize") })

	bus.Publish(Scroll)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected publish order: %v", got)
	}

	bus.Unsubscribe(a)
	bus.Unsubscribe(a)
	got = nil
	bus.Publish(Scroll)
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("expected only b after unsubscribe, got %v", got)
	}
	if bus.Len(Scroll) != 1 || bus.Len(Resize) != 1 {
		t.Fatalf("unexpected handler counts: scroll=%d resize=%d", bus.Len(Scroll), bus.Len(Resize))
	}
}

func TestBusSkipsHandlersRemovedDuringPublish(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var second Subscription
	calls := 0
	bus.Subscribe(Resize, func() {
		calls++
		bus.Unsubscribe(second)
	})
	second = bus.Subscribe(Resize, func() { calls += 10 })

	bus.Publish(Resize)
	if calls != 1 {
		t.Fatalf("removed handler still ran, calls=%d", calls)
	}
}

func TestBusNilHandler(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(Scroll, nil)
	if sub.Valid() {
		t.Fatalf("nil handler should produce an invalid subscription")
	}
	bus.Unsubscribe(sub)
	bus.Publish(Scroll)
	if bus.Len(Scroll) != 0 {
		t.Fatalf("nil handler was registered")
	}
}

func TestSubscriptionManagerGuardsDoubleActivation(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	m := subscriptionManager{signals: bus}
	calls := 0
	m.activate(func() { calls++ })
	m.activate(func() { calls += 100 })

	if bus.Len(Scroll) != 1 || bus.Len(Resize) != 1 {
		t.Fatalf("double activation registered twice: scroll=%d resize=%d", bus.Len(Scroll), bus.Len(Resize))
	}
	bus.Publish(Scroll)
	if calls != 1 {
		t.Fatalf("expected the first handler only, calls=%d", calls)
	}

	m.deactivate()
	m.deactivate()
	if bus.Len(Scroll) != 0 || bus.Len(Resize) != 0 {
		t.Fatalf("deactivate left subscriptions behind")
	}

	m.activate(func() { calls++ })
	if bus.Len(Scroll) != 1 {
		t.Fatalf("reactivation after deactivate should register again")
	}
}

func TestSignalAndStateStrings(t *testing.T) {
	t.Parallel()

	if Scroll.String() != "scroll" || Resize.String() != "resize" || Signal(9).String() != "unknown" {
		t.Fatalf("unexpected signal names")
	}
	tests := map[State]string{
		Hidden:      "hidden",
		PendingShow: "pending-show",
		Visible:     "visible",
		PendingHide: "pending-hide",
		State(42):   "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
