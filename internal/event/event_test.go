package event

import "testing"

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(TopicMenuDismissed, func(payload any) {
		ev := payload.(MenuDismissed)
		got = append(got, ev.MenuID)
	})

	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m1"})
	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m2"})

	if len(got) != 2 || got[0] != "m1" || got[1] != "m2" {
		t.Errorf("delivered = %v, want [m1 m2]", got)
	}
}

func TestPublishSkipsOtherTopics(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(TopicEditorRedraw, func(any) { called = true })

	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m1"})
	if called {
		t.Error("redraw handler fired for a dismiss event")
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := bus.Subscribe(TopicMenuDismissed, func(any) { calls++ })

	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m1"})
	sub.Cancel()
	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m2"})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.IsActive() {
		t.Error("cancelled subscription reports active")
	}
	if n := bus.SubscriberCount(TopicMenuDismissed); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(TopicMenuDismissed, func(any) {})
	sub.Cancel()
	sub.Cancel()
	if n := bus.SubscriberCount(TopicMenuDismissed); n != 0 {
		t.Errorf("SubscriberCount = %d, want 0", n)
	}
}

func TestHandlerMayCancelLaterSubscription(t *testing.T) {
	bus := NewBus()

	var second *Subscription
	firstCalls, secondCalls := 0, 0
	bus.Subscribe(TopicMenuDismissed, func(any) {
		firstCalls++
		second.Cancel()
	})
	second = bus.Subscribe(TopicMenuDismissed, func(any) { secondCalls++ })

	bus.Publish(TopicMenuDismissed, MenuDismissed{MenuID: "m1"})

	if firstCalls != 1 {
		t.Errorf("first handler calls = %d, want 1", firstCalls)
	}
	if secondCalls != 0 {
		t.Errorf("second handler ran after being cancelled mid-publish, calls = %d", secondCalls)
	}
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(TopicMenuDismissed, func(any) {})
	b := bus.Subscribe(TopicMenuDismissed, func(any) {})
	if a.ID() == b.ID() {
		t.Error("subscription IDs should be unique")
	}
	if a.Topic() != TopicMenuDismissed {
		t.Errorf("Topic() = %q, want %q", a.Topic(), TopicMenuDismissed)
	}
}
