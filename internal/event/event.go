// Package event provides a synchronous, topic-keyed event bus.
//
// The editor is single-threaded and event-driven: every publish happens
// on the UI thread and handlers run inline before Publish returns. The
// bus exists so that widget lifetimes can be tied to explicit
// subscriptions with deterministic teardown, not so that work can move
// off-thread. Cancelling a subscription guarantees its handler never
// runs again, synchronously with the cancel.
package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Topic identifies an event stream.
type Topic string

// Topics published by the editor core.
const (
	// TopicMenuDismissed fires when a context menu is dismissed.
	// Payload: MenuDismissed.
	TopicMenuDismissed Topic = "menu.dismissed"

	// TopicEditorRedraw fires when the surface needs re-rendering.
	// Payload: EditorRedraw.
	TopicEditorRedraw Topic = "editor.redraw"
)

// MenuDismissed is the payload for TopicMenuDismissed.
type MenuDismissed struct {
	// MenuID identifies the dismissed menu.
	MenuID string
}

// EditorRedraw is the payload for TopicEditorRedraw.
type EditorRedraw struct {
	// EditorID identifies the surface requesting a redraw.
	EditorID string
}

// HandlerFunc processes a published event payload.
type HandlerFunc func(payload any)

// Subscription is an active registration on the bus.
// Cancel unregisters it; after Cancel returns, the handler will not be
// invoked again.
type Subscription struct {
	id        string
	topic     Topic
	handler   HandlerFunc
	bus       *Bus
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic.
func (s *Subscription) Topic() Topic {
	return s.topic
}

// IsActive reports whether the subscription can still receive events.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel permanently unregisters the subscription. Idempotent.
func (s *Subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.bus.remove(s)
}

// Bus routes published events to subscriptions by topic.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Topic][]*Subscription),
	}
}

// Subscribe registers a handler for a topic and returns the
// subscription controlling its lifetime.
func (b *Bus) Subscribe(topic Topic, fn HandlerFunc) *Subscription {
	sub := &Subscription{
		id:      uuid.NewString(),
		topic:   topic,
		handler: fn,
		bus:     b,
	}
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], sub)
	b.mu.Unlock()
	return sub
}

// Publish delivers the payload to every active subscription on the
// topic, inline, in registration order.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	subs := make([]*Subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		// Re-check per delivery: a handler earlier in the list may have
		// cancelled a later subscription.
		if sub.IsActive() {
			sub.handler(payload)
		}
	}
}

// SubscriberCount returns the number of active subscriptions on a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

// remove drops a subscription from the registry.
func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[sub.topic]
	for i, s := range subs {
		if s.id == sub.id {
			b.subs[sub.topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.topic]) == 0 {
		delete(b.subs, sub.topic)
	}
}
