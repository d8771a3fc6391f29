// Package eventbus provides the in-process publish/subscribe channel that
// fans committed order mutations out to live staff sessions.
//
// Delivery semantics:
//   - Publication never blocks the caller. Each subscription owns a bounded
//     buffer; a subscriber that cannot keep up is torn down rather than
//     allowed to apply backpressure to publishers or other subscribers.
//   - Delivery is best-effort, at-most-once per subscriber per event. There
//     is no persisted log and no redelivery; a reconnecting client
//     re-fetches full state out of band.
//   - Events for a given order reach a given subscriber in commit order
//     (handlers publish post-commit on the request goroutine, and each
//     subscription channel is FIFO). No ordering is promised across orders.
package eventbus

import (
	"log/slog"
	"sync"

	"github.com/Tenten1007/MenuCoffee-v2-sub000/internal/core/domain/model/order"
)

// Event types published on the bus.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// DefaultBufferSize is the per-subscription buffer used when no explicit
// size is configured.
const DefaultBufferSize = 64

// Event is one order mutation. The payload is the full committed snapshot,
// not a diff, so a client that missed intermediate events only needs the
// latest to stay consistent.
type Event struct {
	Type  string
	Order *order.Order
}

// Bus is the in-process event distributor. The subscriber set is guarded by
// the bus's own mutex; sends into subscription buffers happen only while
// the lock is held, which keeps teardown free of send-on-closed races.
type Bus struct {
	mu          sync.Mutex
	subscribers map[*Subscription]struct{}
	bufferSize  int
	logger      *slog.Logger
}

// NewBus creates a Bus whose subscriptions buffer up to bufferSize events.
// Sizes below 1 fall back to DefaultBufferSize.
func NewBus(bufferSize int, logger *slog.Logger) *Bus {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &Bus{
		subscribers: make(map[*Subscription]struct{}),
		bufferSize:  bufferSize,
		logger:      logger.With("component", "eventbus"),
	}
}

// Subscribe registers a new subscription and returns its handle. The caller
// must drain Events() and call Close when done.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{
		bus:    b,
		events: make(chan Event, b.bufferSize),
	}

	b.mu.Lock()
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// SubscriberCount returns the number of live subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// PublishOrderCreated announces a newly committed order.
func (b *Bus) PublishOrderCreated(aggregate *order.Order) {
	b.publish(Event{Type: EventOrderCreated, Order: aggregate})
}

// PublishOrderUpdated announces a committed status change.
func (b *Bus) PublishOrderUpdated(aggregate *order.Order) {
	b.publish(Event{Type: EventOrderUpdated, Order: aggregate})
}

// PublishOrderDeleted announces that an order left the live store.
func (b *Bus) PublishOrderDeleted(aggregate *order.Order) {
	b.publish(Event{Type: EventOrderDeleted, Order: aggregate})
}

// publish fans the event out to every subscription without ever blocking.
// A subscription whose buffer is full is removed from the set and closed;
// its client must reconnect and re-sync.
func (b *Bus) publish(evt Event) {
	var overflowed []*Subscription

	b.mu.Lock()
	for sub := range b.subscribers {
		select {
		case sub.events <- evt:
		default:
			delete(b.subscribers, sub)
			overflowed = append(overflowed, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range overflowed {
		sub.closeChannel()
		b.logger.Warn("subscription buffer overflow, dropping subscriber",
			"event_type", evt.Type,
			"buffer_size", b.bufferSize,
		)
	}
}

// remove detaches a subscription from the set. Safe to call for
// subscriptions the bus already dropped.
func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	delete(b.subscribers, sub)
	b.mu.Unlock()
}

// Subscription is the consumption handle returned by Subscribe. Events()
// yields events in delivery order until the subscription is closed, either
// by the subscriber via Close or by the bus on buffer overflow.
type Subscription struct {
	bus    *Bus
	events chan Event
	once   sync.Once
}

// Events returns the receive side of the subscription. The channel is
// closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unsubscribes and releases the subscription. Idempotent; safe to
// call after the bus has already dropped the subscription.
func (s *Subscription) Close() {
	s.bus.remove(s)
	s.closeChannel()
}

func (s *Subscription) closeChannel() {
	s.once.Do(func() {
		close(s.events)
	})
}
