// Package notify carries notifications out of the project hierarchy.
//
// The hierarchy never reaches for a global dispatcher. Operations that raise
// notifications (move, copy, saving a virtual item) take a Sink argument and
// publish to it synchronously; a nil Sink means nobody is listening.
//
// Bus is the standard Sink: subscribers register a topic pattern and a
// handler, and every matching handler runs on the publishing goroutine in
// subscription order.
package notify

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink receives named notifications with an optional payload.
type Sink interface {
	Notify(topic Topic, payload any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(topic Topic, payload any)

// Notify calls f.
func (f SinkFunc) Notify(topic Topic, payload any) {
	f(topic, payload)
}

// Publish sends to sink, tolerating a nil sink.
func Publish(sink Sink, topic Topic, payload any) {
	if sink == nil {
		return
	}
	sink.Notify(topic, payload)
}

// Event is a delivered notification.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler handles a delivered notification.
type Handler func(Event)

// Subscription identifies a registered handler.
type Subscription struct {
	id      string
	pattern Topic
	bus     *Bus
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() Topic { return s.pattern }

// Cancel removes the subscription from its bus. It is safe to call twice.
func (s *Subscription) Cancel() {
	s.bus.unsubscribe(s.id)
}

type subscriber struct {
	id      string
	pattern Topic
	handler Handler
}

// Bus dispatches notifications to subscribers by topic pattern.
// Subscribing and publishing are safe for concurrent use; delivery is
// synchronous on the publishing goroutine.
type Bus struct {
	mu   sync.RWMutex
	subs []subscriber
	log  *zap.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler panics.
func WithLogger(log *zap.Logger) BusOption {
	return func(b *Bus) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBus creates a Bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ Sink = (*Bus)(nil)

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("invalid topic pattern %q", pattern)
	}
	if handler == nil {
		return nil, fmt.Errorf("nil handler for pattern %q", pattern)
	}

	id := uuid.NewString()
	b.mu.Lock()
	b.subs = append(b.subs, subscriber{id: id, pattern: pattern, handler: handler})
	b.mu.Unlock()

	return &Subscription{id: id, pattern: pattern, bus: b}, nil
}

// Notify delivers a notification to every matching subscriber.
// A panicking handler is logged and does not stop delivery to the others.
func (b *Bus) Notify(topic Topic, payload any) {
	b.mu.RLock()
	matched := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	ev := Event{Topic: topic, Payload: payload}
	for _, s := range matched {
		b.deliver(s, ev)
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("notification handler panicked",
				zap.String("topic", ev.Topic.String()),
				zap.String("subscription", s.id),
				zap.Any("panic", r))
		}
	}()
	s.handler(ev)
}

func (b *Bus) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}
