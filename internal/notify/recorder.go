package notify

import "sync"

// Recorder is a Sink that keeps every notification it receives.
// It is used by tests and by callers that batch UI refreshes.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Sink = (*Recorder)(nil)

// Notify records the notification.
func (r *Recorder) Notify(topic Topic, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Topic: topic, Payload: payload})
}

// Events returns a copy of the recorded notifications.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Topics returns the recorded topics in order.
func (r *Recorder) Topics() []Topic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Topic, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Topic
	}
	return out
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Reset discards recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
