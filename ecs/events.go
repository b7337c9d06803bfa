package ecs

import "github.com/milk9111/locomotion/locomotion"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventStateChanged = "state_changed"
	EventJumped       = "jumped"
	EventLanded       = "landed"
)

// StateChanged is the payload of EventStateChanged.
type StateChanged struct {
	Entity Entity
	From   locomotion.State
	To     locomotion.State
}

// EventQueue is a simple FIFO queue. The Dispatcher clears it at the end of
// every frame, so systems later in the frame can Peek at what earlier ones
// pushed.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	return append([]Event(nil), q.items...)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
