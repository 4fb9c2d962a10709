package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventTrigger = "trigger"

// TriggerEventKind identifies trigger volume transitions.
type TriggerEventKind string

const (
	TriggerEnter TriggerEventKind = "enter"
	TriggerExit  TriggerEventKind = "exit"
)

// TriggerEvent is emitted when a character crosses a trigger volume boundary.
type TriggerEvent struct {
	Trigger Entity
	Other   Entity
	Kind    TriggerEventKind
}

// EventQueue is a simple FIFO queue. Events live until the end of the frame
// they were pushed in.
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

// Pending returns the events pushed so far this frame without consuming
// them, so several systems can observe the same event.
func (q *EventQueue) Pending() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

// TriggerEvents returns this frame's trigger events for one volume.
func (q *EventQueue) TriggerEvents(trigger Entity) []TriggerEvent {
	if q == nil {
		return nil
	}
	var out []TriggerEvent
	for _, evt := range q.items {
		if evt.Type != EventTrigger {
			continue
		}
		te, ok := evt.Data.(TriggerEvent)
		if ok && te.Trigger == trigger {
			out = append(out, te)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
