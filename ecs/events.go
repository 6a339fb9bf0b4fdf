package ecs

// EventType identifies an event payload.
type EventType string

const (
	// EventAttackFinished is emitted when a character's attack ends. Data is
	// an AttackFinished.
	EventAttackFinished EventType = "attack_finished"
	// EventPickupShown is emitted when a character starts holding up an
	// item. Data is the component.ItemType shown.
	EventPickupShown EventType = "pickup_shown"
	// EventPickupDismissed is emitted when a shown pickup is cancelled by
	// movement input. Data is the component.ItemType that was shown.
	EventPickupDismissed EventType = "pickup_dismissed"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// AttackFinished tells the attack listener that an attack ended. Interrupted
// is set when the attack was cut short (for example by a push).
type AttackFinished struct {
	Interrupted bool
}

// EventQueue is a simple FIFO queue. Events live until drained or until the
// frame ends and the host clears the queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events matching any of types in queue
// order, preserving the order of everything else.
func (q *EventQueue) DrainType(types ...EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if hasType(types, evt.Type) {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Event{}
	}
	q.items = kept
	return out
}

func hasType(types []EventType, t EventType) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

// Len reports how many events are queued.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Clear drops every queued event.
func (q *EventQueue) Clear() {
	if q == nil {
		return
	}
	q.items = nil
}
