package ecs

import "testing"

func TestEventQueueDrainType(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventAttackFinished, Entity: 1})
	q.Push(Event{Type: EventPickupDismissed, Entity: 2})
	q.Push(Event{Type: EventAttackFinished, Entity: 3})

	got := q.DrainType(EventAttackFinished)
	if len(got) != 2 || got[0].Entity != 1 || got[1].Entity != 3 {
		t.Fatalf("unexpected drained events: %v", got)
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 remaining event, got %d", q.Len())
	}

	rest := q.Drain()
	if len(rest) != 1 || rest[0].Type != EventPickupDismissed {
		t.Fatalf("unexpected remaining events: %v", rest)
	}
	if q.Drain() != nil {
		t.Fatalf("queue should be empty after Drain")
	}
}

func TestEventQueueDrainSeveralTypesKeepsOrder(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventPickupShown, Entity: 1})
	q.Push(Event{Type: EventAttackFinished, Entity: 2})
	q.Push(Event{Type: EventPickupDismissed, Entity: 3})
	q.Push(Event{Type: EventPickupShown, Entity: 4})

	got := q.DrainType(EventPickupShown, EventPickupDismissed)
	want := []Entity{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), got)
	}
	for i, e := range want {
		if got[i].Entity != e {
			t.Fatalf("event %d: expected entity %d, got %d", i, e, got[i].Entity)
		}
	}
	if rest := q.Drain(); len(rest) != 1 || rest[0].Type != EventAttackFinished {
		t.Fatalf("unexpected remaining events: %v", rest)
	}
	if q.DrainType() != nil {
		t.Fatalf("expected nothing drained without types")
	}
}

func TestEventQueueNilSafe(t *testing.T) {
	var q *EventQueue
	q.Push(Event{Type: EventAttackFinished})
	if q.Len() != 0 || q.Drain() != nil || q.DrainType(EventAttackFinished) != nil {
		t.Fatalf("nil queue should be inert")
	}
	q.Clear()
}
