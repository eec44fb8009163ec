package ecs

// Event is a gameplay notification pushed by systems and drained by the
// host once per frame (kill feed, zone announcements). Systems never
// subscribe to events; they communicate through component state. This
// queue exists only for the presentation layer.
type Event struct {
	Type string
	Data any
}

const (
	EventKill      = "kill"
	EventZonePhase = "zone_phase"
	EventMatchOver = "match_over"
)

// KillEvent reports an elimination.
type KillEvent struct {
	Victim    Entity
	Killer    Entity
	Placement int
}

// ZonePhaseEvent reports a zone phase advance.
type ZonePhaseEvent struct {
	Phase  int
	Radius float64
}

// MatchOverEvent reports the end of a match.
type MatchOverEvent struct {
	Winner Entity
}

// EventQueue is a FIFO drained by the host each frame.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Events returns the world's event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}
