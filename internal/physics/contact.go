package physics

import "github.com/shapepush/arena/internal/core/ecs"

// ContactPhase is the lifecycle stage of a contact between the player and a body.
type ContactPhase uint8

const (
	ContactBegin ContactPhase = iota
	ContactStay
	ContactEnd
)

func (p ContactPhase) String() string {
	switch p {
	case ContactBegin:
		return "begin"
	case ContactStay:
		return "stay"
	case ContactEnd:
		return "end"
	}
	return "unknown"
}

// Contact is one player-vs-entity overlap transition.
type Contact struct {
	Entity ecs.EntityID
	Phase  ContactPhase
}

// ContactTracker turns per-step overlap sets into begin/stay/end transitions.
type ContactTracker struct {
	active map[ecs.EntityID]bool
	seen   map[ecs.EntityID]bool
	out    []Contact
}

func NewContactTracker() *ContactTracker {
	return &ContactTracker{
		active: make(map[ecs.EntityID]bool, 16),
		seen:   make(map[ecs.EntityID]bool, 16),
		out:    make([]Contact, 0, 16),
	}
}

// Observe records that id overlaps the player this step.
func (t *ContactTracker) Observe(id ecs.EntityID) {
	t.seen[id] = true
}

// Resolve closes the step and returns its transitions. The returned slice is
// reused by the next call.
func (t *ContactTracker) Resolve() []Contact {
	t.out = t.out[:0]
	for id := range t.seen {
		if t.active[id] {
			t.out = append(t.out, Contact{Entity: id, Phase: ContactStay})
		} else {
			t.active[id] = true
			t.out = append(t.out, Contact{Entity: id, Phase: ContactBegin})
		}
	}
	for id := range t.active {
		if !t.seen[id] {
			delete(t.active, id)
			t.out = append(t.out, Contact{Entity: id, Phase: ContactEnd})
		}
	}
	clear(t.seen)
	return t.out
}

// Forget drops id without emitting an end transition (entity left the stage).
func (t *ContactTracker) Forget(id ecs.EntityID) {
	delete(t.active, id)
	delete(t.seen, id)
}
