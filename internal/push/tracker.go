package push

import "github.com/shapepush/arena/internal/geom"

const (
	// StillThreshold is the speed at or below which a pushed body counts as held.
	StillThreshold = 0.01
	// ForceFactor scales gravity * level into the push force. Tuned by play.
	ForceFactor = 1.3
)

// State is the push state of one shape on stage.
type State uint8

const (
	Idle State = iota
	BeingPushed
	Stuck
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BeingPushed:
		return "being_pushed"
	case Stuck:
		return "stuck"
	}
	return "unknown"
}

// Signal is what a physics step observed for a pushed shape.
type Signal uint8

const (
	SignalNone  Signal = iota
	SignalMoved        // body still moving under the push
	SignalStill        // body held, episode already reported
	SignalStuck        // body held, first time this episode
)

// Force computes the push applied by a pusher at from onto a shape at to:
// horizontal only, normalized, scaled by ForceFactor * |g| * level.
func Force(from, to geom.Vec3, gravity float64, level int) geom.Vec3 {
	dir := to.Sub(from).Flat().Normalize()
	return dir.Scale(ForceFactor * gravity * float64(level))
}

// Tracker is the per-shape push state machine. It is part of every pooled
// shape's capability bundle and reset whenever the shape is respawned.
type Tracker struct {
	state   State
	contact bool
	push    geom.Vec3
}

func (t *Tracker) State() State        { return t.state }
func (t *Tracker) LastPush() geom.Vec3 { return t.push }

// Warning reports the "about to recycle" highlight: on from the stuck
// transition until the contact episode ends.
func (t *Tracker) Warning() bool { return t.state == Stuck }

// Contact registers a begin/stay contact and returns the force to apply.
func (t *Tracker) Contact(from, to geom.Vec3, gravity float64, level int) geom.Vec3 {
	t.push = Force(from, to, gravity, level)
	t.contact = true
	if t.state == Idle {
		t.state = BeingPushed
	}
	return t.push
}

// Step classifies one physics step given the body's speed. SignalStuck is
// returned at most once per contact episode.
func (t *Tracker) Step(speed float64) Signal {
	if !t.contact || t.state == Idle {
		return SignalNone
	}
	if speed > StillThreshold {
		return SignalMoved
	}
	if t.state == BeingPushed {
		t.state = Stuck
		return SignalStuck
	}
	return SignalStill
}

// Release ends the contact episode. Reports whether a warning was cleared.
func (t *Tracker) Release() bool {
	cleared := t.state == Stuck
	t.contact = false
	t.state = Idle
	return cleared
}

// Reset returns the tracker to its spawn state.
func (t *Tracker) Reset() {
	*t = Tracker{}
}
