package physics

import (
	"testing"
	"time"

	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/geom"
)

type box struct{ half float64 }

func (b box) Clamp(p geom.Vec3) (geom.Vec3, bool, bool) {
	hitX, hitZ := false, false
	if p.X > b.half {
		p.X, hitX = b.half, true
	} else if p.X < -b.half {
		p.X, hitX = -b.half, true
	}
	if p.Z > b.half {
		p.Z, hitZ = b.half, true
	} else if p.Z < -b.half {
		p.Z, hitZ = -b.half, true
	}
	return p, hitX, hitZ
}

const step = 20 * time.Millisecond

func restingBody(mass float64) *Body {
	b := &Body{}
	b.Configure(geom.V(0, 0.5, 0), Settings{Mass: mass, UseGravity: true, RestHeight: 0.5})
	return b
}

func TestRestingBodyStaysStill(t *testing.T) {
	b := restingBody(1)
	env := Env{Gravity: StandardGravity, Friction: 0.6}
	for i := 0; i < 50; i++ {
		Step(b, step, env)
	}
	if b.Speed() > 1e-9 || b.Position.Y != 0.5 {
		t.Fatalf("resting body drifted: pos=%+v v=%+v", b.Position, b.Velocity)
	}
}

func TestPushOvercomesFrictionForLightBody(t *testing.T) {
	b := restingBody(1)
	env := Env{Gravity: StandardGravity, Friction: 0.6}
	push := geom.V(1.3*9.81, 0, 0)
	for i := 0; i < 10; i++ {
		b.AddForce(push)
		Step(b, step, env)
	}
	if b.Speed() <= 0.01 {
		t.Fatalf("light body should move, speed=%f", b.Speed())
	}
}

func TestHeavyBodyIsHeldByFriction(t *testing.T) {
	b := restingBody(4)
	env := Env{Gravity: StandardGravity, Friction: 0.6}
	b.AddForce(geom.V(1.3*9.81, 0, 0))
	Step(b, step, env)
	if b.Speed() > 0.01 {
		t.Fatalf("heavy body should stay, speed=%f", b.Speed())
	}
}

func TestWallStopsBody(t *testing.T) {
	b := restingBody(1)
	b.Position.X = 0.99
	env := Env{Gravity: StandardGravity, Walls: box{half: 1}}
	for i := 0; i < 5; i++ {
		b.AddForce(geom.V(20, 0, 0))
		Step(b, step, env)
	}
	if b.Position.X != 1 || b.Velocity.X != 0 {
		t.Fatalf("body should be pinned to the wall: pos=%+v v=%+v", b.Position, b.Velocity)
	}
}

func TestDisabledBodyIgnoresForces(t *testing.T) {
	b := restingBody(1)
	b.Disable()
	b.AddForce(geom.V(100, 0, 0))
	Step(b, step, Env{Gravity: StandardGravity})
	if b.Position.X != 0 || b.Speed() != 0 {
		t.Fatalf("disabled body moved")
	}
}

func TestContactTrackerTransitions(t *testing.T) {
	ct := NewContactTracker()
	id := ecs.EntityID(7)

	ct.Observe(id)
	if got := ct.Resolve(); len(got) != 1 || got[0].Phase != ContactBegin {
		t.Fatalf("expected begin, got %+v", got)
	}
	ct.Observe(id)
	if got := ct.Resolve(); len(got) != 1 || got[0].Phase != ContactStay {
		t.Fatalf("expected stay, got %+v", got)
	}
	if got := ct.Resolve(); len(got) != 1 || got[0].Phase != ContactEnd {
		t.Fatalf("expected end, got %+v", got)
	}
	if got := ct.Resolve(); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
}
