package player

import (
	"math"
	"testing"
	"time"

	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/geom"
)

var walls = arena.Measure(geom.V(5, 0, 5), geom.One)

func TestUpdateMovesByInput(t *testing.T) {
	p := New(2, 0.5, 20*time.Millisecond, walls)
	p.SetInput(geom.V(3, 7, 0))
	if blocked := p.Update(time.Second); blocked {
		t.Fatalf("free player reported blocked")
	}
	if !p.Position().ApproxEqual(geom.V(2, 0, 0), 1e-9) {
		t.Fatalf("pos=%+v", p.Position())
	}
}

func TestWallsClampMovement(t *testing.T) {
	p := New(10, 0.5, 20*time.Millisecond, walls)
	p.SetInput(geom.V(0, 0, 1))
	p.Update(time.Second)
	if p.Position().Z != 5 {
		t.Fatalf("pos=%+v", p.Position())
	}
}

func TestAvoidSidestepsAndBrakes(t *testing.T) {
	p := New(5, 0.5, 200*time.Millisecond, walls)
	p.Avoid(geom.V(0, 3, 1)) // pushing along +z
	if !p.Braked() {
		t.Fatalf("avoid must brake")
	}
	// one unit sideways, perpendicular to the push
	pos := p.Position()
	if math.Abs(pos.Z) > 1e-9 || math.Abs(math.Abs(pos.X)-1) > 1e-9 {
		t.Fatalf("sidestep=%+v", pos)
	}

	p.SetInput(geom.V(0, 0, 1))
	if p.Update(time.Second) {
		t.Fatalf("sidestep moved the player, not blocked")
	}
	if p.Position() != pos {
		t.Fatalf("braked player must ignore input")
	}
	p.ClearAvoid()
	p.Update(100 * time.Millisecond)
	if p.Position() == pos {
		t.Fatalf("released player should move again")
	}
}

func TestBrakedAndStillIsBlocked(t *testing.T) {
	p := New(5, 0.5, 200*time.Millisecond, walls)
	p.Reset(geom.V(5, 0, 5))
	p.Avoid(geom.V(-1, 0, 0)) // sidestep runs into the z wall
	if p.Position() != geom.V(5, 0, 5) {
		t.Fatalf("corner sidestep moved: %+v", p.Position())
	}
	if p.Update(BlockedAfter / 2) {
		t.Fatalf("blocked too early")
	}
	if !p.Update(BlockedAfter / 2) {
		t.Fatalf("player that cannot move while braked must be blocked")
	}
	p.ClearAvoid()
	if p.Update(BlockedAfter) {
		t.Fatalf("released player is never blocked")
	}
}

func TestAutopilotSteersToNearest(t *testing.T) {
	p := New(1, 0.5, time.Millisecond, walls)
	dir := Autopilot{}.Steer(p, []geom.Vec3{geom.V(0, 0, 4), geom.V(-2, 1, 0)})
	if !dir.ApproxEqual(geom.V(-1, 0, 0), 1e-9) {
		t.Fatalf("dir=%+v", dir)
	}
	if (Autopilot{}).Steer(p, nil) != geom.Zero {
		t.Fatalf("no targets should stop")
	}
}
