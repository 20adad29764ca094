package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/core/event"
	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/player"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/push"
	"github.com/shapepush/arena/internal/recycle"
	"github.com/shapepush/arena/internal/shape"
	"github.com/shapepush/arena/internal/spawn"
	"github.com/shapepush/arena/internal/view"
)

const step = 20 * time.Millisecond

type fixedProgress struct{}

func (fixedProgress) RunID() string          { return "run" }
func (fixedProgress) Level() int             { return 1 }
func (fixedProgress) Elapsed() time.Duration { return 0 }

type rig struct {
	pools  *pool.Set
	bus    *event.Bus
	coord  *recycle.Coordinator
	deco   *spawn.Decorator
	player *player.Player
	phys   *PhysicsSystem
	cube   *pool.Entity
}

func newRig(t *testing.T, mass float64, at geom.Vec3) *rig {
	t.Helper()
	pools, err := pool.NewSet(ecs.NewWorld(), []pool.Config{{Kind: shape.Cube, Capacity: 1}})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if _, err := pools.AllAsActive(); err != nil {
		t.Fatalf("AllAsActive: %v", err)
	}
	bounds := arena.Measure(geom.V(5, 0, 5), geom.One)
	r := &rig{pools: pools, bus: event.NewBus()}
	r.deco = spawn.NewDecorator(bounds, nil, rand.New(rand.NewPCG(3, 4)))
	r.coord = recycle.NewCoordinator(pools, r.deco, r.bus, fixedProgress{}, time.Second, zap.NewNop())
	r.player = player.New(4, 0.5, step, bounds)
	env := physics.Env{Gravity: physics.StandardGravity, Friction: 0.6, Walls: bounds}
	r.phys = NewPhysicsSystem(pools, r.player, env, r.coord, r.bus, fixedProgress{}, zap.NewNop())

	cube, _ := pools.Pool(shape.Cube)
	r.cube = cube.Active()[0]
	r.deco.Apply(r.cube, spawn.Decoration{Growth: 1, Scale: 1, Position: at, Tint: shape.Red, Mass: mass})
	return r
}

func TestLightShapeMoves(t *testing.T) {
	r := newRig(t, 1, geom.V(0.9, 0.5, 0))
	var moved int
	event.Subscribe(r.bus, func(event.PushMoved) { moved++ })

	start := r.cube.Position()
	r.phys.Update(step)
	r.bus.Flush()

	if moved != 1 {
		t.Fatalf("moved events=%d", moved)
	}
	if r.cube.Position().X <= start.X {
		t.Fatalf("cube did not move away from the player: %+v", r.cube.Position())
	}
	if r.cube.Push.State() != push.BeingPushed || r.coord.Pending() != 0 {
		t.Fatalf("moving shape must not recycle")
	}
}

func TestHeavyShapeGetsStuckOnce(t *testing.T) {
	r := newRig(t, 10, geom.V(0.9, 0.5, 0))
	var still []event.PushStill
	event.Subscribe(r.bus, func(ev event.PushStill) { still = append(still, ev) })

	for range 3 {
		r.phys.Update(step)
	}
	r.bus.Flush()

	if len(still) != 3 || still[0].Entity != r.cube.ID {
		t.Fatalf("still events=%+v", still)
	}
	if still[0].Push.X <= 0 {
		t.Fatalf("push should point from player to shape: %+v", still[0].Push)
	}
	if r.cube.Push.State() != push.Stuck || !r.cube.Push.Warning() {
		t.Fatalf("state=%v warning=%v", r.cube.Push.State(), r.cube.Push.Warning())
	}
	if r.coord.Pending() != 1 {
		t.Fatalf("stuck shape should start exactly one recycle, pending=%d", r.coord.Pending())
	}
}

func TestLeavingContactClearsWarning(t *testing.T) {
	r := newRig(t, 10, geom.V(0.9, 0.5, 0))
	var ended int
	event.Subscribe(r.bus, func(event.PushEnded) { ended++ })

	r.phys.Update(step)
	r.player.Place(geom.V(-4, 0, -4))
	r.phys.Update(step)
	r.bus.Flush()

	if ended != 1 {
		t.Fatalf("ended=%d", ended)
	}
	if r.cube.Push.Warning() || r.cube.Push.State() != push.Idle {
		t.Fatalf("release should reset the tracker")
	}
}

func TestPlayerIsKeptOutOfShapeCore(t *testing.T) {
	r := newRig(t, 10, geom.V(0.2, 0.5, 0))
	r.phys.Update(step)
	if d := r.player.Position().FlatDist(r.cube.Position()); d < 0.8-1e-9 {
		t.Fatalf("player overlaps shape core, dist=%f", d)
	}
}

func TestPlayerSystemReportsBlocked(t *testing.T) {
	bus := event.NewBus()
	bounds := arena.Measure(geom.V(5, 0, 5), geom.One)
	p := player.New(4, 0.5, step, bounds)
	p.Reset(geom.V(5, 0, 5))
	sys := NewPlayerSystem(p, bus, nil, func() string { return "run-1" })

	var got []event.RunFinished
	event.Subscribe(bus, func(ev event.RunFinished) { got = append(got, ev) })

	p.Avoid(geom.V(-1, 0, 0))
	sys.Update(player.BlockedAfter)
	bus.Flush()
	if len(got) != 1 || got[0].RunID != "run-1" || got[0].Reason != "blocked" {
		t.Fatalf("finished=%+v", got)
	}
}

type captured struct{ scenes []view.Scene }

func (c *captured) Render(s view.Scene) { c.scenes = append(c.scenes, s) }

func TestRunnerOrdersPhases(t *testing.T) {
	bus := event.NewBus()
	var delivered int
	event.Subscribe(bus, func(event.LevelUp) { delivered++ })

	out := &captured{}
	runner := coresys.NewRunner(step)
	runner.Register(NewRenderSystem(out, func() view.Scene { return view.Scene{Level: delivered} }))
	runner.Register(NewEventDispatchSystem(bus))

	event.Emit(bus, event.LevelUp{Next: 2})
	runner.Frame(step)

	if delivered != 1 {
		t.Fatalf("dispatch did not run")
	}
	if len(out.scenes) != 1 || out.scenes[0].Level != 1 {
		t.Fatalf("render must run after dispatch: %+v", out.scenes)
	}
}

func TestCleanupDrainsDestroyQueue(t *testing.T) {
	world := ecs.NewWorld()
	a, b := world.CreateEntity(), world.CreateEntity()
	world.MarkForDestruction(a)
	world.MarkForDestruction(b)

	sys := NewCleanupSystem(world, zap.NewNop())
	sys.Update(0)
	sys.Update(0)
	if sys.Destroyed() != 2 || world.Live() != 0 {
		t.Fatalf("destroyed=%d live=%d", sys.Destroyed(), world.Live())
	}
}
