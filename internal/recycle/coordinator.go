package recycle

import (
	"time"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/core/event"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/spawn"
)

// DefaultDissolve is how long a stuck shape takes to fade out.
const DefaultDissolve = 2 * time.Second

// Progress exposes the session clock and level used to decorate replacements.
type Progress interface {
	RunID() string
	Level() int
	Elapsed() time.Duration
}

type phase uint8

const (
	fading   phase = iota
	settling       // fade done, wait one frame before detaching
)

// task is one in-flight dissolve. spawn pins the acquire generation so a
// task never touches a slot that was recycled and reused underneath it.
type task struct {
	entity  *pool.Entity
	spawn   uint32
	elapsed time.Duration
	phase   phase
}

// Coordinator runs dissolve -> detach -> release -> respawn for stuck shapes.
// Each shape's sequence is an independent task advanced by Tick.
type Coordinator struct {
	pools    *pool.Set
	deco     *spawn.Decorator
	bus      *event.Bus
	progress Progress
	log      *zap.Logger
	dissolve time.Duration

	tasks map[ecs.EntityID]*task
	order []ecs.EntityID
}

func NewCoordinator(pools *pool.Set, deco *spawn.Decorator, bus *event.Bus, progress Progress, dissolve time.Duration, log *zap.Logger) *Coordinator {
	if dissolve <= 0 {
		dissolve = DefaultDissolve
	}
	return &Coordinator{
		pools:    pools,
		deco:     deco,
		bus:      bus,
		progress: progress,
		log:      log,
		dissolve: dissolve,
		tasks:    make(map[ecs.EntityID]*task, 8),
		order:    make([]ecs.EntityID, 0, 8),
	}
}

// Begin starts recycling e. It returns false when e is not on stage or is
// already dissolving, so a stuck episode recycles exactly once.
func (c *Coordinator) Begin(e *pool.Entity) bool {
	if e == nil || !e.Active() {
		return false
	}
	t, ok := c.tasks[e.ID]
	if ok && t.spawn == e.Spawn {
		return false
	}
	if !ok {
		c.order = append(c.order, e.ID)
	}
	c.tasks[e.ID] = &task{entity: e, spawn: e.Spawn}
	e.Material.Opacity = 1
	return true
}

// Dissolving reports whether e has an in-flight task.
func (c *Coordinator) Dissolving(e *pool.Entity) bool {
	t, ok := c.tasks[e.ID]
	return ok && t.spawn == e.Spawn
}

// Pending is the number of in-flight tasks.
func (c *Coordinator) Pending() int { return len(c.tasks) }

// Tick advances every task by dt and returns how many completed a recycle.
func (c *Coordinator) Tick(dt time.Duration) int {
	done := 0
	keep := c.order[:0]
	for _, id := range c.order {
		t := c.tasks[id]
		if c.advance(t, dt) {
			delete(c.tasks, id)
			if c.finalize(t) {
				done++
			}
			continue
		}
		keep = append(keep, id)
	}
	c.order = keep
	return done
}

// advance steps a task and reports whether it is ready to finalize.
func (c *Coordinator) advance(t *task, dt time.Duration) bool {
	e := t.entity
	if !e.Active() || e.Spawn != t.spawn {
		return true
	}
	switch t.phase {
	case fading:
		t.elapsed += dt
		if t.elapsed >= c.dissolve {
			e.Material.Opacity = 0
			t.phase = settling
			return false
		}
		e.Material.Opacity = 1 - float64(t.elapsed)/float64(c.dissolve)
		return false
	default:
		return true
	}
}

func (c *Coordinator) finalize(t *task) bool {
	e := t.entity
	if !e.Active() || e.Spawn != t.spawn {
		c.log.Debug("recycle dropped, shape left the stage", zap.Uint64("entity", uint64(e.ID)))
		return false
	}
	p, ok := c.pools.Pool(e.Kind)
	if !ok || !p.Owns(e) {
		c.log.Warn("recycle skipped: shape kind has no pool",
			zap.String("name", e.Name()),
			zap.Uint8("kind", uint8(e.Kind)),
		)
		// left on stage: undo the fade and end the push episode
		e.Material.Opacity = 1
		e.Push.Release()
		return false
	}

	mass := e.Body.Mass
	e.Body.Disable()
	e.Push.Reset()
	if !p.Release(e) {
		return false
	}
	event.Emit(c.bus, event.Collected{
		Entity: e.ID,
		Kind:   e.Kind,
		Mass:   mass,
		RunID:  c.progress.RunID(),
		Level:  c.progress.Level(),
	})

	next, err := p.Acquire()
	if err != nil {
		c.log.Error("replacement spawn failed", zap.Stringer("kind", e.Kind), zap.Error(err))
		event.Emit(c.bus, event.SpawnFailed{Kind: e.Kind, Err: err})
		return true
	}
	dec := c.deco.Dress(next, c.progress.Elapsed(), c.progress.Level())
	c.log.Debug("shape recycled",
		zap.Stringer("kind", e.Kind),
		zap.Float64("mass", mass),
		zap.Float64("next_scale", dec.Scale),
	)
	return true
}

// Clear drops every in-flight task without finalizing. Used when the stage
// is rebuilt wholesale (level change, restart).
func (c *Coordinator) Clear() {
	clear(c.tasks)
	c.order = c.order[:0]
}
