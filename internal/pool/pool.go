package pool

import (
	"errors"
	"fmt"
	"math"

	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/shape"
)

// ErrCapacityExhausted is returned by Acquire when the pool is empty and may
// not grow past its ceiling. It is a configuration error for that kind.
var ErrCapacityExhausted = errors.New("pool capacity exhausted")

// IDSource allocates entity ids. *ecs.World satisfies it.
type IDSource interface {
	CreateEntity() ecs.EntityID
}

// Config sizes one pool. Ceiling <= 0 lets the pool grow without bound.
type Config struct {
	Kind     shape.Kind
	Capacity int
	Ceiling  int
}

// Pool is a bounded set of reusable entities of one kind. Every entity is
// in exactly one of free or active; free+active == capacity at all times.
// Not safe for concurrent use; the game loop owns it.
type Pool struct {
	kind     shape.Kind
	capacity int
	ceiling  int
	ids      IDSource
	onAlloc  func(*Entity)

	free   []*Entity
	active []*Entity
	slot   map[ecs.EntityID]int // index into active
}

// New creates a pool and allocates cfg.Capacity entities into free.
// onAlloc, if non-nil, sees every entity the pool ever allocates.
func New(cfg Config, ids IDSource, onAlloc func(*Entity)) *Pool {
	ceiling := cfg.Ceiling
	if ceiling <= 0 {
		ceiling = math.MaxInt
	}
	capacity := max(cfg.Capacity, 0)
	if ceiling < capacity {
		ceiling = capacity
	}
	p := &Pool{
		kind:    cfg.Kind,
		ceiling: ceiling,
		ids:     ids,
		onAlloc: onAlloc,
		free:    make([]*Entity, 0, capacity),
		active:  make([]*Entity, 0, capacity),
		slot:    make(map[ecs.EntityID]int, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.allocate()
	}
	return p
}

func (p *Pool) Kind() shape.Kind { return p.kind }
func (p *Pool) Capacity() int    { return p.capacity }
func (p *Pool) Ceiling() int     { return p.ceiling }
func (p *Pool) Free() int        { return len(p.free) }
func (p *Pool) ActiveCount() int { return len(p.active) }

// Active returns a snapshot of the entities on stage.
func (p *Pool) Active() []*Entity {
	out := make([]*Entity, len(p.active))
	copy(out, p.active)
	return out
}

// Owns reports whether e was allocated by this pool.
func (p *Pool) Owns(e *Entity) bool { return e != nil && e.owner == p }

func (p *Pool) allocate() {
	e := newEntity(p.ids.CreateEntity(), p.kind, p)
	p.capacity++
	p.free = append(p.free, e)
	if p.onAlloc != nil {
		p.onAlloc(e)
	}
}

// Acquire moves one entity from free to active and returns it on stage at the
// neutral pose. An empty pool grows by one slot unless it sits at its ceiling.
func (p *Pool) Acquire() (*Entity, error) {
	if len(p.free) == 0 {
		if p.capacity >= p.ceiling {
			return nil, fmt.Errorf("%w: %s at %d", ErrCapacityExhausted, p.kind, p.capacity)
		}
		p.allocate()
	}

	e := p.free[len(p.free)-1]
	p.free[len(p.free)-1] = nil
	p.free = p.free[:len(p.free)-1]

	e.Membership = Active
	e.Parent = StageContainer
	e.Spawn++
	e.Transform = NeutralPose
	e.Material.reset(true)
	e.Push.Reset()
	e.Body.Configure(e.Transform.Position, bodyDefaults)

	p.slot[e.ID] = len(p.active)
	p.active = append(p.active, e)
	return e, nil
}

// Release returns e to the pool. Releasing an entity that is already pooled,
// or that this pool does not own, is a no-op and returns false.
func (p *Pool) Release(e *Entity) bool {
	if !p.Owns(e) || e.Membership != Active {
		return false
	}
	i, ok := p.slot[e.ID]
	if !ok {
		return false
	}
	last := len(p.active) - 1
	if i != last {
		moved := p.active[last]
		p.active[i] = moved
		p.slot[moved.ID] = i
	}
	p.active[last] = nil
	p.active = p.active[:last]
	delete(p.slot, e.ID)

	e.Body.Disable()
	e.Push.Reset()
	e.Material.reset(false)
	e.Transform = NeutralPose
	e.Parent = PoolContainer
	e.Membership = Pooled
	p.free = append(p.free, e)
	return true
}

// AllAsActive drains free onto the stage and returns the whole active set.
func (p *Pool) AllAsActive() ([]*Entity, error) {
	for len(p.free) > 0 {
		if _, err := p.Acquire(); err != nil {
			return nil, err
		}
	}
	return p.Active(), nil
}

// RecycleAll returns every active entity to the pool and reports how many moved.
func (p *Pool) RecycleAll() int {
	n := 0
	for len(p.active) > 0 {
		if p.Release(p.active[len(p.active)-1]) {
			n++
		}
	}
	return n
}

// Each visits every entity the pool owns, free ones first.
func (p *Pool) Each(fn func(*Entity)) {
	for _, e := range p.free {
		fn(e)
	}
	for _, e := range p.active {
		fn(e)
	}
}
