package pool

import (
	"fmt"

	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/shape"
)

// bodyDefaults is the body an entity gets on acquire, before decoration.
var bodyDefaults = physics.Settings{
	Mass:       1,
	UseGravity: true,
	Collision:  physics.CollisionContinuousDynamic,
}

// Set holds one pool per shape kind and an id index over all of them.
type Set struct {
	pools map[shape.Kind]*Pool
	kinds []shape.Kind
	index *ecs.Store[Entity]
}

// NewSet builds pools from cfgs in order. A kind listed twice keeps its first entry.
func NewSet(world *ecs.World, cfgs []Config) (*Set, error) {
	s := &Set{
		pools: make(map[shape.Kind]*Pool, len(cfgs)),
		index: ecs.NewStore[Entity](),
	}
	world.Attach(s.index)
	for _, cfg := range cfgs {
		if !cfg.Kind.Valid() {
			return nil, fmt.Errorf("pool set: %w: %d", shape.ErrUnknownKind, uint8(cfg.Kind))
		}
		if _, dup := s.pools[cfg.Kind]; dup {
			continue
		}
		s.pools[cfg.Kind] = New(cfg, world, func(e *Entity) { s.index.Set(e.ID, e) })
		s.kinds = append(s.kinds, cfg.Kind)
	}
	return s, nil
}

// Pool returns the pool for kind.
func (s *Set) Pool(kind shape.Kind) (*Pool, bool) {
	p, ok := s.pools[kind]
	return p, ok
}

// Kinds lists pooled kinds in configuration order.
func (s *Set) Kinds() []shape.Kind { return s.kinds }

// Lookup resolves an entity id from any pool.
func (s *Set) Lookup(id ecs.EntityID) (*Entity, bool) {
	return s.index.Get(id)
}

// Each visits every pool in configuration order.
func (s *Set) Each(fn func(*Pool)) {
	for _, k := range s.kinds {
		fn(s.pools[k])
	}
}

// ActiveEntities returns the on-stage entities of every kind.
func (s *Set) ActiveEntities() []*Entity {
	var out []*Entity
	s.Each(func(p *Pool) { out = append(out, p.active...) })
	return out
}

// ActiveCount is the number of entities on stage across all kinds.
func (s *Set) ActiveCount() int {
	n := 0
	s.Each(func(p *Pool) { n += p.ActiveCount() })
	return n
}

// AllAsActive drains every pool onto the stage.
func (s *Set) AllAsActive() ([]*Entity, error) {
	var out []*Entity
	for _, k := range s.kinds {
		es, err := s.pools[k].AllAsActive()
		if err != nil {
			return nil, err
		}
		out = append(out, es...)
	}
	return out, nil
}

// RecycleAll returns every active entity to its pool.
func (s *Set) RecycleAll() int {
	n := 0
	s.Each(func(p *Pool) { n += p.RecycleAll() })
	return n
}

// Teardown queues every allocated entity for destruction on world.
func (s *Set) Teardown(world *ecs.World) {
	s.Each(func(p *Pool) {
		p.Each(func(e *Entity) { world.MarkForDestruction(e.ID) })
	})
}
