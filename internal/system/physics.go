package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/core/event"
	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/player"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/push"
	"github.com/shapepush/arena/internal/recycle"
)

// solidFraction is the share of the touching distance the player cannot
// cross, so a pressed shape stays in contact instead of being walked through.
const solidFraction = 0.8

// PhysicsSystem runs one fixed physics step: player contacts feed push
// trackers, bodies integrate, and each pushed shape is classified as moving,
// still, or stuck. Stuck shapes start recycling.
// Phase 0 (Physics).
type PhysicsSystem struct {
	pools    *pool.Set
	player   *player.Player
	env      physics.Env
	contacts *physics.ContactTracker
	coord    *recycle.Coordinator
	bus      *event.Bus
	progress recycle.Progress
	log      *zap.Logger
}

func NewPhysicsSystem(pools *pool.Set, p *player.Player, env physics.Env, coord *recycle.Coordinator, bus *event.Bus, progress recycle.Progress, log *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{
		pools:    pools,
		player:   p,
		env:      env,
		contacts: physics.NewContactTracker(),
		coord:    coord,
		bus:      bus,
		progress: progress,
		log:      log,
	}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

// Contacts exposes the tracker so a stage rebuild can forget stale overlaps.
func (s *PhysicsSystem) Contacts() *physics.ContactTracker { return s.contacts }

func (s *PhysicsSystem) Update(dt time.Duration) {
	active := s.pools.ActiveEntities()
	from := s.player.Position()
	level := s.progress.Level()
	g := s.env.GravityMagnitude()

	for _, e := range active {
		if physics.Overlap(from, s.player.Radius(), e.Position(), e.Radius()) {
			s.contacts.Observe(e.ID)
		}
	}
	for _, c := range s.contacts.Resolve() {
		e, ok := s.pools.Lookup(c.Entity)
		if !ok {
			continue
		}
		switch c.Phase {
		case physics.ContactBegin, physics.ContactStay:
			e.Body.AddForce(e.Push.Contact(from, e.Position(), g, level))
		case physics.ContactEnd:
			e.Push.Release()
			event.Emit(s.bus, event.PushEnded{Entity: e.ID})
		}
	}

	for _, e := range active {
		physics.Step(e.Body, dt, s.env)
		e.Transform.Position = e.Body.Position
	}

	for _, e := range active {
		switch e.Push.Step(e.Body.Speed()) {
		case push.SignalMoved:
			event.Emit(s.bus, event.PushMoved{Entity: e.ID})
		case push.SignalStuck:
			if s.coord.Begin(e) {
				s.log.Debug("shape stuck", zap.String("name", e.Name()), zap.Float64("mass", e.Body.Mass))
			}
			event.Emit(s.bus, event.PushStill{Entity: e.ID, Push: e.Push.LastPush()})
		case push.SignalStill:
			event.Emit(s.bus, event.PushStill{Entity: e.ID, Push: e.Push.LastPush()})
		}
	}

	s.separate(active)
}

// separate keeps the player out of the solid core of every shape.
func (s *PhysicsSystem) separate(active []*pool.Entity) {
	pos := s.player.Position()
	for _, e := range active {
		at := e.Position()
		core := (s.player.Radius() + e.Radius()) * solidFraction
		off := pos.Sub(at).Flat()
		d := off.Len()
		if d >= core || d < 1e-9 {
			continue
		}
		pos = at.Flat().Add(off.Scale(core / d))
		pos.Y = s.player.Position().Y
	}
	if pos != s.player.Position() {
		s.player.Place(pos)
	}
}
