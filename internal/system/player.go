package system

import (
	"time"

	"github.com/shapepush/arena/internal/core/event"
	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/player"
)

// Steering supplies the player's movement input each frame.
type Steering func() geom.Vec3

// PlayerSystem applies input and ends the run when the player is blocked.
// Phase 2 (Update).
type PlayerSystem struct {
	player *player.Player
	bus    *event.Bus
	steer  Steering
	run    func() string
}

func NewPlayerSystem(p *player.Player, bus *event.Bus, steer Steering, run func() string) *PlayerSystem {
	return &PlayerSystem{player: p, bus: bus, steer: steer, run: run}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlayerSystem) Update(dt time.Duration) {
	if s.steer != nil {
		s.player.SetInput(s.steer())
	}
	if s.player.Update(dt) {
		event.Emit(s.bus, event.RunFinished{RunID: s.run(), Reason: "blocked"})
	}
}
