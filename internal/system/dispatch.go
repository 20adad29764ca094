package system

import (
	"time"

	"github.com/shapepush/arena/internal/core/event"
	coresys "github.com/shapepush/arena/internal/core/system"
)

// EventDispatchSystem delivers the events emitted since the previous frame.
// Handlers run here may emit again; those land in the next frame.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
