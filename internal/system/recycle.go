package system

import (
	"time"

	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/recycle"
)

// RecycleSystem advances dissolve tasks by the frame delta.
// Phase 2 (Update).
type RecycleSystem struct {
	coord *recycle.Coordinator
}

func NewRecycleSystem(coord *recycle.Coordinator) *RecycleSystem {
	return &RecycleSystem{coord: coord}
}

func (s *RecycleSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *RecycleSystem) Update(dt time.Duration) {
	s.coord.Tick(dt)
}
