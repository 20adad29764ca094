package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/shapepush/arena/internal/core/ecs"
	coresys "github.com/shapepush/arena/internal/core/system"
)

// CleanupSystem drains the world's destroy queue at the end of a frame.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	log       *zap.Logger
	destroyed int
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

// Destroyed is the number of entities removed over the system's lifetime.
func (s *CleanupSystem) Destroyed() int { return s.destroyed }

func (s *CleanupSystem) Update(_ time.Duration) {
	if s.world.Pending() == 0 {
		return
	}
	n := s.world.Flush()
	s.destroyed += n
	s.log.Debug("entities destroyed", zap.Int("count", n), zap.Int("live", s.world.Live()))
}
