package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePhysics    Phase = iota // 0: fixed-step contacts, push detection, integration
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: game logic (player, recycle tasks)
	PhasePostUpdate              // 3: spawn, level transitions
	PhaseOutput                  // 4: render
	PhaseCleanup                 // 5: destroy queued entities
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
