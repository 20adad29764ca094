package system

import (
	"sort"
	"time"
)

// maxStepsPerFrame bounds catch-up work after a long stall.
const maxStepsPerFrame = 8

// Runner executes systems in phase order. PhasePhysics runs on a fixed step
// fed from an accumulator; every other phase runs once per frame with the
// variable frame delta.
type Runner struct {
	systems []System
	sorted  bool

	fixedStep   time.Duration
	accumulator time.Duration
}

func NewRunner(fixedStep time.Duration) *Runner {
	if fixedStep <= 0 {
		fixedStep = 20 * time.Millisecond
	}
	return &Runner{
		systems:   make([]System, 0, 8),
		fixedStep: fixedStep,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) FixedStep() time.Duration { return r.fixedStep }

// Frame advances one variable-length frame: zero or more fixed physics steps,
// then every frame phase once. Returns the number of physics steps run.
func (r *Runner) Frame(dt time.Duration) int {
	r.ensureSorted()
	r.accumulator += dt
	steps := 0
	for r.accumulator >= r.fixedStep && steps < maxStepsPerFrame {
		r.TickPhase(PhasePhysics, r.fixedStep)
		r.accumulator -= r.fixedStep
		steps++
	}
	if steps == maxStepsPerFrame {
		r.accumulator = 0
	}
	for _, s := range r.systems {
		if s.Phase() != PhasePhysics {
			s.Update(dt)
		}
	}
	return steps
}

// TickPhase runs only the systems of the given phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
