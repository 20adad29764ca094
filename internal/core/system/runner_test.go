package system

import (
	"testing"
	"time"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestFrameRunsFixedStepsThenPhases(t *testing.T) {
	var log []string
	r := NewRunner(10 * time.Millisecond)
	r.Register(recorder{PhaseOutput, "render", &log})
	r.Register(recorder{PhasePhysics, "physics", &log})
	r.Register(recorder{PhaseUpdate, "update", &log})

	steps := r.Frame(25 * time.Millisecond)
	if steps != 2 {
		t.Fatalf("expected 2 physics steps, got %d", steps)
	}
	want := []string{"physics", "physics", "update", "render"}
	if len(log) != len(want) {
		t.Fatalf("got %v want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("got %v want %v", log, want)
		}
	}

	// 5ms carried over + 5ms = one more step
	log = log[:0]
	if steps := r.Frame(5 * time.Millisecond); steps != 1 {
		t.Fatalf("expected carried accumulator to yield 1 step, got %d", steps)
	}
}

func TestFrameCapsCatchUp(t *testing.T) {
	var log []string
	r := NewRunner(time.Millisecond)
	r.Register(recorder{PhasePhysics, "physics", &log})
	if steps := r.Frame(time.Second); steps != maxStepsPerFrame {
		t.Fatalf("expected %d steps, got %d", maxStepsPerFrame, steps)
	}
	if steps := r.Frame(0); steps != 0 {
		t.Fatalf("accumulator should be dropped after a stall, got %d steps", steps)
	}
}
