package spawn

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/push"
	"github.com/shapepush/arena/internal/shape"
)

// fixed always draws the same value.
type fixed struct {
	f float64
	i int
}

func (r fixed) Float64() float64 { return r.f }
func (r fixed) IntN(n int) int   { return r.i % n }

var stage = arena.Measure(geom.V(10, 0.1, 6), geom.One)

func TestGrowthIsOneAtStart(t *testing.T) {
	d := NewDecorator(stage, nil, rand.New(rand.NewPCG(7, 7)))
	for i := 0; i < 100; i++ {
		dec := d.Decorate(shape.Cube, 0, 1)
		if dec.Growth != 1 || dec.Scale != 1 {
			t.Fatalf("level 1, t=0: growth=%f scale=%f", dec.Growth, dec.Scale)
		}
		if dec.Mass != 1 {
			t.Fatalf("mass=%f want 1", dec.Mass)
		}
	}
}

func TestGrowthNeverBelowOne(t *testing.T) {
	d := NewDecorator(stage, nil, rand.New(rand.NewPCG(1, 9)))
	for level := 1; level <= 4; level++ {
		for _, elapsed := range []time.Duration{0, time.Second, time.Minute, 10 * time.Minute} {
			for i := 0; i < 50; i++ {
				g := d.Growth(elapsed, level)
				hi := 1 + float64(level)*elapsed.Minutes()
				if g < 1 || g > hi {
					t.Fatalf("growth %f outside [1,%f] (level=%d elapsed=%s)", g, hi, level, elapsed)
				}
			}
		}
	}
}

func TestDecorateUpperDraw(t *testing.T) {
	d := NewDecorator(stage, nil, fixed{f: 1, i: 8})
	dec := d.Decorate(shape.Capsule, 2*time.Minute, 2)

	// growth = 1 + 1*(2*2) = 5
	if dec.Growth != 5 || dec.Scale != 5 {
		t.Fatalf("growth=%f", dec.Growth)
	}
	if dec.Mass != 10 {
		t.Fatalf("mass=%f want 10", dec.Mass)
	}
	// x = +10, y = 1.0*5, z = +6, all / level 2
	want := geom.V(5, 2.5, 3)
	if !dec.Position.ApproxEqual(want, 1e-9) {
		t.Fatalf("position=%+v want %+v", dec.Position, want)
	}
	if dec.Tint != shape.Black {
		t.Fatalf("tint=%v", dec.Tint)
	}
}

func TestDecorateStaysInsideBounds(t *testing.T) {
	d := NewDecorator(stage, nil, rand.New(rand.NewPCG(3, 4)))
	for level := 1; level <= 4; level++ {
		shrunk := stage.Shrink(level)
		for i := 0; i < 200; i++ {
			dec := d.Decorate(shape.Sphere, 5*time.Minute, level)
			if !shrunk.Contains(dec.Position) {
				t.Fatalf("level %d: %+v outside %+v", level, dec.Position, shrunk.HalfExtents())
			}
		}
	}
}

func TestPaletteKeepsDuplicateWeight(t *testing.T) {
	d := NewDecorator(stage, nil, rand.New(rand.NewPCG(5, 6)))
	counts := map[string]int{}
	const n = 9000
	for i := 0; i < n; i++ {
		counts[d.Decorate(shape.Cube, 0, 1).Tint.Name]++
	}
	// grey has two of nine entries
	if counts["grey"] < counts["red"]*3/2 {
		t.Fatalf("grey should be drawn about twice as often as red: %v", counts)
	}
	if len(counts) != 8 {
		t.Fatalf("expected 8 distinct tints, got %v", counts)
	}
}

func TestDressConfiguresBody(t *testing.T) {
	p := pool.New(pool.Config{Kind: shape.Cube, Capacity: 1}, ecs.NewWorld(), nil)
	e, _ := p.Acquire()
	e.Push.Contact(geom.Zero, geom.V(1, 0, 0), 9.81, 1)

	d := NewDecorator(stage, nil, fixed{f: 0.5, i: 0})
	dec := d.Dress(e, time.Minute, 1)

	if e.Mass != dec.Mass || e.Body.Mass != dec.Mass {
		t.Fatalf("mass not applied: entity=%f body=%f want %f", e.Mass, e.Body.Mass, dec.Mass)
	}
	if !e.Body.Enabled || !e.Body.UseGravity || e.Body.Drag != 0 || !e.Body.FreezeRotation {
		t.Fatalf("body not configured: %+v", e.Body)
	}
	if e.Body.RestHeight != 0.5*dec.Scale {
		t.Fatalf("rest height=%f", e.Body.RestHeight)
	}
	if e.Push.State() != push.Idle {
		t.Fatalf("push tracker must be reset on dress")
	}
	if e.Transform.Scale != dec.Scale || e.Body.Position != dec.Position {
		t.Fatalf("transform not applied")
	}
}
