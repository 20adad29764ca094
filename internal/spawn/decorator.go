package spawn

import (
	"time"

	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/pool"
	"github.com/shapepush/arena/internal/shape"
)

// Random is the draw source. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Decoration is the procedural look and heft of one spawn.
type Decoration struct {
	Growth   float64
	Scale    float64
	Position geom.Vec3
	Tint     shape.Tint
	Mass     float64
}

// Decorator places, sizes, paints and weighs shapes from game time and level.
type Decorator struct {
	bounds  arena.Bounds
	palette []shape.Tint
	rng     Random
}

// NewDecorator returns a decorator over bounds. An empty palette falls back to
// shape.DefaultPalette.
func NewDecorator(bounds arena.Bounds, palette []shape.Tint, rng Random) *Decorator {
	if len(palette) == 0 {
		palette = shape.DefaultPalette()
	}
	return &Decorator{bounds: bounds, palette: palette, rng: rng}
}

func (d *Decorator) Bounds() arena.Bounds { return d.bounds }

func (d *Decorator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*d.rng.Float64()
}

// Growth draws 1 + U(0, level*minutes). It never drops below 1.
func (d *Decorator) Growth(elapsed time.Duration, level int) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	return 1 + d.uniform(0, float64(level)*elapsed.Minutes())
}

// Decorate computes a decoration for kind. Level below 1 counts as 1.
func (d *Decorator) Decorate(kind shape.Kind, elapsed time.Duration, level int) Decoration {
	level = max(level, 1)
	growth := d.Growth(elapsed, level)

	// stage extents are in world scale; higher levels use a proportionally smaller stage
	area := d.bounds.Shrink(level)
	pos := geom.Vec3{
		X: d.uniform(-area.HalfX(), area.HalfX()),
		Y: kind.HalfHeight() * growth / float64(level),
		Z: d.uniform(-area.HalfZ(), area.HalfZ()),
	}

	return Decoration{
		Growth:   growth,
		Scale:    growth,
		Position: pos,
		Tint:     d.palette[d.rng.IntN(len(d.palette))],
		Mass:     float64(level) * growth,
	}
}

// Apply writes dec into e and readies its body and push tracker. The entity
// must already be active.
func (d *Decorator) Apply(e *pool.Entity, dec Decoration) {
	e.Transform = pool.Transform{Position: dec.Position, Scale: dec.Scale}
	e.Tint = dec.Tint
	e.Mass = dec.Mass
	e.Body.Configure(dec.Position, physics.Settings{
		Mass:       dec.Mass,
		Drag:       0,
		UseGravity: true,
		RestHeight: e.Kind.HalfHeight() * dec.Scale,
		Collision:  physics.CollisionContinuousDynamic,
	})
	e.Push.Reset()
	e.Material.Visible = true
	e.Material.Opacity = 1
}

// Dress decorates e and applies the result.
func (d *Decorator) Dress(e *pool.Entity, elapsed time.Duration, level int) Decoration {
	dec := d.Decorate(e.Kind, elapsed, level)
	d.Apply(e, dec)
	return dec
}
