package physics

import "github.com/shapepush/arena/internal/geom"

// CollisionMode mirrors the collision detection modes of the host engine.
type CollisionMode uint8

const (
	CollisionDiscrete CollisionMode = iota
	CollisionContinuous
	CollisionContinuousDynamic
)

// Body is a rigid body with frozen rotation. Forces accumulate between steps
// and are cleared by Step.
type Body struct {
	Mass           float64
	Drag           float64
	UseGravity     bool
	FreezeRotation bool
	Collision      CollisionMode
	Enabled        bool

	// RestHeight is the y the body rests at on the floor (half height * scale).
	RestHeight float64

	Position geom.Vec3
	Velocity geom.Vec3

	force geom.Vec3
}

// Settings parameterizes a body when a shape is decorated.
type Settings struct {
	Mass       float64
	Drag       float64
	UseGravity bool
	RestHeight float64
	Collision  CollisionMode
}

// Configure resets the body to a fresh state at pos with the given settings.
func (b *Body) Configure(pos geom.Vec3, s Settings) {
	b.Mass = s.Mass
	b.Drag = s.Drag
	b.UseGravity = s.UseGravity
	b.FreezeRotation = true
	b.Collision = s.Collision
	b.RestHeight = s.RestHeight
	b.Position = pos
	b.Velocity = geom.Zero
	b.force = geom.Zero
	b.Enabled = true
}

// Disable stops simulation and drops pending forces and velocity.
func (b *Body) Disable() {
	b.Enabled = false
	b.Velocity = geom.Zero
	b.force = geom.Zero
}

func (b *Body) AddForce(f geom.Vec3) {
	if !b.Enabled {
		return
	}
	b.force = b.force.Add(f)
}

// Speed is the magnitude of the current velocity.
func (b *Body) Speed() float64 { return b.Velocity.Len() }

// Force returns the force accumulated since the last step.
func (b *Body) Force() geom.Vec3 { return b.force }
