package physics

import (
	"time"

	"github.com/shapepush/arena/internal/geom"
)

// Walls constrains body positions to the playable area.
type Walls interface {
	// Clamp returns p limited to the walls and whether it was changed on x / z.
	Clamp(p geom.Vec3) (out geom.Vec3, hitX, hitZ bool)
}

// Env carries the per-step environment shared by every body.
type Env struct {
	Gravity  geom.Vec3
	Friction float64 // floor friction coefficient
	Walls    Walls
}

// Step integrates b over dt with semi-implicit Euler, floor contact with
// Coulomb friction, linear drag, and wall clamping. Pending forces are consumed.
func Step(b *Body, dt time.Duration, env Env) {
	if !b.Enabled || b.Mass <= 0 {
		b.force = geom.Zero
		return
	}
	sec := dt.Seconds()

	acc := b.force.Div(b.Mass)
	if b.UseGravity {
		acc = acc.Add(env.Gravity)
	}
	b.force = geom.Zero

	v := b.Velocity.Add(acc.Scale(sec))

	grounded := b.Position.Y <= b.RestHeight+1e-6
	if grounded {
		if v.Y < 0 {
			v.Y = 0
		}
		v = applyFriction(v, env.Friction*env.Gravity.Len()*sec)
	}
	if b.Drag > 0 {
		v = v.Scale(1 / (1 + b.Drag*sec))
	}

	pos := b.Position.Add(v.Scale(sec))
	if pos.Y < b.RestHeight {
		pos.Y = b.RestHeight
		if v.Y < 0 {
			v.Y = 0
		}
	}
	if env.Walls != nil {
		var hitX, hitZ bool
		pos, hitX, hitZ = env.Walls.Clamp(pos)
		if hitX {
			v.X = 0
		}
		if hitZ {
			v.Z = 0
		}
	}

	b.Position = pos
	b.Velocity = v
}

// applyFriction removes up to dv of horizontal speed.
func applyFriction(v geom.Vec3, dv float64) geom.Vec3 {
	flat := v.Flat()
	speed := flat.Len()
	if speed <= dv {
		return geom.Vec3{Y: v.Y}
	}
	k := (speed - dv) / speed
	return geom.Vec3{X: v.X * k, Y: v.Y, Z: v.Z * k}
}

// Overlap reports whether two circles on the horizontal plane touch.
func Overlap(a geom.Vec3, ra float64, b geom.Vec3, rb float64) bool {
	return a.FlatDist(b) <= ra+rb
}

// StandardGravity is the default environment gravity.
var StandardGravity = geom.Vec3{Y: -9.81}

// GravityMagnitude is |g| for the environment.
func (e Env) GravityMagnitude() float64 { return e.Gravity.Len() }
