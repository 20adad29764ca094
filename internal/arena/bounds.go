package arena

import "github.com/shapepush/arena/internal/geom"

// Bounds holds the horizontal half-extents of the stage. It is measured once per
// session and read-only afterwards.
type Bounds struct {
	half geom.Vec3
}

// Measure computes bounds from the stage's rendered half-extents scaled
// component-wise by the stage container's scale.
func Measure(extents, scale geom.Vec3) Bounds {
	h := extents.Mul(scale)
	return Bounds{half: geom.Vec3{X: abs(h.X), Y: abs(h.Y), Z: abs(h.Z)}}
}

func (b Bounds) HalfExtents() geom.Vec3 { return b.half }
func (b Bounds) HalfX() float64         { return b.half.X }
func (b Bounds) HalfZ() float64         { return b.half.Z }

// Contains reports whether p lies within the horizontal footprint.
func (b Bounds) Contains(p geom.Vec3) bool {
	return p.X >= -b.half.X && p.X <= b.half.X && p.Z >= -b.half.Z && p.Z <= b.half.Z
}

// Clamp limits p to the horizontal footprint, reporting which axes were hit.
func (b Bounds) Clamp(p geom.Vec3) (geom.Vec3, bool, bool) {
	hitX, hitZ := false, false
	if p.X > b.half.X {
		p.X, hitX = b.half.X, true
	} else if p.X < -b.half.X {
		p.X, hitX = -b.half.X, true
	}
	if p.Z > b.half.Z {
		p.Z, hitZ = b.half.Z, true
	} else if p.Z < -b.half.Z {
		p.Z, hitZ = -b.half.Z, true
	}
	return p, hitX, hitZ
}

// Shrink returns bounds scaled down by level, the footprint shapes are placed in.
func (b Bounds) Shrink(level int) Bounds {
	if level < 1 {
		level = 1
	}
	return Bounds{half: b.half.Div(float64(level))}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
