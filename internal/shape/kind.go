package shape

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a name does not match any shape kind.
var ErrUnknownKind = errors.New("unknown shape kind")

// Kind is one of the primitive shapes that can be spawned on stage.
type Kind uint8

const (
	Sphere Kind = iota
	Capsule
	Cylinder
	Cube
	Plane
	Quad
	kindCount
)

var kindNames = [kindCount]string{
	Sphere:   "Sphere",
	Capsule:  "Capsule",
	Cylinder: "Cylinder",
	Cube:     "Cube",
	Plane:    "Plane",
	Quad:     "Quad",
}

// Vertical half-extent of each primitive at unit scale.
var halfHeights = [kindCount]float64{
	Sphere:   0.5,
	Capsule:  1.0,
	Cylinder: 1.0,
	Cube:     0.5,
	Plane:    0.0,
	Quad:     0.5,
}

// Horizontal contact radius of each primitive at unit scale.
var radii = [kindCount]float64{
	Sphere:   0.5,
	Capsule:  0.5,
	Cylinder: 0.5,
	Cube:     0.5,
	Plane:    5.0,
	Quad:     0.5,
}

// All returns every kind in declaration order.
func All() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// HalfHeight is the vertical half-extent at unit scale.
func (k Kind) HalfHeight() float64 {
	if !k.Valid() {
		return 0
	}
	return halfHeights[k]
}

// Radius is the horizontal contact radius at unit scale.
func (k Kind) Radius() float64 {
	if !k.Valid() {
		return 0
	}
	return radii[k]
}

// ParseKind resolves a canonical kind name ("Cube", "Sphere", ...).
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
