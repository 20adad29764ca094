package pool

import (
	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/physics"
	"github.com/shapepush/arena/internal/push"
	"github.com/shapepush/arena/internal/shape"
)

// Membership records which set of its pool an entity belongs to.
type Membership uint8

const (
	Pooled Membership = iota
	Active
)

func (m Membership) String() string {
	if m == Active {
		return "active"
	}
	return "pooled"
}

// Container is the scene parent an entity is attached to.
type Container uint8

const (
	PoolContainer Container = iota
	StageContainer
)

// Transform is the local pose of an entity under its container.
type Transform struct {
	Position geom.Vec3
	Scale    float64
}

// NeutralPose is the pose of a freshly acquired or released entity.
var NeutralPose = Transform{Scale: 1}

// Material is the visual state the renderer reads.
type Material struct {
	Visible bool
	Opacity float64
}

func (m *Material) reset(visible bool) {
	m.Visible = visible
	m.Opacity = 1
}

// Entity is one spawnable shape slot. The capability bundle (Body, Push,
// Material) is allocated with the slot and lives as long as the session.
type Entity struct {
	ID         ecs.EntityID
	Kind       shape.Kind
	Membership Membership
	Parent     Container
	Spawn      uint32 // bumped on every acquire
	Transform  Transform
	Tint       shape.Tint
	Mass       float64

	Body     *physics.Body
	Push     *push.Tracker
	Material *Material

	owner *Pool
}

func newEntity(id ecs.EntityID, kind shape.Kind, owner *Pool) *Entity {
	return &Entity{
		ID:         id,
		Kind:       kind,
		Membership: Pooled,
		Parent:     PoolContainer,
		Transform:  NeutralPose,
		Body:       &physics.Body{},
		Push:       &push.Tracker{},
		Material:   &Material{Opacity: 1},
		owner:      owner,
	}
}

// Name renders the display name: <Kind>Model on stage, <Kind>Instance in the pool.
func (e *Entity) Name() string {
	if e.Membership == Active {
		return e.Kind.String() + "Model"
	}
	return e.Kind.String() + "Instance"
}

// Active reports whether the entity is on stage.
func (e *Entity) Active() bool { return e.Membership == Active }

// Radius is the horizontal contact radius at the current scale.
func (e *Entity) Radius() float64 { return e.Kind.Radius() * e.Transform.Scale }

// Position is the simulated position while the body runs, else the transform.
func (e *Entity) Position() geom.Vec3 {
	if e.Body.Enabled {
		return e.Body.Position
	}
	return e.Transform.Position
}
