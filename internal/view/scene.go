// Package view holds the frame snapshot handed to renderers.
package view

import (
	"github.com/shapepush/arena/internal/arena"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/shape"
)

// Sprite is one on-stage shape as a renderer sees it.
type Sprite struct {
	Kind     shape.Kind
	Position geom.Vec3
	Radius   float64
	Tint     shape.Tint
	Opacity  float64
	Warning  bool
	Fading   bool // dissolving before recycle
}

// Scene is a read-only snapshot of one frame.
type Scene struct {
	Bounds       arena.Bounds
	Player       geom.Vec3
	PlayerRadius float64
	Braked       bool
	Sprites      []Sprite
	Level        int
	LevelScore   int
	Total        int
	RunID        string
}

// Renderer draws scenes. Implementations must not retain s after returning.
type Renderer interface {
	Render(s Scene)
}
