package event

import (
	"github.com/shapepush/arena/internal/core/ecs"
	"github.com/shapepush/arena/internal/geom"
	"github.com/shapepush/arena/internal/shape"
)

// Collected is published once per completed recycle.
// RunID and Level are the run and level the shape was pushed out in.
type Collected struct {
	Entity ecs.EntityID
	Kind   shape.Kind
	Mass   float64
	RunID  string
	Level  int
}

// PushMoved is published each physics step a pushed shape is still moving.
type PushMoved struct {
	Entity ecs.EntityID
}

// PushStill is published each physics step a pushed shape stays put.
// Push is the last force applied to it.
type PushStill struct {
	Entity ecs.EntityID
	Push   geom.Vec3
}

// PushEnded is published when the player stops touching a shape.
type PushEnded struct {
	Entity ecs.EntityID
}

// SpawnFailed reports that a replacement could not be acquired.
type SpawnFailed struct {
	Kind shape.Kind
	Err  error
}

// Scored is published after the scorer books a collection.
type Scored struct {
	Kind       shape.Kind
	Delta      float64
	LevelScore float64
	Total      float64
	Penalty    bool
}

type LevelUp struct {
	Next int
}

// RunFinished ends the run identified by RunID. Reason is "score" or "blocked".
type RunFinished struct {
	RunID  string
	Reason string
}
