package system

import (
	"time"

	coresys "github.com/shapepush/arena/internal/core/system"
	"github.com/shapepush/arena/internal/view"
)

// RenderSystem hands a frame snapshot to the renderer.
// Phase 4 (Output).
type RenderSystem struct {
	renderer view.Renderer
	snapshot func() view.Scene
}

func NewRenderSystem(r view.Renderer, snapshot func() view.Scene) *RenderSystem {
	return &RenderSystem{renderer: r, snapshot: snapshot}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderSystem) Update(_ time.Duration) {
	s.renderer.Render(s.snapshot())
}
