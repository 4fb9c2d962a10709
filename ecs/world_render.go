package ecs

import "github.com/hajimehoshi/ebiten/v2"

// RenderSystem draws ECS entities each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

// Draw calls all render-capable systems of both phases.
func (w *World) Draw(screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, sched := range []*Scheduler{w.update, w.late} {
		for _, s := range sched.Systems() {
			if rs, ok := s.(RenderSystem); ok {
				rs.Draw(w, screen)
			}
		}
	}
}
