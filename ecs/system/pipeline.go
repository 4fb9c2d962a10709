package system

import (
	"math/rand/v2"

	"github.com/milk9111/hearthlight/ecs"
)

// Install registers the frame pipeline on w in execution order and returns
// the render system, which also runs in the late phase to track its focus.
// rng drives torch flicker; nil seeds from the clock.
func Install(w *ecs.World, input InputSource, rng *rand.Rand) *RenderSystem {
	w.AddSystem(NewInputSystem(input))
	w.AddSystem(NewCameraControlSystem())
	w.AddSystem(NewPlayerControllerSystem())
	w.AddSystem(NewTriggerSystem())
	w.AddSystem(NewTorchSystem(rng))
	w.AddSystem(NewWeaponPickupSystem())
	w.AddSystem(NewAttachmentSystem())
	w.AddSystem(NewDayNightSystem())

	render := NewRenderSystem()
	w.AddLateSystem(NewCameraFollowSystem())
	w.AddLateSystem(render)
	return render
}
