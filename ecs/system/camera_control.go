package system

import (
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/rs/zerolog/log"
)

// CameraControlSystem handles view toggles and camera orientation. It runs in
// the update phase, before the player controller.
type CameraControlSystem struct{}

func NewCameraControlSystem() *CameraControlSystem {
	return &CameraControlSystem{}
}

func (s *CameraControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig, tr *component.Transform) {
		if rig.Disabled {
			return
		}
		player, playerTr, err := cameraTarget(w, rig)
		if err != nil {
			rig.Disabled = true
			log.Error().Err(err).Stringer("entity", e).Msg("camera rig disabled")
			return
		}

		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		cmds := StepCameraControl(rig, tr, in, playerTr.Yaw, dt)
		if len(cmds) == 0 {
			return
		}

		inbox, ok := ecs.Get(w, player, component.ViewCommandsComponent.Kind())
		if !ok {
			inbox = &component.ViewCommands{}
			if err := ecs.Add(w, player, component.ViewCommandsComponent.Kind(), inbox); err != nil {
				log.Error().Err(err).Stringer("entity", player).Msg("add view commands")
				return
			}
		}
		for _, cmd := range cmds {
			inbox.Push(cmd)
		}
	})
}

func cameraTarget(w *ecs.World, rig *component.CameraRig) (ecs.Entity, *component.Transform, error) {
	target := ecs.Entity(rig.Target)
	if !ecs.IsAlive(w, target) {
		return 0, nil, ErrMissingTarget
	}
	if !ecs.Has(w, target, component.PlayerControllerComponent.Kind()) {
		return 0, nil, ErrTargetNotPlayer
	}
	tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, ErrMissingTarget
	}
	return target, tr, nil
}

// StepCameraControl advances the rig's view mode and orientation by one
// frame and returns the mode changes the player must apply, in order.
func StepCameraControl(rig *component.CameraRig, tr *component.Transform, in *component.Input, playerYaw, dt float64) []component.ViewCommand {
	if !rig.Initialized {
		rig.Yaw = playerYaw
		rig.Pitch = rig.DefaultPitch
		rig.Initialized = true
	}

	var cmds []component.ViewCommand
	if in.KeyDown(rig.ToggleKey) {
		rig.FirstPerson = !rig.FirstPerson
		cmds = append(cmds, component.ViewCommand{Kind: component.SetFirstPerson, Enabled: rig.FirstPerson})
		if !rig.FirstPerson {
			rig.Pitch = rig.DefaultPitch
		}
	}
	if !rig.FirstPerson {
		held := in.MouseHeld(rig.FreeLookButton)
		if held != rig.FreeLook {
			rig.FreeLook = held
			cmds = append(cmds, component.ViewCommand{Kind: component.SetFreeLook, Enabled: held})
		}
	}

	var mouseX, mouseY float64
	if in != nil {
		mouseX = in.MouseX * rig.MouseSensitivity * dt
		mouseY = in.MouseY * rig.MouseSensitivity * dt
	}

	switch rig.Mode() {
	case component.FirstPerson:
		rig.Pitch = common.Clamp(rig.Pitch-mouseY, -rig.VerticalPitchLimit, rig.VerticalPitchLimit)
		rig.Yaw = playerYaw
		tr.Pitch = rig.Pitch
		tr.Yaw = playerYaw
		tr.Roll = 0
	case component.ThirdPersonFreeLook:
		rig.Yaw = common.NormalizeAngle(rig.Yaw + mouseX)
		rig.Pitch = common.Clamp(rig.Pitch-mouseY, -rig.VerticalPitchLimit, rig.ThirdPersonPitchMax)
	default:
		t := common.ExpDecay(rig.LockReturnRate, dt)
		rig.Yaw = common.NormalizeAngle(common.LerpAngle(rig.Yaw, playerYaw, t))
		rig.Pitch = common.Clamp(common.LerpAngle(rig.Pitch, rig.DefaultPitch, t), -rig.VerticalPitchLimit, rig.ThirdPersonPitchMax)
	}
	return cmds
}
