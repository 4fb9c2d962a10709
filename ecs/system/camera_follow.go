package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
)

// CameraFollowSystem positions cameras after every update system has run, so
// it always sees the player's final transform for the frame.
type CameraFollowSystem struct{}

func NewCameraFollowSystem() *CameraFollowSystem {
	return &CameraFollowSystem{}
}

func (s *CameraFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig, tr *component.Transform) {
		if rig.Disabled || !rig.Initialized {
			return
		}
		_, playerTr, err := cameraTarget(w, rig)
		if err != nil {
			return
		}
		StepCameraFollow(rig, tr, playerTr, dt)
	})
}

// StepCameraFollow places the camera relative to the player. First person
// attaches instantly; third person eases toward the orbit position and looks
// at the player.
func StepCameraFollow(rig *component.CameraRig, tr *component.Transform, player *component.Transform, dt float64) {
	if rig.FirstPerson {
		fwd := common.Forward(player.Yaw)
		right := common.Right(player.Yaw)
		pos := player.Position.
			Add(mgl64.Vec3{0, rig.FirstPersonOffset.Y(), 0}).
			Add(fwd.Mul(rig.FirstPersonOffset.Z())).
			Add(right.Mul(rig.FirstPersonOffset.X()))
		tr.Position = pos
		rig.Yaw = player.Yaw
		tr.Pitch = rig.Pitch
		tr.Yaw = player.Yaw
		tr.Roll = 0
		return
	}

	rot := common.Euler(rig.Pitch, rig.Yaw, 0)
	desired := player.Position.Add(rot.Rotate(rig.ThirdPersonOffset))
	tr.Position = common.LerpVec3(tr.Position, desired, followFactor(rig, dt))

	look := player.Position.Add(common.Up.Mul(rig.LookHeight))
	if pitch, yaw, ok := common.LookAngles(tr.Position, look); ok {
		tr.Pitch = pitch
		tr.Yaw = yaw
		tr.Roll = 0
	}
}

// followFactor is SmoothSpeed per frame, or its frame-rate independent
// equivalent when a reference rate is configured.
func followFactor(rig *component.CameraRig, dt float64) float64 {
	t := rig.SmoothSpeed
	if rig.SmoothReferenceFPS > 0 && dt > 0 {
		t = 1 - math.Pow(1-common.Clamp01(rig.SmoothSpeed), dt*rig.SmoothReferenceFPS)
	}
	return common.Clamp01(t)
}
