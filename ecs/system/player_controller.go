package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/rs/zerolog/log"
)

const (
	AnimIsMoving     = "IsMoving"
	AnimForwardSpeed = "ForwardSpeed"
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.PlayerControllerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, tr *component.Transform) {
		if pc.Disabled {
			return
		}
		if !pw.HasCharacter(e) {
			pc.Disabled = true
			log.Error().Err(ErrMissingCharacterBody).Stringer("entity", e).Msg("player controller disabled")
			return
		}
		anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind())
		if !ok {
			pc.Disabled = true
			log.Error().Err(ErrMissingAnimator).Stringer("entity", e).Msg("player controller disabled")
			return
		}

		if inbox, ok := ecs.Get(w, e, component.ViewCommandsComponent.Kind()); ok {
			ApplyViewCommands(pc, inbox.Drain())
		}

		in, _ := ecs.Get(w, e, component.InputComponent.Kind())
		cameraYaw := 0.0
		if camTr, ok := ecs.Get(w, ecs.Entity(pc.Camera), component.TransformComponent.Kind()); ok {
			cameraYaw = camTr.Yaw
		}

		step := StepPlayer(pc, tr.Yaw, in, cameraYaw, pw.Grounded(e), dt)
		tr.Yaw = step.Yaw
		tr.Position, _ = pw.Move(e, step.Displacement)

		anim.SetBool(AnimIsMoving, step.IsMoving)
		anim.SetFloat(AnimForwardSpeed, step.ForwardSpeed)
	})
}

// ApplyViewCommands applies camera-issued mode changes in order.
func ApplyViewCommands(pc *component.PlayerController, cmds []component.ViewCommand) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case component.SetFirstPerson:
			pc.SetFirstPerson(cmd.Enabled)
		case component.SetFreeLook:
			pc.SetFreeLook(cmd.Enabled)
		}
	}
}

// PlayerStep is the outcome of one controller frame.
type PlayerStep struct {
	Displacement mgl64.Vec3
	Yaw          float64
	IsMoving     bool
	ForwardSpeed float64
}

// StepPlayer computes one frame of player movement. yaw is the current
// facing, cameraYaw orients locked-mode input and grounded is the state left
// by the previous move. It updates the controller's vertical and turn
// velocities.
func StepPlayer(pc *component.PlayerController, yaw float64, in *component.Input, cameraYaw float64, grounded bool, dt float64) PlayerStep {
	var h, v, mouseX float64
	if in != nil {
		h, v, mouseX = in.Horizontal, in.Vertical, in.MouseX
	}
	magnitude := math.Min(1, math.Hypot(h, v))

	if grounded && pc.VerticalVelocity < 0 {
		pc.VerticalVelocity = pc.GroundedVelocity
	} else {
		pc.VerticalVelocity += pc.Gravity * dt
	}

	out := PlayerStep{
		Yaw:          common.NormalizeAngle(yaw),
		Displacement: mgl64.Vec3{0, pc.VerticalVelocity * dt, 0},
	}
	speed := pc.MoveSpeed * dt

	switch pc.Mode() {
	case component.FirstPerson:
		out.Yaw = common.NormalizeAngle(yaw + mouseX*pc.MouseSensitivity*dt)
		move := common.Right(out.Yaw).Mul(h).Add(common.Forward(out.Yaw).Mul(v))
		out.Displacement = out.Displacement.Add(common.NormalizeOrZero(move).Mul(speed))
	case component.ThirdPersonFreeLook:
		if magnitude >= pc.Deadzone {
			move := common.Forward(out.Yaw).Mul(v).Add(common.Right(out.Yaw).Mul(h))
			out.Displacement = out.Displacement.Add(common.NormalizeOrZero(move).Mul(speed))
		}
	default:
		if magnitude >= pc.Deadzone {
			target := mgl64.RadToDeg(math.Atan2(h, v)) + cameraYaw
			smoothTime := pc.TurnSmoothTime
			if math.Abs(v) < pc.Deadzone {
				smoothTime = pc.StandingTurnSmoothTime
			}
			angle := common.SmoothDampAngle(out.Yaw, target, &pc.TurnSmoothVelocity, smoothTime, 0, dt)
			out.Yaw = common.NormalizeAngle(angle)
			out.Displacement = out.Displacement.Add(common.Forward(out.Yaw).Mul(v * speed))
		}
	}

	animMagnitude := math.Abs(v)
	if pc.Mode() == component.ThirdPersonFreeLook {
		animMagnitude = magnitude
	}
	out.IsMoving = animMagnitude >= pc.Deadzone
	out.ForwardSpeed = animMagnitude
	return out
}
