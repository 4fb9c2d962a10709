package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60

type scene struct {
	w      *ecs.World
	pw     *ecs.PhysicsWorld
	input  *FixedInput
	player ecs.Entity
	camera ecs.Entity
	holder ecs.Entity
}

func newPlayerController() *component.PlayerController {
	return &component.PlayerController{
		MoveSpeed:              5,
		Gravity:                -9.81,
		GroundedVelocity:       -2,
		TurnSmoothTime:         0.1,
		StandingTurnSmoothTime: 0.2,
		MouseSensitivity:       100,
		Deadzone:               0.1,
	}
}

func newCameraRig(target ecs.Entity) *component.CameraRig {
	return &component.CameraRig{
		Target:              uint64(target),
		SmoothSpeed:         0.125,
		ThirdPersonOffset:   mgl64.Vec3{0, 2.5, -4},
		FirstPersonOffset:   mgl64.Vec3{0, 1.6, 0.1},
		LookHeight:          1,
		MouseSensitivity:    100,
		VerticalPitchLimit:  80,
		ThirdPersonPitchMax: 60,
		DefaultPitch:        20,
		LockReturnRate:      10,
		ToggleKey:           ebiten.KeyV,
		FreeLookButton:      ebiten.MouseButtonRight,
	}
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, kind, v))
}

// newScene builds a floor, a player with a weapon holder and a camera, and
// installs the frame pipeline fed by a FixedInput.
func newScene(t *testing.T, samples ...component.Input) *scene {
	t.Helper()
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	floor := ecs.CreateEntity(w)
	pw.AddBlock(floor, mgl64.Vec3{-20, -1, -20}, mgl64.Vec3{20, 0, 20}, ecs.LayerDefault)

	s := &scene{w: w, pw: pw, input: &FixedInput{Samples: samples}}

	s.player = ecs.CreateEntity(w)
	mustAdd(t, w, s.player, component.NameComponent.Kind(), &component.Name{Value: "player"})
	mustAdd(t, w, s.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, s.player, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, s.player, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, s.player, component.AnimatorComponent.Kind(), &component.Animator{})
	mustAdd(t, w, s.player, component.CharacterBodyComponent.Kind(), &component.CharacterBody{Radius: 0.4, Height: 1.8, StepOffset: 0.3, Layer: uint(ecs.LayerPlayer)})
	pc := newPlayerController()
	mustAdd(t, w, s.player, component.PlayerControllerComponent.Kind(), pc)
	pw.AddCharacter(s.player, mgl64.Vec3{}, 0.4, 1.8, 0.3, ecs.LayerPlayer)

	s.holder = ecs.CreateEntity(w)
	mustAdd(t, w, s.holder, component.NameComponent.Kind(), &component.Name{Value: "WeaponHolder"})
	mustAdd(t, w, s.holder, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, s.holder, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(s.player), LocalPosition: mgl64.Vec3{0.45, 1.1, 0.35}})

	s.camera = ecs.CreateEntity(w)
	mustAdd(t, w, s.camera, component.CameraTagComponent.Kind(), &component.CameraTag{})
	mustAdd(t, w, s.camera, component.TransformComponent.Kind(), &component.Transform{Position: mgl64.Vec3{0, 2.5, -4}})
	mustAdd(t, w, s.camera, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, s.camera, component.CameraRigComponent.Kind(), newCameraRig(s.player))
	pc.Camera = uint64(s.camera)

	Install(w, s.input, nil)
	return s
}

func (s *scene) step(t *testing.T, frames int) {
	t.Helper()
	for i := 0; i < frames; i++ {
		s.w.Update(testDT)
	}
}

func (s *scene) transform(t *testing.T, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(s.w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

// addVolume gives e a trigger volume centered on its transform.
func (s *scene) addVolume(t *testing.T, e ecs.Entity, pos, half mgl64.Vec3) {
	t.Helper()
	mustAdd(t, s.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	mustAdd(t, s.w, e, component.TriggerComponent.Kind(), &component.Trigger{HalfExtents: half, Enabled: true})
	s.pw.AddVolume(e, pos, half)
}

func pressed(keys ...ebiten.Key) component.Input {
	return component.Input{Pressed: keys, Held: keys}
}
