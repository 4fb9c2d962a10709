package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepPlayerGravity(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		grounded bool
		want     float64
	}{
		{"grounded and falling snaps to grounded velocity", -5, true, -2},
		{"airborne integrates", -5, false, -5 - 9.81*testDT},
		{"grounded but rising integrates", 3, true, 3 - 9.81*testDT},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pc := newPlayerController()
			pc.VerticalVelocity = tc.start
			step := StepPlayer(pc, 0, nil, 0, tc.grounded, testDT)
			assert.InDelta(t, tc.want, pc.VerticalVelocity, 1e-9)
			assert.InDelta(t, tc.want*testDT, step.Displacement.Y(), 1e-9)
		})
	}
}

func TestStepPlayerLockedIgnoresInputInsideDeadzone(t *testing.T) {
	pc := newPlayerController()
	in := &component.Input{Horizontal: 0.05, Vertical: 0.05}

	step := StepPlayer(pc, 30, in, 0, true, testDT)
	assert.Zero(t, step.Displacement.X())
	assert.Zero(t, step.Displacement.Z())
	assert.Equal(t, 30.0, step.Yaw)
	assert.False(t, step.IsMoving)
}

func TestStepPlayerLockedTurnsTowardCameraRelativeHeading(t *testing.T) {
	pc := newPlayerController()
	in := &component.Input{Vertical: 1}
	yaw := 0.0
	var last PlayerStep
	for i := 0; i < 120; i++ {
		last = StepPlayer(pc, yaw, in, 90, true, testDT)
		yaw = last.Yaw
	}
	assert.InDelta(t, 90, yaw, 0.01)
	assert.InDelta(t, 5*testDT, last.Displacement.X(), 1e-3)
	assert.InDelta(t, 0, last.Displacement.Z(), 1e-3)
	assert.True(t, last.IsMoving)
	assert.InDelta(t, 1, last.ForwardSpeed, 1e-9)
}

func TestStepPlayerLockedStrafeTurnsInPlace(t *testing.T) {
	pc := newPlayerController()
	in := &component.Input{Horizontal: 1}

	step := StepPlayer(pc, 0, in, 0, true, testDT)
	assert.Greater(t, step.Yaw, 0.0, "turns toward +90")
	assert.InDelta(t, 0, step.Displacement.X(), 1e-12)
	assert.InDelta(t, 0, step.Displacement.Z(), 1e-12)
	assert.False(t, step.IsMoving)
}

func TestStepPlayerFreeLookMovesRelativeToFacing(t *testing.T) {
	pc := newPlayerController()
	pc.SetFreeLook(true)
	in := &component.Input{Vertical: 1, MouseX: 5}

	step := StepPlayer(pc, 90, in, 0, true, testDT)
	assert.Equal(t, 90.0, step.Yaw, "free look never turns the body")
	assert.InDelta(t, 5*testDT, step.Displacement.X(), 1e-9)
	assert.InDelta(t, 0, step.Displacement.Z(), 1e-9)
	assert.True(t, step.IsMoving)
}

func TestStepPlayerFreeLookDiagonalIsNormalized(t *testing.T) {
	pc := newPlayerController()
	pc.SetFreeLook(true)
	in := &component.Input{Horizontal: 1, Vertical: 1}

	step := StepPlayer(pc, 0, in, 0, true, testDT)
	horizontal := mgl64.Vec2{step.Displacement.X(), step.Displacement.Z()}
	assert.InDelta(t, 5*testDT, horizontal.Len(), 1e-9)
	assert.InDelta(t, 1, step.ForwardSpeed, 1e-9, "magnitude is capped at 1")
}

func TestStepPlayerFirstPersonMouseTurnsBody(t *testing.T) {
	pc := newPlayerController()
	pc.SetFirstPerson(true)
	in := &component.Input{MouseX: 1, Horizontal: 1}

	step := StepPlayer(pc, 0, in, 180, true, 0.01)
	assert.InDelta(t, 1, step.Yaw, 1e-9)
	right := common.Right(1).Mul(5 * 0.01)
	assert.InDelta(t, right.X(), step.Displacement.X(), 1e-9)
	assert.InDelta(t, right.Z(), step.Displacement.Z(), 1e-9)
}

func TestApplyViewCommandsInOrder(t *testing.T) {
	pc := newPlayerController()
	ApplyViewCommands(pc, []component.ViewCommand{
		{Kind: component.SetFreeLook, Enabled: true},
		{Kind: component.SetFirstPerson, Enabled: true},
		{Kind: component.SetFreeLook, Enabled: false},
	})
	assert.True(t, pc.FirstPerson())
	assert.False(t, pc.FreeLook())
	assert.Equal(t, component.FirstPerson, pc.Mode())
}

func TestPlayerControllerDisablesWithoutCharacterBody(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	e := ecs.CreateEntity(w)
	pc := newPlayerController()
	mustAdd(t, w, e, component.PlayerControllerComponent.Kind(), pc)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), &component.Animator{})

	NewPlayerControllerSystem().Update(w)
	assert.True(t, pc.Disabled)
}

func TestPlayerControllerDisablesWithoutAnimator(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)
	e := ecs.CreateEntity(w)
	pc := newPlayerController()
	mustAdd(t, w, e, component.PlayerControllerComponent.Kind(), pc)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	pw.AddCharacter(e, mgl64.Vec3{}, 0.4, 1.8, 0.3, ecs.LayerPlayer)

	NewPlayerControllerSystem().Update(w)
	assert.True(t, pc.Disabled)
}

func TestPlayerWalksForwardInScene(t *testing.T) {
	samples := make([]component.Input, 60)
	for i := range samples {
		samples[i] = component.Input{Vertical: 1}
	}
	s := newScene(t, samples...)
	s.step(t, 60)

	tr := s.transform(t, s.player)
	assert.InDelta(t, 0, tr.Position.Y(), 1e-9, "stays on the floor")
	assert.Greater(t, tr.Position.Z(), 4.0)
	assert.True(t, s.pw.Grounded(s.player))

	anim, ok := ecs.Get(s.w, s.player, component.AnimatorComponent.Kind())
	require.True(t, ok)
	assert.True(t, anim.Bool(AnimIsMoving))
	assert.InDelta(t, 1, anim.Float(AnimForwardSpeed), 1e-9)

	// the camera trails behind and above
	cam := s.transform(t, s.camera)
	assert.Less(t, cam.Position.Z(), tr.Position.Z())
	assert.Greater(t, cam.Position.Y(), tr.Position.Y())
}

func TestPlayerIdleDoesNotDrift(t *testing.T) {
	s := newScene(t)
	s.step(t, 120)

	tr := s.transform(t, s.player)
	assert.InDelta(t, 0, tr.Position.X(), 1e-9)
	assert.InDelta(t, 0, tr.Position.Z(), 1e-9)
	assert.InDelta(t, 0, tr.Yaw, 1e-9)
}

func TestLockedStrafeNeverDisplacesInScene(t *testing.T) {
	samples := make([]component.Input, 100)
	for i := range samples {
		samples[i] = component.Input{Horizontal: 1}
	}
	s := newScene(t, samples...)

	turned := false
	for i := 0; i < 100; i++ {
		s.step(t, 1)
		tr := s.transform(t, s.player)
		turned = turned || math.Abs(common.DeltaAngle(0, tr.Yaw)) > 1
		require.InDelta(t, 0, tr.Position.X(), 1e-9, "frame %d", i)
		require.InDelta(t, 0, tr.Position.Z(), 1e-9, "frame %d", i)
		require.InDelta(t, 0, tr.Position.Y(), 1e-9, "frame %d", i)
	}
	assert.True(t, turned, "strafe input turns the body")
	assert.True(t, s.pw.Grounded(s.player))
}
