package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addWeapon(t *testing.T, s *scene, name string, pos mgl64.Vec3) (ecs.Entity, *component.Weapon) {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	weapon := &component.Weapon{
		Key:           ebiten.KeyX,
		HolderName:    "WeaponHolder",
		DropRayLength: 10,
		DropLift:      0.5,
		SurfaceOffset: 0.1,
	}
	mustAdd(t, s.w, e, component.NameComponent.Kind(), &component.Name{Value: name})
	mustAdd(t, s.w, e, component.WeaponComponent.Kind(), weapon)
	mustAdd(t, s.w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{ColliderEnabled: true, IsTrigger: true})
	mustAdd(t, s.w, e, component.PromptComponent.Kind(), &component.Prompt{})
	s.addVolume(t, e, pos, mgl64.Vec3{1, 1, 1})
	return e, weapon
}

func TestWeaponPickupOffersAndEquips(t *testing.T) {
	s := newScene(t, component.Input{}, pressed(ebiten.KeyX))
	e, weapon := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})

	s.step(t, 1)
	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.True(t, weapon.CanPickup)
	assert.Equal(t, uint64(s.holder), weapon.Holder)
	assert.True(t, prompt.Visible)
	assert.Equal(t, "Press X to pick up weapon", prompt.Text)

	s.step(t, 1)
	assert.True(t, weapon.Equipped)
	assert.False(t, weapon.CanPickup)
	assert.False(t, prompt.Visible)

	held, ok := HeldWeapon(s.w, s.holder)
	require.True(t, ok)
	assert.Equal(t, e, held)

	rb, _ := ecs.Get(s.w, e, component.RigidBodyComponent.Kind())
	assert.True(t, rb.Kinematic)
	assert.False(t, rb.ColliderEnabled)
	assert.False(t, s.pw.VolumeEnabled(e))

	holderTr := s.transform(t, s.holder)
	assert.True(t, s.transform(t, e).Position.ApproxEqualThreshold(holderTr.Position, 1e-9))
}

func TestEquippedWeaponFollowsPlayer(t *testing.T) {
	samples := []component.Input{{}, pressed(ebiten.KeyX)}
	for i := 0; i < 30; i++ {
		samples = append(samples, component.Input{Vertical: 1})
	}
	s := newScene(t, samples...)
	e, _ := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})

	s.step(t, len(samples))
	playerTr := s.transform(t, s.player)
	want := playerTr.Position.Add(mgl64.Vec3{0.45, 1.1, 0.35})
	assert.Greater(t, playerTr.Position.Z(), 1.0)
	assert.True(t, s.transform(t, e).Position.ApproxEqualThreshold(want, 1e-9), "got %v want %v", s.transform(t, e).Position, want)
}

func TestWeaponSwapDropsHeldWeapon(t *testing.T) {
	s := newScene(t)
	sword, swordWeapon := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})
	axe, axeWeapon := addWeapon(t, s, "axe", mgl64.Vec3{-1, 0.1, 0})
	s.step(t, 1)
	require.True(t, swordWeapon.CanPickup)
	require.True(t, axeWeapon.CanPickup)

	PerformPickup(s.w, sword)
	require.True(t, swordWeapon.Equipped)

	// the axe now offers a swap once the player re-enters its zone
	axeWeapon.CanPickup = false
	axeTrig, _ := ecs.Get(s.w, axe, component.TriggerComponent.Kind())
	axeTrig.Inside = nil
	s.step(t, 1)
	axePrompt, _ := ecs.Get(s.w, axe, component.PromptComponent.Kind())
	assert.Equal(t, "Press X to swap weapon", axePrompt.Text)

	PerformPickup(s.w, axe)
	assert.True(t, axeWeapon.Equipped)
	assert.False(t, swordWeapon.Equipped)
	assert.False(t, ecs.Has(s.w, sword, component.ParentComponent.Kind()))

	held, ok := HeldWeapon(s.w, s.holder)
	require.True(t, ok)
	assert.Equal(t, axe, held)

	swordTr := s.transform(t, sword)
	assert.InDelta(t, 0.1, swordTr.Position.Y(), 1e-9, "dropped onto the floor plus the surface offset")
	assert.InDelta(t, 0, swordTr.Position.X(), 1e-9, "dropped below the player")

	rb, _ := ecs.Get(s.w, sword, component.RigidBodyComponent.Kind())
	assert.Equal(t, component.RigidBody{ColliderEnabled: true, IsTrigger: true}, *rb)
	assert.True(t, s.pw.VolumeEnabled(sword))
}

func TestDropWithoutGroundUsesLiftedOrigin(t *testing.T) {
	s := newScene(t)
	e, weapon := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})
	s.step(t, 1)
	PerformPickup(s.w, e)
	require.True(t, weapon.Equipped)

	weapon.DropRayLength = 0.1
	DropWeapon(s.w, e)
	assert.InDelta(t, 0.5, s.transform(t, e).Position.Y(), 1e-9)
}

func TestWeaponPickupWithoutHolder(t *testing.T) {
	s := newScene(t, component.Input{}, pressed(ebiten.KeyX))
	e, weapon := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})
	weapon.HolderName = "Missing"

	s.step(t, 2)
	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.False(t, weapon.CanPickup)
	assert.False(t, weapon.Equipped)
	assert.False(t, prompt.Visible)
}

func TestWeaponExitClearsOffer(t *testing.T) {
	s := newScene(t)
	e, weapon := addWeapon(t, s, "sword", mgl64.Vec3{1, 0.1, 0})
	s.step(t, 1)
	require.True(t, weapon.CanPickup)

	s.pw.SetCharacterPosition(s.player, mgl64.Vec3{10, 0, 10})
	s.step(t, 1)
	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.False(t, weapon.CanPickup)
	assert.Zero(t, weapon.Player)
	assert.Zero(t, weapon.Holder)
	assert.False(t, prompt.Visible)
}
