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

func newTorch() *component.Torch {
	return &component.Torch{
		Key:             ebiten.KeyX,
		MinIntensity:    0.5,
		MaxIntensity:    2,
		FlickerInterval: 0.1,
	}
}

func TestToggleTorch(t *testing.T) {
	torch := newTorch()
	light := &component.Light{Intensity: 1}
	particles := &component.Particles{}
	prompt := &component.Prompt{}

	ToggleTorch(torch, light, particles, prompt)
	assert.True(t, torch.Lit)
	assert.True(t, light.Enabled)
	assert.True(t, particles.Playing)
	assert.Equal(t, "Press X to take out the light", prompt.Text)

	ToggleTorch(torch, light, particles, prompt)
	assert.False(t, torch.Lit)
	assert.False(t, light.Enabled)
	assert.False(t, particles.Playing)
	assert.Equal(t, "Press X to light", prompt.Text)
	assert.Equal(t, 1, particles.Plays)
	assert.Equal(t, 1, particles.Stops)
}

func TestStepFlicker(t *testing.T) {
	torch := newTorch()
	torch.Lit = true
	light := &component.Light{}
	rolls := []float64{0, 1, 0.5}
	rnd := func() float64 {
		r := rolls[0]
		rolls = rolls[1:]
		return r
	}

	require.True(t, StepFlicker(torch, light, 0.05, rnd), "first call fires")
	assert.InDelta(t, 0.5, light.Intensity, 1e-9)

	assert.False(t, StepFlicker(torch, light, 0.05, rnd))
	assert.True(t, StepFlicker(torch, light, 0.05, rnd))
	assert.InDelta(t, 2, light.Intensity, 1e-9)
	assert.Zero(t, torch.FlickerElapsed)

	// unlit torches keep the timer running but leave the light alone
	torch.Lit = false
	assert.False(t, StepFlicker(torch, light, 0.05, rnd))
	assert.True(t, StepFlicker(torch, light, 0.05, rnd))
	assert.InDelta(t, 2, light.Intensity, 1e-9)
	assert.Len(t, rolls, 1)
}

func TestStepFlickerNilLight(t *testing.T) {
	torch := newTorch()
	torch.Lit = true
	assert.True(t, StepFlicker(torch, nil, testDT, func() float64 { return 0.5 }))
}

func addTorch(t *testing.T, s *scene, pos mgl64.Vec3) (ecs.Entity, *component.Torch) {
	t.Helper()
	e := ecs.CreateEntity(s.w)
	torch := newTorch()
	mustAdd(t, s.w, e, component.TorchComponent.Kind(), torch)
	mustAdd(t, s.w, e, component.LightComponent.Kind(), &component.Light{Intensity: 1})
	mustAdd(t, s.w, e, component.ParticlesComponent.Kind(), &component.Particles{})
	mustAdd(t, s.w, e, component.PromptComponent.Kind(), &component.Prompt{})
	s.addVolume(t, e, pos, mgl64.Vec3{1.5, 1.5, 1.5})
	return e, torch
}

func TestTorchLightsWhenPlayerPressesKeyInRange(t *testing.T) {
	s := newScene(t, component.Input{}, pressed(ebiten.KeyX), component.Input{}, pressed(ebiten.KeyX))
	e, torch := addTorch(t, s, mgl64.Vec3{1, 0, 0})

	s.step(t, 1)
	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.True(t, torch.PlayerInRange)
	assert.Equal(t, uint64(s.player), torch.Player)
	assert.True(t, prompt.Visible)
	assert.Equal(t, "Press X to light", prompt.Text)

	s.step(t, 1)
	light, _ := ecs.Get(s.w, e, component.LightComponent.Kind())
	assert.True(t, torch.Lit)
	assert.True(t, light.Enabled)
	assert.Equal(t, "Press X to take out the light", prompt.Text)

	s.step(t, 2)
	assert.False(t, torch.Lit)
	assert.False(t, light.Enabled)
}

func TestTorchHeldKeyTogglesOnce(t *testing.T) {
	held := component.Input{Held: []ebiten.Key{ebiten.KeyX}}
	s := newScene(t, component.Input{}, pressed(ebiten.KeyX), held, held, held, held, held)
	e, torch := addTorch(t, s, mgl64.Vec3{1, 0, 0})

	s.step(t, 1)
	require.True(t, torch.PlayerInRange)
	particles, _ := ecs.Get(s.w, e, component.ParticlesComponent.Kind())
	plays, stops := particles.Plays, particles.Stops

	s.step(t, 6)
	assert.True(t, torch.Lit)
	assert.Equal(t, plays+1, particles.Plays)
	assert.Equal(t, stops, particles.Stops)
}

func TestTorchIgnoresKeyOutOfRange(t *testing.T) {
	s := newScene(t, pressed(ebiten.KeyX), pressed(ebiten.KeyX))
	e, torch := addTorch(t, s, mgl64.Vec3{10, 0, 10})

	s.step(t, 2)
	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.False(t, torch.PlayerInRange)
	assert.False(t, torch.Lit)
	assert.False(t, prompt.Visible)
}

func TestTorchPromptHidesOnExit(t *testing.T) {
	s := newScene(t)
	e, torch := addTorch(t, s, mgl64.Vec3{1, 0, 0})
	s.step(t, 1)
	require.True(t, torch.PlayerInRange)

	s.pw.SetCharacterPosition(s.player, mgl64.Vec3{10, 0, 10})
	s.transform(t, s.player).Position = mgl64.Vec3{10, 0, 10}
	s.step(t, 1)

	prompt, _ := ecs.Get(s.w, e, component.PromptComponent.Kind())
	assert.False(t, torch.PlayerInRange)
	assert.Zero(t, torch.Player)
	assert.False(t, prompt.Visible)
}

func TestTorchWithoutLightIsDisabled(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	torch := newTorch()
	mustAdd(t, w, e, component.TorchComponent.Kind(), torch)
	mustAdd(t, w, e, component.ParticlesComponent.Kind(), &component.Particles{})
	mustAdd(t, w, e, component.PromptComponent.Kind(), &component.Prompt{})

	NewTorchSystem(nil).Update(w)
	assert.True(t, torch.Disabled)
}
