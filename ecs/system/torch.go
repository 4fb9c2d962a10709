package system

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/rs/zerolog/log"
)

// TorchSystem lets the player carry a torch's light in and out and keeps
// lit torches flickering.
type TorchSystem struct {
	rand func() float64
}

// NewTorchSystem creates a torch system. A nil rng seeds one from the clock.
func NewTorchSystem(rng *rand.Rand) *TorchSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return &TorchSystem{rand: rng.Float64}
}

func (s *TorchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	events := w.Events()

	ecs.ForEach(w, component.TorchComponent.Kind(), func(e ecs.Entity, torch *component.Torch) {
		if torch.Disabled {
			return
		}
		light, particles, prompt, err := torchParts(w, e)
		if err != nil {
			torch.Disabled = true
			log.Error().Err(err).Stringer("entity", e).Msg("torch disabled")
			return
		}

		for _, evt := range events.TriggerEvents(e) {
			if !isPlayer(w, evt.Other) {
				continue
			}
			switch evt.Kind {
			case ecs.TriggerEnter:
				torch.PlayerInRange = true
				torch.Player = uint64(evt.Other)
				prompt.Show(TorchPromptText(torch))
			case ecs.TriggerExit:
				torch.PlayerInRange = false
				torch.Player = 0
				prompt.Hide()
			}
		}

		if torch.PlayerInRange {
			in, _ := ecs.Get(w, ecs.Entity(torch.Player), component.InputComponent.Kind())
			if in.KeyDown(torch.Key) {
				ToggleTorch(torch, light, particles, prompt)
			}
		}

		StepFlicker(torch, light, dt, s.rand)
	})
}

func torchParts(w *ecs.World, e ecs.Entity) (*component.Light, *component.Particles, *component.Prompt, error) {
	light, ok := ecs.Get(w, e, component.LightComponent.Kind())
	if !ok {
		return nil, nil, nil, ErrMissingLight
	}
	particles, ok := ecs.Get(w, e, component.ParticlesComponent.Kind())
	if !ok {
		return nil, nil, nil, ErrMissingParticles
	}
	prompt, ok := ecs.Get(w, e, component.PromptComponent.Kind())
	if !ok {
		return nil, nil, nil, ErrMissingPrompt
	}
	return light, particles, prompt, nil
}

// TorchPromptText is the hint shown while the player stands by the torch.
func TorchPromptText(t *component.Torch) string {
	if t.Lit {
		return fmt.Sprintf("Press %s to take out the light", t.Key)
	}
	return fmt.Sprintf("Press %s to light", t.Key)
}

// ToggleTorch flips the torch between lit and unlit.
func ToggleTorch(t *component.Torch, light *component.Light, particles *component.Particles, prompt *component.Prompt) {
	t.Lit = !t.Lit
	light.Enabled = t.Lit
	if t.Lit {
		particles.Play()
	} else {
		particles.Stop()
	}
	prompt.Text = TorchPromptText(t)
}

// StepFlicker advances the flicker timer. It fires on the first call and then
// once every FlickerInterval; a firing while lit picks a new intensity in
// [MinIntensity, MaxIntensity). It reports whether the timer fired.
func StepFlicker(t *component.Torch, light *component.Light, dt float64, rnd func() float64) bool {
	fired := false
	if !t.FlickerStarted {
		t.FlickerStarted = true
		fired = true
	} else {
		t.FlickerElapsed += dt
		if t.FlickerElapsed >= t.FlickerInterval {
			t.FlickerElapsed = 0
			fired = true
		}
	}
	if fired && t.Lit && light != nil {
		light.Intensity = t.MinIntensity + rnd()*(t.MaxIntensity-t.MinIntensity)
	}
	return fired
}
