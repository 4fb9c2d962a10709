package component

import "image/color"

type Light struct {
	Enabled   bool
	Intensity float64
	Range     float64
	Color     color.NRGBA
	// Directional lights shine along their transform's forward vector.
	Directional bool
}

var LightComponent = NewComponent[Light]()

// Particles is the sink of a particle emitter.
type Particles struct {
	Playing bool
	// Plays and Stops count transitions for diagnostics.
	Plays int
	Stops int
}

func (p *Particles) Play() {
	if !p.Playing {
		p.Plays++
	}
	p.Playing = true
}

func (p *Particles) Stop() {
	if p.Playing {
		p.Stops++
	}
	p.Playing = false
}

var ParticlesComponent = NewComponent[Particles]()
