package component

import "github.com/hajimehoshi/ebiten/v2"

type Torch struct {
	Key             ebiten.Key
	MinIntensity    float64
	MaxIntensity    float64
	FlickerInterval float64

	Lit           bool
	PlayerInRange bool
	Player        uint64
	Disabled      bool

	// Flicker runs independently of Lit and is never reset by toggling.
	FlickerElapsed float64
	FlickerStarted bool
}

var TorchComponent = NewComponent[Torch]()
