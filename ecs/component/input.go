package component

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Input stores per-frame input state for an entity.
type Input struct {
	// Horizontal and Vertical are movement axes in [-1, 1].
	Horizontal float64
	Vertical   float64
	// MouseX and MouseY are look deltas; positive Y is up.
	MouseX float64
	MouseY float64

	Pressed []ebiten.Key
	Held    []ebiten.Key
	Buttons []ebiten.MouseButton
}

// KeyDown reports whether k went down this frame.
func (in *Input) KeyDown(k ebiten.Key) bool {
	return in != nil && slices.Contains(in.Pressed, k)
}

func (in *Input) KeyHeld(k ebiten.Key) bool {
	return in != nil && slices.Contains(in.Held, k)
}

func (in *Input) MouseHeld(b ebiten.MouseButton) bool {
	return in != nil && slices.Contains(in.Buttons, b)
}

// Magnitude is the length of the movement axes.
func (in *Input) Magnitude() float64 {
	if in == nil {
		return 0
	}
	return math.Hypot(in.Horizontal, in.Vertical)
}

var InputComponent = NewComponent[Input]()
