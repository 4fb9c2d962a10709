package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
)

// InputSource produces one input sample per frame.
type InputSource interface {
	Sample(dt float64) component.Input
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}

	sample := i.source.Sample(w.DeltaTime())
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
		input.Pressed = append([]ebiten.Key(nil), sample.Pressed...)
		input.Held = append([]ebiten.Key(nil), sample.Held...)
		input.Buttons = append([]ebiten.MouseButton(nil), sample.Buttons...)
	})
}

const (
	stickDeadzone = 0.2
	// keyboard axes ramp toward their target at this many units per second
	axisSensitivity = 3.0
	axisGravity     = 3.0
	// cursor pixels to look-axis units
	mouseAxisScale = 0.1
	// right stick full deflection in look-axis units per frame
	stickLookScale = 1.5
)

// axis turns digital key state into an analog value that ramps in and out
// and snaps through zero on reversal.
type axis struct {
	value float64
}

func (a *axis) step(target, dt float64) float64 {
	if target != 0 && a.value != 0 && math.Signbit(target) != math.Signbit(a.value) {
		a.value = 0
	}
	rate := axisSensitivity
	if target == 0 {
		rate = axisGravity
	}
	a.value = common.MoveTowards(a.value, target, rate*dt)
	return a.value
}

// EbitenInput samples the keyboard, mouse and first gamepad.
type EbitenInput struct {
	horizontal axis
	vertical   axis

	lastX, lastY int
	hasCursor    bool
}

func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

func (in *EbitenInput) Sample(dt float64) component.Input {
	var sample component.Input

	targetX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		targetX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		targetX += 1
	}
	targetY := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		targetY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		targetY += 1
	}
	sample.Horizontal = in.horizontal.step(targetX, dt)
	sample.Vertical = in.vertical.step(targetY, dt)

	x, y := ebiten.CursorPosition()
	if in.hasCursor {
		sample.MouseX = float64(x-in.lastX) * mouseAxisScale
		sample.MouseY = -float64(y-in.lastY) * mouseAxisScale
	}
	in.lastX, in.lastY, in.hasCursor = x, y, true

	sample.Pressed = inpututil.AppendJustPressedKeys(nil)
	sample.Held = inpututil.AppendPressedKeys(nil)
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if ebiten.IsMouseButtonPressed(b) {
			sample.Buttons = append(sample.Buttons, b)
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			sample.Horizontal = lx
			sample.Vertical = -ly
		}

		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			sample.MouseX += rx * stickLookScale
			sample.MouseY -= ry * stickLookScale
		}

		// face buttons stand in for the interact and view keys
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) {
			sample.Pressed = append(sample.Pressed, ebiten.KeyX)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop) {
			sample.Pressed = append(sample.Pressed, ebiten.KeyV)
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft) {
			sample.Buttons = append(sample.Buttons, ebiten.MouseButtonRight)
		}
	}

	return sample
}

// FixedInput replays a list of samples, then repeats the zero sample.
type FixedInput struct {
	Samples []component.Input
	next    int
}

func (f *FixedInput) Sample(float64) component.Input {
	if f.next >= len(f.Samples) {
		return component.Input{}
	}
	s := f.Samples[f.next]
	f.next++
	return s
}
