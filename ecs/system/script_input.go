package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/milk9111/hearthlight/prefabs"
	"github.com/rs/zerolog/log"
)

// Script globals. The host sets frame, time and dt before each run; the
// script assigns the rest.
var scriptOutputs = []string{"horizontal", "vertical", "mouse_x", "mouse_y", "pressed", "held", "buttons"}

// ScriptInput is an InputSource driven by a tengo script, run once per
// sample. Keys are named as ebiten names them ("X", "V"); mouse buttons are
// "left", "right" and "middle".
type ScriptInput struct {
	path     string
	compiled *tengo.Compiled
	frame    int
	time     float64
	err      error
}

// LoadScriptInput compiles an embedded input script.
func LoadScriptInput(path string) (*ScriptInput, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script input: load %s: %w", path, err)
	}
	return NewScriptInput(path, src)
}

// NewScriptInput compiles src. path only labels errors.
func NewScriptInput(path string, src []byte) (*ScriptInput, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("time", 0.0)
	_ = script.Add("dt", 0.0)
	for _, name := range scriptOutputs {
		_ = script.Add(name, scriptDefault(name))
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script input: compile %s: %w", path, err)
	}
	return &ScriptInput{path: path, compiled: compiled}, nil
}

func scriptDefault(name string) any {
	switch name {
	case "pressed", "held", "buttons":
		return []any{}
	default:
		return 0.0
	}
}

// Err returns the first run error. A failed script keeps producing the zero
// sample.
func (s *ScriptInput) Err() error {
	return s.err
}

func (s *ScriptInput) Sample(dt float64) component.Input {
	if s == nil || s.compiled == nil || s.err != nil {
		return component.Input{}
	}

	sample, err := s.run(dt)
	s.frame++
	s.time += dt
	if err != nil {
		s.err = fmt.Errorf("script input: run %s: %w", s.path, err)
		log.Error().Err(s.err).Int("frame", s.frame).Msg("input script stopped")
		return component.Input{}
	}
	return sample
}

func (s *ScriptInput) run(dt float64) (component.Input, error) {
	if err := s.compiled.Set("frame", s.frame); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("time", s.time); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("dt", dt); err != nil {
		return component.Input{}, err
	}
	for _, name := range scriptOutputs {
		if err := s.compiled.Set(name, scriptDefault(name)); err != nil {
			return component.Input{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return component.Input{}, err
	}

	in := component.Input{
		Horizontal: clampAxis(s.compiled.Get("horizontal").Float()),
		Vertical:   clampAxis(s.compiled.Get("vertical").Float()),
		MouseX:     s.compiled.Get("mouse_x").Float(),
		MouseY:     s.compiled.Get("mouse_y").Float(),
	}
	var err error
	if in.Pressed, err = scriptKeys(s.compiled.Get("pressed").Array()); err != nil {
		return component.Input{}, err
	}
	if in.Held, err = scriptKeys(s.compiled.Get("held").Array()); err != nil {
		return component.Input{}, err
	}
	if in.Buttons, err = scriptButtons(s.compiled.Get("buttons").Array()); err != nil {
		return component.Input{}, err
	}
	return in, nil
}

func clampAxis(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func scriptKeys(values []any) ([]ebiten.Key, error) {
	var keys []ebiten.Key
	for _, v := range values {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("key %v is not a string", v)
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func scriptButtons(values []any) ([]ebiten.MouseButton, error) {
	var buttons []ebiten.MouseButton
	for _, v := range values {
		name, _ := v.(string)
		switch strings.ToLower(name) {
		case "left":
			buttons = append(buttons, ebiten.MouseButtonLeft)
		case "right":
			buttons = append(buttons, ebiten.MouseButtonRight)
		case "middle":
			buttons = append(buttons, ebiten.MouseButtonMiddle)
		default:
			return nil, fmt.Errorf("unknown mouse button %v", v)
		}
	}
	return buttons, nil
}
