package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/milk9111/hearthlight/ecs/entity"
	"github.com/milk9111/hearthlight/ecs/system"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Level  string  `help:"Level file in levels/." default:"courtyard.yaml"`
	Script string  `help:"Input script in prefabs/scripts/." default:"walk_and_toggle.tengo"`
	Frames int     `help:"Number of frames to simulate." default:"600"`
	DT     float64 `name:"dt" help:"Seconds per frame." default:"0.016666666666666666"`
	Every  int     `help:"Log the world state every N frames." default:"30"`
	Seed   uint64  `help:"Seed for torch flicker." default:"1"`
	Debug  bool    `help:"Whether to enable debug logging."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	kong.Parse(&CLI,
		kong.Name("sim"),
		kong.Description("run a level headless with scripted input"),
		kong.UsageOnError())

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(); err != nil {
		writeError(err)
	}
}

func run() error {
	if CLI.Frames < 0 || CLI.DT <= 0 {
		return fmt.Errorf("sim: frames must be >= 0 and dt > 0")
	}

	input, err := system.LoadScriptInput(CLI.Script)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())
	system.Install(world, input, rand.New(rand.NewPCG(CLI.Seed, CLI.Seed)))
	if _, err := entity.LoadLevel(world, CLI.Level); err != nil {
		return err
	}

	for i := 0; i < CLI.Frames; i++ {
		world.Update(CLI.DT)
		if err := input.Err(); err != nil {
			return err
		}
		if CLI.Every > 0 && int(world.Frame())%CLI.Every == 0 {
			logState(world)
		}
	}
	logState(world)
	return nil
}

func logState(w *ecs.World) {
	evt := log.Info().Uint64("frame", w.Frame())

	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			evt = evt.
				Floats64("player", tr.Position[:]).
				Float64("yaw", tr.Yaw).
				Bool("grounded", w.PhysicsWorld().Grounded(e))
		}
		if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok {
			evt = evt.Stringer("view", pc.Mode())
		}
	}
	if e, ok := ecs.First(w, component.CameraRigComponent.Kind()); ok {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			evt = evt.Floats64("camera", tr.Position[:]).Float64("camera_pitch", tr.Pitch)
		}
	}

	lit, equipped := 0, 0
	ecs.ForEach(w, component.TorchComponent.Kind(), func(_ ecs.Entity, t *component.Torch) {
		if t.Lit {
			lit++
		}
	})
	ecs.ForEach(w, component.WeaponComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon) {
		if wp.Equipped {
			equipped++
		}
	})
	evt = evt.Int("torches_lit", lit).Int("weapons_equipped", equipped)

	ecs.ForEach(w, component.SunComponent.Kind(), func(_ ecs.Entity, sun *component.Sun) {
		evt = evt.Float64("time_of_day", sun.TimeOfDay)
	})
	evt.Msg("state")
}
