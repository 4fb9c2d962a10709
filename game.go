package main

import (
	"math/rand/v2"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/entity"
	"github.com/milk9111/hearthlight/ecs/system"
	"github.com/milk9111/hearthlight/prefabs"
	"github.com/rs/zerolog/log"
)

type GameOptions struct {
	Level string
	// Watch hot-reloads prefab tuning from prefabs/ on disk.
	Watch bool
	// FPSSmoothing steps the world by the measured frame rate instead of the
	// fixed tick rate.
	FPSSmoothing bool
	Seed         uint64
}

type Game struct {
	frames int

	world   *ecs.World
	render  *system.RenderSystem
	prompts *PromptUI
	watcher *prefabs.Watcher

	fpsSmoothing bool
}

func NewGame(opts GameOptions) (*Game, error) {
	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	render := system.Install(world, system.NewEbitenInput(), rng)

	if _, err := entity.LoadLevel(world, opts.Level); err != nil {
		return nil, err
	}

	g := &Game{
		world:        world,
		render:       render,
		prompts:      NewPromptUI(),
		fpsSmoothing: opts.FPSSmoothing,
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher("prefabs")
		if err != nil {
			log.Warn().Err(err).Msg("prefab hot reload disabled")
		} else {
			g.watcher = watcher
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if ebiten.CursorMode() == ebiten.CursorModeCaptured {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		} else {
			return ebiten.Termination
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g.applyReloads()
	g.world.Update(g.deltaTime())
	g.prompts.Sync(g.world)
	return nil
}

func (g *Game) deltaTime() float64 {
	tps := float64(ebiten.TPS())
	if g.fpsSmoothing {
		if actual := ebiten.ActualTPS(); actual > 1 {
			tps = actual
		}
	}
	if tps <= 0 {
		tps = common.DefaultTPS
	}
	return 1 / tps
}

// applyReloads re-applies tuning for every prefab file changed since the
// last frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if !isPrefabName(name) {
				continue
			}
			n, err := entity.ReloadPrefab(g.world, name)
			if err != nil {
				log.Error().Err(err).Str("prefab", name).Msg("hot reload failed")
				continue
			}
			log.Info().Str("prefab", name).Int("entities", n).Msg("prefab reloaded")
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Warn().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func isPrefabName(name string) bool {
	return strings.HasSuffix(name, ".yaml") && !strings.HasPrefix(name, "scripts/")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.world.Draw(screen)
	g.prompts.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
