package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hearthlight/common"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Level        string `help:"Level file in levels/." default:"courtyard.yaml"`
	Debug        bool   `help:"Whether to enable debug logging."`
	Watch        bool   `help:"Hot-reload prefab tuning from prefabs/ on disk."`
	FPSSmoothing bool   `name:"fps-smoothing" help:"Step the world by the measured tick rate."`
	Seed         uint64 `help:"Seed for torch flicker; 0 picks one from the clock."`
	Windowed     bool   `help:"Run in a base-resolution window instead of filling the monitor."`
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
		kong.Name("hearthlight"),
		kong.Description("third and first person character prototype"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if CLI.Windowed {
		ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	} else {
		w, h := ebiten.Monitor().Size()
		ebiten.SetWindowSize(w, h)
	}
	ebiten.SetWindowTitle("hearthlight")
	ebiten.SetTPS(common.DefaultTPS)

	game, err := NewGame(GameOptions{
		Level:        CLI.Level,
		Watch:        CLI.Watch,
		FPSSmoothing: CLI.FPSSmoothing,
		Seed:         CLI.Seed,
	})
	if err != nil {
		writeError(err)
	}
	defer game.Close()

	// The look axes read cursor deltas, so the cursor stays captured while
	// playing. Escape releases it.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("game exited")
		game.Close()
		os.Exit(1)
	}
}
