package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/runner"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagWindow bool
	flagScale  float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play flappy",
	Long: `Start playing in the terminal, or in a desktop window with --window.

Controls:
  Space/Up/W/X/Click - Flap (restarts after game over)
  Ctrl+S             - Save a screenshot (terminal)
  B/Esc              - Leave after game over
  Q/Ctrl+C           - Quit

Examples:
  flappy play
  flappy play --seed 42
  flappy play --window --scale 1.5
  flappy play --config ./my-flappy.yaml --log-file flappy.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale relative to the 360x640 field")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger("flappy")
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	mode := storage.ModeTerminal
	if flagWindow {
		mode = storage.ModeWindow
	}

	r := runner.New(runner.Options{
		Config: cfg,
		Seed:   flagSeed,
		Store:  store,
		Logger: logger,
		Player: playerName(),
		Mode:   mode,
	})

	if flagWindow {
		return window.Run(r, window.Options{TPS: flagFPS, Scale: flagScale})
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(r, runtime); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
