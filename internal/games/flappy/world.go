package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// World is the complete simulation state of one game.
// It has a single owner; nothing in this package locks it.
type World struct {
	cfg config.FlappyConfig

	Player Player
	Pipes  []Body // Top and bottom bodies, in spawn order
	Clouds []Body
	Coins  []Body
	Score  float64
	State  State
}

// NewWorld creates a world in the playing state with the player at its
// starting position and no entities.
func NewWorld(cfg config.FlappyConfig) *World {
	x, y := cfg.PlayerStart()
	return &World{
		cfg: cfg,
		Player: Player{
			Rect: core.NewRect(x, y, cfg.Player.Width, cfg.Player.Height),
		},
		Pipes:  make([]Body, 0, 8),
		Clouds: make([]Body, 0, 4),
		Coins:  make([]Body, 0, 4),
		State:  StatePlaying,
	}
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.FlappyConfig {
	return w.cfg
}

// Over reports whether the run has ended.
func (w *World) Over() bool {
	return w.State == StateOver
}
