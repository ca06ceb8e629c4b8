// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that falls under gravity and must fly through
// the gaps between pipe pairs while collecting coins.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/schedule"
)

// Game owns one World and applies scheduler events to it. It is the only
// mutator of the world; platforms feed it events from a single goroutine.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	world   *World
	spawner *Spawner
	ticks   int        // Steps since the current run started
	last    StepReport // Report of the most recent step
}

// New creates a new Flappy Bird game instance for the given configuration.
func New(cfg config.FlappyConfig) *Game {
	g := &Game{cfg: cfg}
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset builds a fresh world and reseeds the spawner.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.world = NewWorld(g.cfg)
	if g.spawner == nil {
		g.spawner = NewSpawner(runtime.Seed)
	} else {
		g.spawner.Reseed(runtime.Seed)
	}
	g.ticks = 0
	g.last = StepReport{}
}

// RegisterTimers adds the three spawn producers to the scheduler.
func (g *Game) RegisterTimers(s *schedule.Scheduler) {
	s.Every(schedule.KindSpawnObstacle, g.cfg.Obstacles.Period)
	s.Every(schedule.KindSpawnDecoration, g.cfg.Decorations.Period)
	s.Every(schedule.KindSpawnCollectible, g.cfg.Collectibles.Period)
}

// Handle applies one scheduler event. Only ticks produce a non-empty report.
func (g *Game) Handle(ev schedule.Event) StepReport {
	switch ev.Kind {
	case schedule.KindTick:
		return g.Step()
	case schedule.KindSpawnObstacle:
		g.spawner.SpawnObstacle(g.world)
	case schedule.KindSpawnDecoration:
		g.spawner.SpawnDecoration(g.world)
	case schedule.KindSpawnCollectible:
		g.spawner.SpawnCollectible(g.world)
	case schedule.KindJump:
		g.OnJumpTrigger()
	}
	return StepReport{}
}

// Step advances the simulation by one tick.
func (g *Game) Step() StepReport {
	if g.world.Over() {
		return StepReport{}
	}
	g.ticks++
	g.last = Step(g.world)
	return g.last
}

// OnJumpTrigger flaps, restarting first if the run is over.
func (g *Game) OnJumpTrigger() {
	if g.world.Over() {
		g.ticks = 0
		g.last = StepReport{}
	}
	OnJumpTrigger(g.world)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score,
		GameOver: g.world.Over(),
		Ticks:    g.ticks,
	}
}

// LastReport returns the report of the most recent step.
func (g *Game) LastReport() StepReport {
	return g.last
}
