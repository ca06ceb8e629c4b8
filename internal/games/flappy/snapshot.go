package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Snapshot is a read-only copy of the world for renderers.
type Snapshot struct {
	Field     config.FlappyField
	Player    core.Rect
	VelocityY float64
	Pipes     []Body
	Clouds    []Body
	Coins     []Body
	Score     float64
	State     State
	Ticks     int
}

// Snapshot returns a copy of the current world that is safe to keep
// across further steps.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	return Snapshot{
		Field:     g.cfg.Field,
		Player:    w.Player.Rect,
		VelocityY: w.Player.VelocityY,
		Pipes:     append([]Body(nil), w.Pipes...),
		Clouds:    append([]Body(nil), w.Clouds...),
		Coins:     append([]Body(nil), w.Coins...),
		Score:     w.Score,
		State:     w.State,
		Ticks:     g.ticks,
	}
}
