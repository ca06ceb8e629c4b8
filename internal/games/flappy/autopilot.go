package flappy

// autopilotMargin keeps the autopilot's target above the lower pipe's lip.
const autopilotMargin = 12

// ShouldJump is a simple autopilot for headless runs and demos: it flaps
// while falling once the player's feet drop near the bottom of the next
// gap, or below the middle of the field when no pipe is ahead.
func (g *Game) ShouldJump() bool {
	w := g.world
	if w.Over() {
		return false
	}

	p := w.Player
	if p.VelocityY < 0 {
		return false
	}

	target := w.cfg.Field.Height * 0.6
	for _, pipe := range w.Pipes {
		if pipe.Kind == KindPipeBottom && pipe.Right() >= p.X {
			target = pipe.Y - autopilotMargin
			break
		}
	}

	return p.Bottom()+p.VelocityY >= target
}
