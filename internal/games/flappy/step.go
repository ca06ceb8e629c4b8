package flappy

import "math"

// StepReport summarizes what one simulation step did.
type StepReport struct {
	PipesPassed    int      // Pipe bodies newly passed (each worth 0.5)
	CoinsCollected int      // Coins picked up (each worth 1)
	Ended          bool     // This step ended the run
	Cause          EndCause // Why, if Ended
}

// Step advances the world by one display tick. It does nothing once the
// run is over. Phases run in a fixed order: player physics, bottom
// boundary, pipes, clouds, coins, then pruning.
func Step(w *World) StepReport {
	var report StepReport
	if w.Over() {
		return report
	}

	cfg := w.cfg
	p := &w.Player
	fieldH := cfg.Field.Height

	// A player already below the field ends the run whatever its velocity
	wasBelow := p.Y > fieldH

	p.VelocityY += cfg.Physics.Gravity
	p.Y = math.Max(p.Y+p.VelocityY, 0)

	if wasBelow || p.Y > fieldH {
		report.end(w, CauseFell)
	}

	dx := cfg.Physics.ScrollSpeed

	scroll(w.Pipes, dx)
	for i := range w.Pipes {
		pipe := &w.Pipes[i]
		if !pipe.Passed && p.X > pipe.Right() {
			pipe.Passed = true
			w.Score += 0.5
			report.PipesPassed++
		}
		if p.Overlaps(pipe.Rect) {
			report.end(w, CauseCrashed)
		}
	}

	scroll(w.Clouds, dx)

	scroll(w.Coins, dx)
	for i := 0; i < len(w.Coins); i++ {
		if p.Overlaps(w.Coins[i].Rect) {
			w.Score++
			report.CoinsCollected++
			w.Coins = append(w.Coins[:i], w.Coins[i+1:]...)
			i--
		}
	}

	w.Pipes = prune(w.Pipes)
	w.Clouds = prune(w.Clouds)
	w.Coins = prune(w.Coins)

	return report
}

// end records the first cause that ended the run during this step.
func (r *StepReport) end(w *World, cause EndCause) {
	if !r.Ended {
		r.Ended = true
		r.Cause = cause
	}
	w.end()
}
