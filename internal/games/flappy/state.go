package flappy

// State is the game's run state.
type State string

const (
	StatePlaying State = "playing"
	StateOver    State = "over"
)

// EndCause records why a run ended.
type EndCause string

const (
	CauseNone    EndCause = ""
	CauseFell    EndCause = "fell"    // Dropped below the field
	CauseCrashed EndCause = "crashed" // Hit a pipe
)

// end moves a playing world to over. Only Restart leaves this state.
func (w *World) end() {
	w.State = StateOver
}

// Restart returns an over world to playing: player back at the start
// height, all collections emptied and the score zeroed. Velocity is left
// alone; the caller sets it (see OnJumpTrigger).
func Restart(w *World) {
	_, y := w.cfg.PlayerStart()
	w.Player.Y = y
	w.Pipes = w.Pipes[:0]
	w.Clouds = w.Clouds[:0]
	w.Coins = w.Coins[:0]
	w.Score = 0
	w.State = StatePlaying
}
