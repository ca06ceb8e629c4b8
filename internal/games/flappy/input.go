package flappy

// OnJumpTrigger applies one discrete jump signal. Any trigger source is
// equivalent. The velocity is always set to the jump impulse; if the run
// was over the same trigger also restarts it, so a new run begins with a jump.
func OnJumpTrigger(w *World) {
	if w.Over() {
		Restart(w)
	}
	w.Player.VelocityY = w.cfg.Physics.JumpImpulse
}
