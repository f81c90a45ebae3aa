package runner

// Autopilot is a simple bot for headless runs: it jumps when the next
// obstacle is about to reach the player and uses the air jump when a
// second obstacle shows up while falling.
type Autopilot struct {
	Lookahead float64 // Frames of warning before the padded boxes would meet
}

// NewAutopilot returns a bot with a lookahead that clears obstacles at the
// default jump power.
func NewAutopilot() Autopilot {
	return Autopilot{Lookahead: 4}
}

// ShouldJump reports whether a jump should be requested before the next frame.
func (a Autopilot) ShouldJump(e *Engine) bool {
	if !e.Running() {
		return false
	}

	p := e.Player()
	frames, ok := a.framesToNext(e)
	if !ok || frames > a.Lookahead {
		return false
	}
	if p.Grounded {
		return true
	}
	return p.DY > 0 && p.JumpCount < p.MaxJumps
}

// framesToNext estimates frames until the nearest obstacle ahead overlaps
// the player horizontally.
func (a Autopilot) framesToNext(e *Engine) (float64, bool) {
	s := e.Session()
	if s.Speed <= 0 {
		return 0, false
	}
	pad := e.cfg.Collision.Padding
	pb := e.Player().Bounds().Inset(pad)

	best, found := 0.0, false
	for _, o := range e.Obstacles() {
		ob := o.Bounds().Inset(pad)
		if ob.Right() <= pb.Left() {
			continue
		}
		gap := ob.Left() - pb.Right()
		if gap < 0 {
			gap = 0
		}
		frames := gap / s.Speed
		if !found || frames < best {
			best, found = frames, true
		}
	}
	return best, found
}
