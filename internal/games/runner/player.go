package runner

import (
	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
)

// PlayerBody is the auto-running player: a box with vertical velocity that
// falls onto the ground line and can jump up to MaxJumps times before landing.
type PlayerBody struct {
	X, Y          float64
	W, H          float64
	DY            float64 // Vertical velocity, positive = down
	Gravity       float64
	JumpPower     float64 // Negative = up
	AirJumpFactor float64
	Grounded      bool
	JumpCount     int
	MaxJumps      int

	startY  float64
	groundY float64
}

// NewPlayerBody creates a player at its start position. It starts airborne
// and settles onto the ground during the first frames.
func NewPlayerBody(cfg config.PlayerConfig, groundY float64) *PlayerBody {
	return &PlayerBody{
		X:             cfg.X,
		Y:             cfg.StartY,
		W:             cfg.Width,
		H:             cfg.Height,
		Gravity:       cfg.Gravity,
		JumpPower:     cfg.JumpPower,
		AirJumpFactor: cfg.AirJumpFactor,
		MaxJumps:      cfg.MaxJumps,
		startY:        cfg.StartY,
		groundY:       groundY,
	}
}

// Integrate applies one frame of gravity and resolves ground contact.
func (p *PlayerBody) Integrate() {
	p.DY += p.Gravity
	p.Y += p.DY

	if p.Y+p.H > p.groundY {
		p.Y = p.groundY - p.H
		p.DY = 0
		p.Grounded = true
		p.JumpCount = 0
	}
}

// Jump applies a jump impulse if one is allowed and reports whether it was.
// From the ground the full jump power is used; in the air a weaker jump is
// allowed until JumpCount reaches MaxJumps.
func (p *PlayerBody) Jump() bool {
	switch {
	case p.Grounded:
		p.DY = p.JumpPower
		p.Grounded = false
		p.JumpCount = 1
		return true
	case p.JumpCount < p.MaxJumps:
		p.DY = p.JumpPower * p.AirJumpFactor
		p.JumpCount++
		return true
	default:
		return false
	}
}

// ResetPosition moves the body back to its start height for a new round.
// Jump bookkeeping is left alone; it resets when the body lands.
func (p *PlayerBody) ResetPosition() {
	p.Y = p.startY
	p.DY = 0
}

// Bounds returns the body's bounding box.
func (p *PlayerBody) Bounds() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}
