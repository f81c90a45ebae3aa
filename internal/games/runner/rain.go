package runner

import (
	"math/rand"

	"github.com/vovakirdan/clayrun/internal/config"
)

// RainDrop is a single cosmetic rain streak.
type RainDrop struct {
	X, Y   float64
	Speed  float64
	Length float64
}

// RainField animates the background rain. It has no effect on gameplay.
type RainField struct {
	drops  []RainDrop
	cfg    config.RainConfig
	width  float64
	height float64
	rng    *rand.Rand
}

// NewRainField creates drops scattered above the canvas.
func NewRainField(cfg config.RainConfig, width, height float64, rng *rand.Rand) *RainField {
	f := &RainField{
		drops:  make([]RainDrop, cfg.Drops),
		cfg:    cfg,
		width:  width,
		height: height,
		rng:    rng,
	}
	for i := range f.drops {
		f.drops[i] = RainDrop{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * -height,
			Speed:  cfg.MinSpeed + rng.Float64()*cfg.SpeedSpread,
			Length: cfg.MinLength + rng.Float64()*cfg.LengthSpread,
		}
	}
	return f
}

// Advance moves every drop down; drops below the canvas wrap to the top at a new x.
func (f *RainField) Advance() {
	for i := range f.drops {
		d := &f.drops[i]
		d.Y += d.Speed
		if d.Y > f.height {
			d.Y = f.cfg.ResetY
			d.X = f.rng.Float64() * f.width
		}
	}
}

// Drops returns the current drops. The slice must not be modified.
func (f *RainField) Drops() []RainDrop {
	return f.drops
}
