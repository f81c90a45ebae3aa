package runner

import "github.com/vovakirdan/clayrun/internal/core"

// Detector tests the player against obstacles with padded AABBs: both boxes
// are shrunk by Padding on every side before the overlap test, which forgives
// grazes against the transparent margins of the sprites.
type Detector struct {
	Padding float64
}

// Collides reports whether the padded boxes overlap.
func (d Detector) Collides(a, b core.RectF) bool {
	return a.Inset(d.Padding).Intersects(b.Inset(d.Padding))
}

// FirstHit returns the index of the first obstacle, in order, that collides with player.
func (d Detector) FirstHit(player core.RectF, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if d.Collides(player, o.Bounds()) {
			return i, true
		}
	}
	return -1, false
}
