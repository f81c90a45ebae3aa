package runner

import (
	"testing"

	"github.com/vovakirdan/clayrun/internal/core"
)

func TestDetectorPadding(t *testing.T) {
	d := Detector{Padding: 12}
	player := core.NewRectF(50, 470, 70, 70) // padded: x 62..108, y 482..528

	tests := []struct {
		name   string
		player core.RectF
		obsX   float64
		want   bool
	}{
		{"unpadded edges touch", player, 120, false},
		{"unpadded overlap, padded apart", player, 100, false},
		{"padded edges touch", player, 96, false},
		{"padded overlap by one", player, 95, true},
		{"deep overlap", player, 60, true},
		{"above obstacle, padded edges touch", core.NewRectF(50, 434, 70, 70), 80, false},
		{"above obstacle, padded overlap by one", core.NewRectF(50, 435, 70, 70), 80, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := core.NewRectF(tt.obsX, 480, 60, 60)
			if got := d.Collides(tt.player, obs); got != tt.want {
				t.Errorf("Collides = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectorFirstHit(t *testing.T) {
	d := Detector{Padding: 12}
	player := core.NewRectF(50, 470, 70, 70)

	obstacles := []Obstacle{
		{X: 400, Y: 480, W: 60, H: 60},
		{X: 90, Y: 480, W: 60, H: 60},
		{X: 70, Y: 480, W: 60, H: 60},
	}

	i, ok := d.FirstHit(player, obstacles)
	if !ok || i != 1 {
		t.Errorf("FirstHit = %d, %v; want 1, true", i, ok)
	}

	if _, ok := d.FirstHit(player, obstacles[:1]); ok {
		t.Error("FirstHit reported a hit for a distant obstacle")
	}
}
