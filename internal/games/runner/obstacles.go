package runner

import (
	"math/rand"

	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
)

// Obstacle is a ground obstacle the player must jump over.
type Obstacle struct {
	X, Y   float64 // Top-left corner
	W, H   float64
	ID     int       // Id drawn from the obstacle pool
	Sprite SpriteRef // Sprite handle for the id
	Passed bool      // Whether the player has cleared it (scored once)
}

// Bounds returns the collision rectangle for this obstacle.
func (o Obstacle) Bounds() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// AdvanceResult reports what happened to the obstacle set during one frame.
type AdvanceResult struct {
	Hit         bool     // Whether the player collided this frame
	HitObstacle Obstacle // The first obstacle hit, valid when Hit is set
	Cleared     int      // Obstacles newly passed this frame
	Recycled    int      // Obstacles removed past the left edge
}

// ObstacleStream handles spawning, movement, recycling and pass detection.
type ObstacleStream struct {
	obstacles []Obstacle
	bag       *ShuffleBag
	ramp      *config.SpeedRamp
	detector  Detector
	rng       *rand.Rand
	cfg       config.ObstacleConfig
	spawnX    float64 // Right edge of the visible area

	timer     int // Frames since the last spawn
	threshold int // Frames to wait before the next spawn
}

// NewObstacleStream creates an empty stream that spawns at spawnX.
func NewObstacleStream(cfg config.ObstacleConfig, ramp *config.SpeedRamp, detector Detector, spawnX float64, rng *rand.Rand) *ObstacleStream {
	s := &ObstacleStream{
		obstacles: make([]Obstacle, 0, 8),
		bag:       NewShuffleBag(cfg.Pool, rng),
		ramp:      ramp,
		detector:  detector,
		rng:       rng,
		cfg:       cfg,
		spawnX:    spawnX,
	}
	s.Reset()
	return s
}

// Reset clears all obstacles and restarts the spawn timer for a new round.
// The id bag keeps its contents across rounds.
func (s *ObstacleStream) Reset() {
	s.obstacles = s.obstacles[:0]
	s.timer = 0
	s.threshold = s.cfg.InitialThreshold
}

// RefillBag refills the id bag, e.g. when a new session starts.
func (s *ObstacleStream) RefillBag() {
	s.bag.Refill()
}

// Tick advances the spawn timer and spawns an obstacle when it runs out.
// Reports whether an obstacle was spawned.
func (s *ObstacleStream) Tick(speed float64) bool {
	s.timer++
	if s.timer <= s.threshold {
		return false
	}

	s.spawn()
	s.timer = 0
	s.threshold = s.ramp.SpawnThreshold(speed, s.rng.Float64())
	return true
}

// spawn creates an obstacle at the right edge of the visible area.
func (s *ObstacleStream) spawn() {
	id, ok := s.bag.Draw()
	sprite := NoSprite
	if ok {
		sprite = ObstacleSprite(id)
	}
	s.obstacles = append(s.obstacles, Obstacle{
		X:      s.spawnX,
		Y:      s.cfg.Y,
		W:      s.cfg.Width,
		H:      s.cfg.Height,
		ID:     id,
		Sprite: sprite,
	})
}

// Advance processes every live obstacle in order: move it left by the
// current speed, drop it once it is past the recycle margin, test it against
// the player and award a pass once its right edge is behind the player.
//
// speed is read per obstacle because onPass may raise it mid-sweep. After
// the first hit the remaining obstacles are left untouched.
func (s *ObstacleStream) Advance(player core.RectF, speed func() float64, onPass func(Obstacle)) AdvanceResult {
	var res AdvanceResult

	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if res.Hit {
			kept = append(kept, o)
			continue
		}

		o.X -= speed()

		if o.X+o.W < -s.cfg.RecycleMargin {
			res.Recycled++
			continue
		}

		if s.detector.Collides(player, o.Bounds()) {
			res.Hit = true
			res.HitObstacle = o
			kept = append(kept, o)
			continue
		}

		if !o.Passed && o.X+o.W < player.Left() {
			o.Passed = true
			res.Cleared++
			if onPass != nil {
				onPass(o)
			}
		}
		kept = append(kept, o)
	}
	s.obstacles = kept

	return res
}

// Obstacles returns the live obstacles. The slice must not be modified.
func (s *ObstacleStream) Obstacles() []Obstacle {
	return s.obstacles
}

// SpawnTimer returns the frame counter and the current threshold.
func (s *ObstacleStream) SpawnTimer() (timer, threshold int) {
	return s.timer, s.threshold
}
