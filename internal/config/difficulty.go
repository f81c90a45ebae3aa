package config

import "math"

// SpeedRamp calculates speed-dependent game parameters.
// Speed is reset to a round-indexed base value at every round start and
// ramps up by a fixed increment for each cleared obstacle.
type SpeedRamp struct {
	speed     SpeedConfig
	obstacles ObstacleConfig
}

// NewSpeedRamp creates a new speed ramp.
func NewSpeedRamp(speed SpeedConfig, obstacles ObstacleConfig) *SpeedRamp {
	return &SpeedRamp{speed: speed, obstacles: obstacles}
}

// Base returns the starting speed of the given 1-based round.
// Rounds beyond the configured list reuse the last entry.
func (r *SpeedRamp) Base(round int) float64 {
	n := len(r.speed.RoundBase)
	if n == 0 {
		return 1
	}
	i := round - 1
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return r.speed.RoundBase[i]
}

// Increment returns the speed added per cleared obstacle.
func (r *SpeedRamp) Increment() float64 {
	return r.speed.Increment
}

// Distance converts one frame at the given speed into meters.
func (r *SpeedRamp) Distance(speed float64) float64 {
	if r.speed.DistanceDivisor <= 0 {
		return 0
	}
	return speed / r.speed.DistanceDivisor
}

// BackgroundScroll returns how far the background moves in one frame.
func (r *SpeedRamp) BackgroundScroll(speed float64) float64 {
	return speed * r.speed.BackgroundFactor
}

// SpawnThreshold returns the number of frames until the next spawn.
// roll is a uniform random number in [0, 1). Higher speed spawns more often.
func (r *SpeedRamp) SpawnThreshold(speed, roll float64) int {
	if speed < 1 {
		speed = 1 // Prevent division by zero
	}
	return int(math.Floor((r.obstacles.SpawnBase + roll*r.obstacles.SpawnSpread) / speed))
}
