package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// Speed increments of the two released rule sets.
const (
	RevisedSpeedIncrement = 1.0
	ClassicSpeedIncrement = 0.2
)

// DefaultObstaclePool lists the obstacle sprite ids shipped with the game.
// Id 13 has no artwork.
func DefaultObstaclePool() []int {
	pool := make([]int, 0, 37)
	for id := 9; id <= 46; id++ {
		if id == 13 {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Canvas: CanvasConfig{
			Width:           960,
			Height:          540,
			GroundY:         540,
			BackgroundWidth: 1920,
		},
		Player: PlayerConfig{
			X:             50,
			StartY:        450,
			Width:         70,
			Height:        70,
			Gravity:       1.6,
			JumpPower:     -24,
			AirJumpFactor: 0.8,
			MaxJumps:      2,
		},
		Obstacles: ObstacleConfig{
			Y:                480,
			Width:            60,
			Height:           60,
			Pool:             DefaultObstaclePool(),
			InitialThreshold: 50,
			SpawnBase:        350,
			SpawnSpread:      350,
			RecycleMargin:    100,
			PassReward:       10,
		},
		Speed: SpeedConfig{
			RoundBase:        []float64{7, 10, 13},
			Increment:        RevisedSpeedIncrement,
			DistanceDivisor:  80,
			BackgroundFactor: 0.4,
		},
		Collision: CollisionConfig{
			Padding: 12,
		},
		Session: SessionConfig{
			MaxRounds:       3,
			VictoryDistance: 250,
		},
		Rain: RainConfig{
			Drops:        40,
			MinSpeed:     12,
			SpeedSpread:  5,
			MinLength:    15,
			LengthSpread: 10,
			ResetY:       -20,
		},
		Characters: []int{1, 2, 3, 4, 5, 6, 7, 8},
	}
}

// DefaultRunnerYAML returns the embedded default YAML, e.g. for `config dump`.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
