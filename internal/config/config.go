// Package config provides YAML/TOML-based runner configuration loading,
// difficulty presets and the speed ramp used by the simulation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned (wrapped) when a configuration cannot drive a game.
var ErrInvalid = errors.New("config: invalid runner config")

// RunnerConfig contains all configuration for the runner.
type RunnerConfig struct {
	Canvas     CanvasConfig    `yaml:"canvas" toml:"canvas"`
	Player     PlayerConfig    `yaml:"player" toml:"player"`
	Obstacles  ObstacleConfig  `yaml:"obstacles" toml:"obstacles"`
	Speed      SpeedConfig     `yaml:"speed" toml:"speed"`
	Collision  CollisionConfig `yaml:"collision" toml:"collision"`
	Session    SessionConfig   `yaml:"session" toml:"session"`
	Rain       RainConfig      `yaml:"rain" toml:"rain"`
	Characters []int           `yaml:"characters" toml:"characters"`
}

// CanvasConfig defines the fixed logical canvas the simulation runs on.
type CanvasConfig struct {
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	GroundY         float64 `yaml:"ground_y" toml:"ground_y"`
	BackgroundWidth float64 `yaml:"background_width" toml:"background_width"` // Render width the background offset wraps at
}

// PlayerConfig defines the player body.
type PlayerConfig struct {
	X             float64 `yaml:"x" toml:"x"`
	StartY        float64 `yaml:"start_y" toml:"start_y"`
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	Gravity       float64 `yaml:"gravity" toml:"gravity"`
	JumpPower     float64 `yaml:"jump_power" toml:"jump_power"`           // Negative = up
	AirJumpFactor float64 `yaml:"air_jump_factor" toml:"air_jump_factor"` // Multiplier for jumps while airborne
	MaxJumps      int     `yaml:"max_jumps" toml:"max_jumps"`
}

// ObstacleConfig defines obstacle geometry, spawning and scoring.
type ObstacleConfig struct {
	Y                float64 `yaml:"y" toml:"y"`
	Width            float64 `yaml:"width" toml:"width"`
	Height           float64 `yaml:"height" toml:"height"`
	Pool             []int   `yaml:"pool" toml:"pool"`
	InitialThreshold int     `yaml:"initial_threshold" toml:"initial_threshold"` // Frames before the first spawn of a round
	SpawnBase        float64 `yaml:"spawn_base" toml:"spawn_base"`
	SpawnSpread      float64 `yaml:"spawn_spread" toml:"spawn_spread"`
	RecycleMargin    float64 `yaml:"recycle_margin" toml:"recycle_margin"` // Distance past the left edge before removal
	PassReward       int     `yaml:"pass_reward" toml:"pass_reward"`
}

// SpeedConfig defines the speed ramp.
type SpeedConfig struct {
	RoundBase        []float64 `yaml:"round_base" toml:"round_base"` // Base speed per round, last entry repeats
	Increment        float64   `yaml:"increment" toml:"increment"`   // Added per cleared obstacle
	DistanceDivisor  float64   `yaml:"distance_divisor" toml:"distance_divisor"`
	BackgroundFactor float64   `yaml:"background_factor" toml:"background_factor"`
}

// CollisionConfig defines the collision detector.
type CollisionConfig struct {
	Padding float64 `yaml:"padding" toml:"padding"`
}

// SessionConfig defines round and outcome rules.
type SessionConfig struct {
	MaxRounds       int `yaml:"max_rounds" toml:"max_rounds"`
	VictoryDistance int `yaml:"victory_distance" toml:"victory_distance"`
}

// RainConfig defines the cosmetic rain field.
type RainConfig struct {
	Drops        int     `yaml:"drops" toml:"drops"`
	MinSpeed     float64 `yaml:"min_speed" toml:"min_speed"`
	SpeedSpread  float64 `yaml:"speed_spread" toml:"speed_spread"`
	MinLength    float64 `yaml:"min_length" toml:"min_length"`
	LengthSpread float64 `yaml:"length_spread" toml:"length_spread"`
	ResetY       float64 `yaml:"reset_y" toml:"reset_y"`
}

// Validate reports every problem that would make the config unusable.
func (c RunnerConfig) Validate() error {
	var problems []string

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		problems = append(problems, "canvas size must be positive")
	}
	if c.Canvas.BackgroundWidth <= 0 {
		problems = append(problems, "canvas.background_width must be positive")
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		problems = append(problems, "player size must be positive")
	}
	if c.Player.MaxJumps < 1 {
		problems = append(problems, "player.max_jumps must be at least 1")
	}
	if c.Player.JumpPower >= 0 {
		problems = append(problems, "player.jump_power must be negative (upwards)")
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		problems = append(problems, "obstacle size must be positive")
	}
	if len(c.Obstacles.Pool) == 0 {
		problems = append(problems, "obstacles.pool must not be empty")
	}
	if len(c.Speed.RoundBase) == 0 {
		problems = append(problems, "speed.round_base must not be empty")
	}
	for i, s := range c.Speed.RoundBase {
		if s <= 0 {
			problems = append(problems, fmt.Sprintf("speed.round_base[%d] must be positive", i))
		}
	}
	if c.Speed.Increment < 0 {
		problems = append(problems, "speed.increment must not be negative")
	}
	if c.Speed.DistanceDivisor <= 0 {
		problems = append(problems, "speed.distance_divisor must be positive")
	}
	if c.Session.MaxRounds < 1 {
		problems = append(problems, "session.max_rounds must be at least 1")
	}
	if c.Session.VictoryDistance <= 0 {
		problems = append(problems, "session.victory_distance must be positive")
	}
	if len(c.Characters) == 0 {
		problems = append(problems, "characters must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic" // Gentle 0.2 ramp of the first release
	DifficultyFixed   DifficultyPreset = "fixed"   // No speed ramp inside a round
)

// ParsePreset converts a CLI value into a preset. The empty string means
// "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard, classic or fixed)", s)
	}
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		scaleRoundBase(cfg, 0.8)
		cfg.Speed.Increment = 0.5
	case DifficultyHard:
		scaleRoundBase(cfg, 1.25)
		cfg.Speed.Increment = 1.5
	case DifficultyClassic:
		cfg.Speed.Increment = ClassicSpeedIncrement
	case DifficultyFixed:
		cfg.Speed.Increment = 0
	}
}

func scaleRoundBase(cfg *RunnerConfig, factor float64) {
	scaled := make([]float64, len(cfg.Speed.RoundBase))
	for i, s := range cfg.Speed.RoundBase {
		scaled[i] = s * factor
	}
	cfg.Speed.RoundBase = scaled
}
