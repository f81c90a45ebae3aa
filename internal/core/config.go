package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the scheduler (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase names the coarse state of a game session as seen by the platform.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhaseRoundEnded Phase = "round_ended"
	PhaseGameOver   Phase = "game_over"
	PhaseVictory    Phase = "victory"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Meters so far, running round included
	Round    int     // Current round (1-based)
	Phase    Phase   // Current session phase
	Running  bool    // Whether the frame loop should keep stepping
	GameOver bool    // Whether the run has produced a final outcome
	Victory  bool    // Outcome of the run, valid once GameOver is set
	Progress float64 // Fraction of the goal distance covered, 0..1
}

// StepResult is returned by Game.Handle().
// Frame counts simulated frames so far.
type StepResult struct {
	State GameState
	Frame uint64
}

// RunSummary describes a finished run for persistence.
type RunSummary struct {
	Character int
	Rounds    []int // Meters per round, in order
	Total     int
	Victory   bool
	Branch    string // Chosen ending, empty until picked
}
