package runner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vovakirdan/clayrun/internal/core"
)

// Outcome is the result of a finished session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// VictoryBranch names one of the narrative endings offered after a victory.
type VictoryBranch string

const (
	BranchBunuelo VictoryBranch = "bunuelo"
	BranchCafe    VictoryBranch = "cafe"
	BranchTamal   VictoryBranch = "tamal"
)

// VictoryBranches returns the branches in menu order.
func VictoryBranches() []VictoryBranch {
	return []VictoryBranch{BranchBunuelo, BranchCafe, BranchTamal}
}

// ParseBranch parses a branch name or its 1-based menu index.
func ParseBranch(s string) (VictoryBranch, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, b := range VictoryBranches() {
		if s == string(b) || s == strconv.Itoa(i+1) {
			return b, true
		}
	}
	return "", false
}

// SessionRules are the fixed rules of a session.
type SessionRules struct {
	MaxRounds       int
	VictoryDistance int
}

// SessionState is the single source of truth for round and score
// progression. Transitions return a new value and never alias History
// with the receiver.
type SessionState struct {
	Phase        core.Phase
	CurrentRound int
	TotalScore   int   // Sum of completed rounds
	History      []int // Meters per completed round, in order
	Distance     float64
	RoundScore   int
	Speed        float64
	Character    int
	Branch       VictoryBranch
	Rules        SessionRules
}

// NewSession returns a session waiting for a character.
func NewSession(rules SessionRules) SessionState {
	return SessionState{
		Phase:        core.PhaseNotStarted,
		CurrentRound: 1,
		Rules:        rules,
	}
}

// Running reports whether frames should be stepped.
func (s SessionState) Running() bool {
	return s.Phase == core.PhaseRunning
}

// Begin starts round 1 with the given character and base speed.
// Only valid from NotStarted.
func (s SessionState) Begin(character int, baseSpeed float64) (SessionState, bool) {
	if s.Phase != core.PhaseNotStarted {
		return s, false
	}
	next := s.resetRound(baseSpeed)
	next.Phase = core.PhaseRunning
	next.CurrentRound = 1
	next.TotalScore = 0
	next.History = nil
	next.Character = character
	next.Branch = ""
	return next, true
}

// Travel adds distance for one frame.
func (s SessionState) Travel(d float64) SessionState {
	if d > 0 {
		s.Distance += d
	}
	return s
}

// Clear awards one cleared obstacle and raises the speed.
func (s SessionState) Clear(reward int, increment float64) SessionState {
	s.RoundScore += reward
	s.Speed += increment
	return s
}

// EndRound freezes the round after a collision: the whole meters run are
// added to the total and appended to the history.
func (s SessionState) EndRound() (SessionState, int, bool) {
	if s.Phase != core.PhaseRunning {
		return s, 0, false
	}
	meters := s.Meters()
	next := s.clone()
	next.Phase = core.PhaseRoundEnded
	next.TotalScore += meters
	next.History = append(next.History, meters)
	return next, meters, true
}

// CanContinue reports whether another round follows the current one.
func (s SessionState) CanContinue() bool {
	return s.CurrentRound < s.Rules.MaxRounds
}

// Advance handles the advance confirmation from RoundEnded: the next round
// starts when one remains, otherwise the session is over.
func (s SessionState) Advance(baseSpeed func(round int) float64) (SessionState, bool) {
	if s.Phase != core.PhaseRoundEnded {
		return s, false
	}
	if !s.CanContinue() {
		next := s.clone()
		next.Phase = core.PhaseGameOver
		return next, true
	}
	round := s.CurrentRound + 1
	next := s.clone().resetRound(baseSpeed(round))
	next.CurrentRound = round
	next.Phase = core.PhaseRunning
	return next, true
}

// ChooseBranch records the victory ending. Only valid after a victorious game over.
func (s SessionState) ChooseBranch(b VictoryBranch) (SessionState, bool) {
	if s.Phase != core.PhaseGameOver || s.Outcome() != OutcomeVictory {
		return s, false
	}
	next := s.clone()
	next.Branch = b
	next.Phase = core.PhaseVictory
	return next, true
}

// Restart clears all score state and returns to character selection.
// Only valid from GameOver or Victory.
func (s SessionState) Restart() (SessionState, bool) {
	if s.Phase != core.PhaseGameOver && s.Phase != core.PhaseVictory {
		return s, false
	}
	return NewSession(s.Rules), true
}

// Outcome returns the session result once the game is over.
func (s SessionState) Outcome() Outcome {
	if s.Phase != core.PhaseGameOver && s.Phase != core.PhaseVictory {
		return OutcomeNone
	}
	if s.TotalScore >= s.Rules.VictoryDistance {
		return OutcomeVictory
	}
	return OutcomeDefeat
}

// Breakdown formats the history as "a + b + c = total".
func (s SessionState) Breakdown() string {
	return FormatBreakdown(s.History, s.TotalScore)
}

// FormatBreakdown formats per-round meters as "a + b + c = total".
func FormatBreakdown(history []int, total int) string {
	parts := make([]string, len(history))
	for i, m := range history {
		parts[i] = strconv.Itoa(m)
	}
	if len(parts) == 0 {
		parts = []string{"0"}
	}
	return fmt.Sprintf("%s = %d", strings.Join(parts, " + "), total)
}

// Meters returns the whole meters run in the current round.
func (s SessionState) Meters() int {
	return int(math.Floor(s.Distance))
}

// Progress returns the fraction of the victory distance covered so far.
// The running round counts only while it is still being played.
func (s SessionState) Progress() float64 {
	if s.Rules.VictoryDistance <= 0 {
		return 1
	}
	covered := s.TotalScore
	if s.Phase == core.PhaseRunning {
		covered += s.Meters()
	}
	return math.Min(float64(covered)/float64(s.Rules.VictoryDistance), 1)
}

// GameState summarizes the session for hosts.
func (s SessionState) GameState() core.GameState {
	score := s.TotalScore
	if s.Phase == core.PhaseRunning {
		score += s.Meters()
	}
	return core.GameState{
		Score:    score,
		Round:    s.CurrentRound,
		Phase:    s.Phase,
		Running:  s.Running(),
		GameOver: s.Phase == core.PhaseGameOver || s.Phase == core.PhaseVictory,
		Victory:  s.Outcome() == OutcomeVictory,
		Progress: s.Progress(),
	}
}

func (s SessionState) resetRound(baseSpeed float64) SessionState {
	s.Distance = 0
	s.RoundScore = 0
	s.Speed = baseSpeed
	return s
}

func (s SessionState) clone() SessionState {
	s.History = append([]int(nil), s.History...)
	return s
}
