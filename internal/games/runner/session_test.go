package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/clayrun/internal/core"
)

var testRules = SessionRules{MaxRounds: 3, VictoryDistance: 250}

func baseSpeed(round int) float64 {
	return []float64{7, 10, 13}[round-1]
}

// playRounds runs a whole session, ending each round at the given distance.
func playRounds(t *testing.T, distances ...float64) SessionState {
	t.Helper()
	s, ok := NewSession(testRules).Begin(1, baseSpeed(1))
	if !ok {
		t.Fatal("Begin refused")
	}
	for i, d := range distances {
		s = s.Travel(d)
		s, _, ok = s.EndRound()
		if !ok {
			t.Fatalf("round %d: EndRound refused", i+1)
		}
		s, ok = s.Advance(baseSpeed)
		if !ok {
			t.Fatalf("round %d: Advance refused", i+1)
		}
	}
	return s
}

func TestSessionRoundProgression(t *testing.T) {
	s, _ := NewSession(testRules).Begin(3, baseSpeed(1))
	if s.Phase != core.PhaseRunning || s.CurrentRound != 1 || s.Speed != 7 {
		t.Fatalf("after Begin: %+v", s)
	}

	for round := 1; round <= 3; round++ {
		s = s.Travel(40.9)
		var meters int
		var ok bool
		s, meters, ok = s.EndRound()
		if !ok || meters != 40 || s.Phase != core.PhaseRoundEnded {
			t.Fatalf("round %d: EndRound meters=%d ok=%v phase=%s", round, meters, ok, s.Phase)
		}
		if got := s.CanContinue(); got != (round < 3) {
			t.Errorf("round %d: CanContinue = %v", round, got)
		}

		s, ok = s.Advance(baseSpeed)
		if !ok {
			t.Fatalf("round %d: Advance refused", round)
		}
		if round < 3 {
			if s.Phase != core.PhaseRunning || s.CurrentRound != round+1 {
				t.Fatalf("after round %d: phase=%s round=%d", round, s.Phase, s.CurrentRound)
			}
			if s.Speed != baseSpeed(round+1) || s.Distance != 0 || s.RoundScore != 0 {
				t.Errorf("round %d not reset: %+v", round+1, s)
			}
		}
	}

	if s.Phase != core.PhaseGameOver {
		t.Fatalf("final phase = %s, want game_over", s.Phase)
	}
	if _, ok := s.Advance(baseSpeed); ok {
		t.Error("Advance from game over must be a no-op")
	}
}

func TestSessionVictory(t *testing.T) {
	s := playRounds(t, 80.3, 95.99, 110)

	if s.TotalScore != 285 {
		t.Fatalf("TotalScore = %d, want 285", s.TotalScore)
	}
	if s.Outcome() != OutcomeVictory {
		t.Fatalf("Outcome = %s, want victory", s.Outcome())
	}

	s, ok := s.ChooseBranch(BranchTamal)
	if !ok || s.Phase != core.PhaseVictory || s.Branch != BranchTamal {
		t.Fatalf("ChooseBranch: ok=%v phase=%s branch=%s", ok, s.Phase, s.Branch)
	}

	want := []int{80, 95, 110}
	if len(s.History) != len(want) {
		t.Fatalf("History = %v, want %v", s.History, want)
	}
	for i := range want {
		if s.History[i] != want[i] {
			t.Fatalf("History = %v, want %v", s.History, want)
		}
	}
	if got := s.Breakdown(); got != "80 + 95 + 110 = 285" {
		t.Errorf("Breakdown = %q", got)
	}
}

func TestSessionDefeat(t *testing.T) {
	s := playRounds(t, 50, 60, 70)

	if s.TotalScore != 180 || s.Outcome() != OutcomeDefeat {
		t.Fatalf("total=%d outcome=%s", s.TotalScore, s.Outcome())
	}
	if got := s.Breakdown(); got != "50 + 60 + 70 = 180" {
		t.Errorf("Breakdown = %q", got)
	}
	if _, ok := s.ChooseBranch(BranchCafe); ok {
		t.Error("ChooseBranch must be a no-op after a defeat")
	}
}

func TestSessionRestart(t *testing.T) {
	s := playRounds(t, 50, 60, 70)

	s, ok := s.Restart()
	if !ok {
		t.Fatal("Restart refused from game over")
	}
	if s.Phase != core.PhaseNotStarted || s.CurrentRound != 1 || s.TotalScore != 0 || len(s.History) != 0 {
		t.Errorf("after restart: %+v", s)
	}

	running, _ := s.Begin(2, 7)
	if _, ok := running.Restart(); ok {
		t.Error("Restart must be a no-op while running")
	}
}

func TestSessionInvalidTransitions(t *testing.T) {
	s := NewSession(testRules)

	if _, _, ok := s.EndRound(); ok {
		t.Error("EndRound accepted before Begin")
	}
	if _, ok := s.Advance(baseSpeed); ok {
		t.Error("Advance accepted before Begin")
	}
	if _, ok := s.Restart(); ok {
		t.Error("Restart accepted before Begin")
	}

	s, _ = s.Begin(1, 7)
	if _, ok := s.Begin(1, 7); ok {
		t.Error("Begin accepted twice")
	}
	if _, ok := s.Advance(baseSpeed); ok {
		t.Error("Advance accepted while running")
	}
}

func TestSessionHistoryNotShared(t *testing.T) {
	s, _ := NewSession(testRules).Begin(1, 7)
	s, _, _ = s.Travel(10).EndRound()
	first := s

	next, _ := first.Advance(baseSpeed)
	next, _, _ = next.Travel(20).EndRound()

	if len(first.History) != 1 || len(next.History) != 2 {
		t.Errorf("history aliasing: first=%v next=%v", first.History, next.History)
	}
}

func TestSessionProgress(t *testing.T) {
	s, _ := NewSession(testRules).Begin(1, 7)
	s.TotalScore = 100
	s = s.Travel(50.9)

	if got := s.Progress(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("running Progress = %v, want 0.6", got)
	}

	s, _, _ = s.EndRound()
	if got := s.Progress(); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("ended Progress = %v, want 0.6 (round counted once)", got)
	}

	s.TotalScore = 400
	if got := s.Progress(); got != 1 {
		t.Errorf("Progress = %v, want capped at 1", got)
	}
}

func TestParseBranch(t *testing.T) {
	tests := []struct {
		in   string
		want VictoryBranch
		ok   bool
	}{
		{"bunuelo", BranchBunuelo, true},
		{" CAFE ", BranchCafe, true},
		{"3", BranchTamal, true},
		{"1", BranchBunuelo, true},
		{"pandebono", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseBranch(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBranch(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
