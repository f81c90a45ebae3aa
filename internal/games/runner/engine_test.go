package runner

import (
	"testing"

	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
)

func newTestEngine(seed int64, opts ...EngineOption) *Engine {
	return NewEngine(config.DefaultRunnerConfig(), seed, opts...)
}

// runUntilRoundEnds steps without jumping until a collision ends the round.
func runUntilRoundEnds(t *testing.T, e *Engine) RoundEnded {
	t.Helper()
	for i := 0; i < 5000; i++ {
		for _, ev := range e.Step() {
			if re, ok := ev.(RoundEnded); ok {
				return re
			}
		}
	}
	t.Fatal("round never ended")
	return RoundEnded{}
}

func TestEngineIgnoresInputBeforeStart(t *testing.T) {
	e := newTestEngine(1)

	if ev := e.Step(); ev != nil {
		t.Errorf("Step before Start returned %v", ev)
	}
	before := *e.Player()
	e.Jump()
	if *e.Player() != before {
		t.Error("Jump changed the player while not running")
	}
	if e.ConfirmRoundAdvance() != nil || e.ConfirmRestart() != nil || e.ChooseVictoryBranch(BranchCafe) != nil {
		t.Error("transitions from NotStarted must be no-ops")
	}
	if e.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", e.Frame())
	}
}

func TestEngineDistanceMonotonic(t *testing.T) {
	e := newTestEngine(3)
	e.Start(1)

	prev := e.Session().Distance
	for i := 0; i < 5000 && e.Running(); i++ {
		e.Step()
		d := e.Session().Distance
		if d < prev {
			t.Fatalf("frame %d: distance went from %v to %v", i, prev, d)
		}
		prev = d
	}
	if prev <= 0 {
		t.Error("distance never increased")
	}
}

func TestEngineJumpCap(t *testing.T) {
	e := newTestEngine(5)
	e.Start(1)
	for i := 0; i < 10; i++ {
		e.Step()
	}
	if !e.Player().Grounded {
		t.Fatal("player not grounded after settling")
	}

	changes := 0
	for i := 0; i < 3; i++ {
		before := e.Player().DY
		e.Jump()
		if e.Player().DY != before {
			changes++
		}
	}
	if changes != 2 {
		t.Errorf("velocity changed %d times, want 2", changes)
	}
}

func TestEngineRoundEndAndAdvance(t *testing.T) {
	e := newTestEngine(11)
	e.Start(2)

	re := runUntilRoundEnds(t, e)
	s := e.Session()
	if s.Phase != core.PhaseRoundEnded || e.Running() {
		t.Fatalf("phase=%s running=%v", s.Phase, e.Running())
	}
	if re.Round != 1 || !re.CanContinue || re.Meters != s.History[0] {
		t.Errorf("RoundEnded = %+v, history %v", re, s.History)
	}
	if e.Step() != nil {
		t.Error("Step after round end must do nothing")
	}

	events := e.ConfirmRoundAdvance()
	if len(events) != 1 {
		t.Fatalf("advance events = %v", events)
	}
	if rs, ok := events[0].(RoundStarted); !ok || rs.Round != 2 || rs.Speed != 10 {
		t.Errorf("advance event = %+v", events[0])
	}

	if len(e.Obstacles()) != 0 || len(e.Jumped()) != 0 {
		t.Error("round reset left obstacles or jumped sprites")
	}
	if e.Player().Y != 450 || e.Session().Distance != 0 {
		t.Errorf("round reset: player Y=%v distance=%v", e.Player().Y, e.Session().Distance)
	}
}

func TestEngineFullSessionDefeatAndRestart(t *testing.T) {
	var seen []Event
	e := newTestEngine(21, WithNotifier(NotifierFunc(func(ev Event) {
		if _, ok := ev.(ProgressUpdated); !ok {
			seen = append(seen, ev)
		}
	})))
	e.Start(4)

	var over GameOver
	for round := 1; round <= 3; round++ {
		re := runUntilRoundEnds(t, e)
		if re.CanContinue != (round < 3) {
			t.Errorf("round %d: CanContinue = %v", round, re.CanContinue)
		}
		for _, ev := range e.ConfirmRoundAdvance() {
			if g, ok := ev.(GameOver); ok {
				over = g
			}
		}
	}

	s := e.Session()
	if s.Phase != core.PhaseGameOver {
		t.Fatalf("phase = %s, want game_over", s.Phase)
	}
	if over.TotalScore != s.TotalScore || over.Breakdown != s.Breakdown() || len(over.History) != 3 {
		t.Errorf("GameOver = %+v, session %+v", over, s)
	}
	if over.Victory {
		t.Error("a run without jumps should not reach the victory distance")
	}
	if e.ChooseVictoryBranch(BranchCafe) != nil {
		t.Error("branch choice accepted after a defeat")
	}

	if ev := e.ConfirmRestart(); len(ev) != 1 {
		t.Fatalf("restart events = %v", ev)
	}
	s = e.Session()
	if s.Phase != core.PhaseNotStarted || s.CurrentRound != 1 || s.TotalScore != 0 || len(s.History) != 0 {
		t.Errorf("after restart: %+v", s)
	}

	if _, ok := seen[0].(SessionStarted); !ok {
		t.Errorf("first notified event = %T, want SessionStarted", seen[0])
	}
	if _, ok := seen[len(seen)-1].(SessionReset); !ok {
		t.Errorf("last notified event = %T, want SessionReset", seen[len(seen)-1])
	}
}

func TestEngineVictoryBranch(t *testing.T) {
	e := newTestEngine(1)
	e.Start(1)
	e.session.Phase = core.PhaseRoundEnded
	e.session.CurrentRound = 3
	e.session.TotalScore = 285
	e.session.History = []int{80, 95, 110}

	events := e.ConfirmRoundAdvance()
	over, ok := events[0].(GameOver)
	if !ok || !over.Victory || over.Breakdown != "80 + 95 + 110 = 285" {
		t.Fatalf("game over event = %+v", events[0])
	}

	events = e.ChooseVictoryBranch(BranchBunuelo)
	if vc, ok := events[0].(VictoryChosen); !ok || vc.Branch != BranchBunuelo {
		t.Fatalf("branch event = %+v", events)
	}
	if e.Session().Phase != core.PhaseVictory || e.Session().Breakdown() != "80 + 95 + 110 = 285" {
		t.Errorf("victory session: %+v", e.Session())
	}
	if e.ConfirmRestart() == nil {
		t.Error("restart refused from victory")
	}
}

func TestEngineDeterministic(t *testing.T) {
	a, b := newTestEngine(77), newTestEngine(77)
	a.Start(1)
	b.Start(1)

	for i := 0; i < 400; i++ {
		if i%37 == 0 {
			a.Jump()
			b.Jump()
		}
		a.Step()
		b.Step()
	}

	sa, sb := a.Session(), b.Session()
	if sa.Distance != sb.Distance || sa.Phase != sb.Phase || len(a.Obstacles()) != len(b.Obstacles()) {
		t.Fatalf("runs diverged: %+v vs %+v", sa, sb)
	}
	for i, o := range a.Obstacles() {
		if o != b.Obstacles()[i] {
			t.Fatalf("obstacle %d differs: %+v vs %+v", i, o, b.Obstacles()[i])
		}
	}
}

func TestEngineApply(t *testing.T) {
	e := newTestEngine(1)

	if !e.CanApply(Command{Kind: CmdStart}) || e.CanApply(Command{Kind: CmdJump}) {
		t.Fatal("CanApply wrong before start")
	}
	e.Apply(Command{Kind: CmdStart, Character: 6})
	if e.Session().Character != 6 || !e.Running() {
		t.Fatalf("Apply(start): %+v", e.Session())
	}
	if e.PlayerSprite() != CharacterSprite(6) {
		t.Errorf("PlayerSprite = %q", e.PlayerSprite())
	}
	if e.CanApply(Command{Kind: CmdAdvance}) || e.CanApply(Command{Kind: CmdRestart}) {
		t.Error("CanApply accepted an invalid transition while running")
	}
}

func TestEngineBackgroundWraps(t *testing.T) {
	e := newTestEngine(1)
	e.Start(1)
	w := e.Config().Canvas.BackgroundWidth

	for i := 0; i < 100 && e.Running(); i++ {
		e.Step()
		if bg := e.Background(); bg > 0 || bg <= -w {
			t.Fatalf("background offset %v outside (-%v, 0]", bg, w)
		}
	}
}
