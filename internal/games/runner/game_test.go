package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/registry"
)

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Handle(in)
}

func newTestGame(t *testing.T, g *Game) *core.ManualScheduler {
	t.Helper()
	sched := core.NewManualScheduler()
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	g.Reset(cfg, sched)
	return sched
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"clayrun", "clayrun_classic"} {
		if !registry.Exists(id) {
			t.Errorf("variant %q not registered", id)
		}
	}
}

func TestGameSelectAndStart(t *testing.T) {
	g := New()
	sched := newTestGame(t, g)

	if st := g.State(); st.Phase != core.PhaseNotStarted || st.Running {
		t.Fatalf("initial state %+v", st)
	}

	press(g, core.ActionRight)
	press(g, core.ActionConfirm)
	if g.screen != screenTutorial {
		t.Fatal("confirm on select did not open the tutorial")
	}
	if sched.Len() != 0 {
		t.Fatal("frames requested before the run started")
	}

	res := press(g, core.ActionConfirm)
	if !res.State.Running || res.State.Round != 1 {
		t.Fatalf("after start: %+v", res.State)
	}
	if got, want := g.Engine().Session().Character, g.Characters()[1]; got != want {
		t.Errorf("character = %d, want %d", got, want)
	}
	if sched.Len() != 1 {
		t.Errorf("queued frames = %d, want 1", sched.Len())
	}
}

func TestGameRecordsAcceptedCommands(t *testing.T) {
	g := New()
	sched := newTestGame(t, g)

	var kinds []CommandKind
	g.SetRecorder(func(_ uint64, cmd Command) { kinds = append(kinds, cmd.Kind) })

	press(g, core.ActionConfirm)
	press(g, core.ActionConfirm)
	sched.RunFrame()
	press(g, core.ActionJump)
	press(g, core.ActionConfirm) // not a valid command while running

	if len(kinds) != 2 || kinds[0] != CmdStart || kinds[1] != CmdJump {
		t.Errorf("recorded %v, want [start jump]", kinds)
	}
}

func TestGameRenderScreens(t *testing.T) {
	g := New()
	sched := newTestGame(t, g)
	dst := core.NewScreen(80, 24)

	g.Render(dst)
	if !strings.Contains(dst.String(), "ELIGE TU PERSONAJE") {
		t.Errorf("select screen missing title:\n%s", dst.String())
	}

	press(g, core.ActionConfirm)
	g.Render(dst)
	if !strings.Contains(dst.String(), "CÓMO JUGAR") {
		t.Errorf("tutorial missing title:\n%s", dst.String())
	}

	press(g, core.ActionConfirm)
	sched.RunFrame()
	g.Render(dst)
	if !strings.Contains(dst.Row(0), "Round: 1/3") {
		t.Errorf("HUD row = %q", dst.Row(0))
	}

	sched.RunUntilIdle(10000)
	g.Render(dst)
	if !strings.Contains(dst.String(), "DISTANCIA RECORRIDA") {
		t.Errorf("round summary missing:\n%s", dst.String())
	}
}

func TestGameDefeatConfirmRestarts(t *testing.T) {
	g := New()
	sched := newTestGame(t, g)
	press(g, core.ActionConfirm)
	press(g, core.ActionConfirm)

	for round := 0; round < 3; round++ {
		sched.RunUntilIdle(10000)
		press(g, core.ActionConfirm)
	}
	if st := g.State(); !st.GameOver || st.Victory {
		t.Fatalf("state = %+v, want defeat", st)
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if !strings.Contains(dst.String(), "FRACASASTE") {
		t.Errorf("defeat screen missing:\n%s", dst.String())
	}

	sum := g.Summary()
	if len(sum.Rounds) != 3 || sum.Victory {
		t.Errorf("summary = %+v", sum)
	}

	press(g, core.ActionConfirm)
	if st := g.State(); st.Phase != core.PhaseNotStarted || g.screen != screenSelect {
		t.Errorf("after restart: %+v screen=%d", st, g.screen)
	}
}

func TestClassicVariantRamp(t *testing.T) {
	g := NewClassic()
	newTestGame(t, g)

	if inc := g.Engine().Config().Speed.Increment; inc != 0.2 {
		t.Errorf("classic increment = %v, want 0.2", inc)
	}
}

func TestRenderSkipsMissingSprites(t *testing.T) {
	g := New()
	sched := newTestGame(t, g)
	g.sprites = SpriteSet{}
	press(g, core.ActionConfirm)
	press(g, core.ActionConfirm)
	for i := 0; i < 80; i++ {
		sched.RunFrame()
	}

	dst := core.NewScreen(80, 24)
	g.Render(dst)
	if g.Engine().Frame() != 80 {
		t.Errorf("simulation stalled at frame %d", g.Engine().Frame())
	}
}
