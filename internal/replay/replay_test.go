package replay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/games/runner"
)

func press(g *runner.Game, a core.Action) {
	in := core.NewInputFrame()
	in.Set(a)
	g.Handle(in)
}

// playSession starts a session and runs every round to its collision,
// jumping on a few fixed frames of each round.
func playSession(t *testing.T) (*runner.Game, *Recorder) {
	t.Helper()
	g := runner.New()
	sched := core.NewManualScheduler()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	g.Reset(cfg, sched)
	rec := Attach(g)

	press(g, core.ActionConfirm)
	press(g, core.ActionConfirm)

	for round := 0; round < 3; round++ {
		start := g.Engine().Frame()
		for i := 0; i < 10000 && g.State().Running; i++ {
			switch g.Engine().Frame() - start {
			case 5, 12, 40:
				press(g, core.ActionJump)
			}
			sched.RunFrame()
		}
		if g.State().Phase != core.PhaseRoundEnded {
			t.Fatalf("round %d did not end, phase %s", round+1, g.State().Phase)
		}
		press(g, core.ActionConfirm)
	}
	if !g.State().GameOver {
		t.Fatalf("session not over, phase %s", g.State().Phase)
	}
	return g, rec
}

func TestRecordSaveLoadPlay(t *testing.T) {
	g, rec := playSession(t)
	recording := rec.Recording()

	if recording.Result == nil {
		t.Fatal("finished session has no result")
	}
	if recording.Seed != 7 {
		t.Errorf("seed = %d, want 7", recording.Seed)
	}

	path := filepath.Join(t.TempDir(), "runs", "session.replay")
	if err := Save(path, recording); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Inputs) != rec.Len() {
		t.Fatalf("loaded %d inputs, want %d", len(loaded.Inputs), rec.Len())
	}

	frames := 0
	engine, err := Play(loaded, func(uint64, []runner.Event) { frames++ })
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	want := g.Engine().Session()
	got := engine.Session()
	if got.TotalScore != want.TotalScore {
		t.Errorf("total = %d, want %d", got.TotalScore, want.TotalScore)
	}
	if len(got.History) != len(want.History) {
		t.Fatalf("history = %v, want %v", got.History, want.History)
	}
	for i := range want.History {
		if got.History[i] != want.History[i] {
			t.Errorf("round %d = %d, want %d", i+1, got.History[i], want.History[i])
		}
	}
	if uint64(frames) != g.Engine().Frame() {
		t.Errorf("stepped %d frames, want %d", frames, g.Engine().Frame())
	}
}

func TestPlayDetectsDesync(t *testing.T) {
	_, rec := playSession(t)
	recording := rec.Recording()

	for i, in := range recording.Inputs {
		if runner.CommandKind(in.Kind) == runner.CmdJump {
			recording.Inputs[i].Kind = int(runner.CmdAdvance)
			break
		}
	}

	if _, err := Play(recording, nil); !errors.Is(err, ErrDesync) {
		t.Errorf("Play error = %v, want ErrDesync", err)
	}
}

func TestPlayDetectsWrongResult(t *testing.T) {
	_, rec := playSession(t)
	recording := rec.Recording()
	recording.Result.Total++

	if _, err := Play(recording, nil); !errors.Is(err, ErrDesync) {
		t.Errorf("Play error = %v, want ErrDesync", err)
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.replay")
	if err := Save(path, Recording{Version: FormatVersion + 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted an unknown format version")
	}
}
