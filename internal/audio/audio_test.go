package audio

import (
	"testing"

	"github.com/vovakirdan/clayrun/internal/games/runner"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		ev   runner.Event
		cue  Cue
		ok   bool
	}{
		{"session", runner.SessionStarted{Character: 1}, CueStart, true},
		{"round", runner.RoundStarted{Round: 2}, CueStart, true},
		{"cleared", runner.ObstacleCleared{}, CueClear, true},
		{"crash", runner.RoundEnded{Round: 1}, CueCrash, true},
		{"victory", runner.GameOver{Victory: true}, CueVictory, true},
		{"defeat", runner.GameOver{}, CueDefeat, true},
		{"progress", runner.ProgressUpdated{}, 0, false},
		{"reset", runner.SessionReset{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := CueFor(tt.ev)
			if ok != tt.ok || cue != tt.cue {
				t.Errorf("CueFor = (%v, %v), want (%v, %v)", cue, ok, tt.cue, tt.ok)
			}
		})
	}
}

func TestBoardWithoutDeviceRecordsCues(t *testing.T) {
	b := NewBoard()
	b.Notify(runner.SessionStarted{})
	b.Notify(runner.ProgressUpdated{})
	b.Notify(runner.RoundEnded{})

	got := b.Played()
	if len(got) != 2 || got[0] != CueStart || got[1] != CueCrash {
		t.Errorf("Played = %v, want [start crash]", got)
	}
	b.Close()
}

func TestGlideStreamsWithinRange(t *testing.T) {
	g := newGlide(cueTones[CueCrash], sampleRate)
	buf := make([][2]float64, 512)

	total := 0
	for {
		n, ok := g.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if want := sampleRate.N(cueTones[CueCrash].length); total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
	if g.Err() != nil {
		t.Errorf("Err = %v", g.Err())
	}
}
