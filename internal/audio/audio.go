// Package audio plays short synthesized cues for runner events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/clayrun/internal/games/runner"
)

const (
	sampleRate  = beep.SampleRate(44100)
	playedLimit = 64
)

// Cue is one of the fixed sounds the board can play.
type Cue int

const (
	CueStart Cue = iota
	CueClear
	CueCrash
	CueVictory
	CueDefeat
)

// tone describes a cue as a frequency glide with a fixed length.
type tone struct {
	from, to float64
	length   time.Duration
	volume   float64
}

var cueTones = map[Cue]tone{
	CueStart:   {from: 330, to: 660, length: 180 * time.Millisecond, volume: 0.25},
	CueClear:   {from: 880, to: 1320, length: 70 * time.Millisecond, volume: 0.2},
	CueCrash:   {from: 220, to: 55, length: 350 * time.Millisecond, volume: 0.35},
	CueVictory: {from: 523, to: 1046, length: 600 * time.Millisecond, volume: 0.3},
	CueDefeat:  {from: 196, to: 98, length: 700 * time.Millisecond, volume: 0.3},
}

// CueFor maps a runner event to a cue. ok is false for silent events.
func CueFor(ev runner.Event) (Cue, bool) {
	switch e := ev.(type) {
	case runner.SessionStarted, runner.RoundStarted:
		return CueStart, true
	case runner.ObstacleCleared:
		return CueClear, true
	case runner.RoundEnded:
		return CueCrash, true
	case runner.GameOver:
		if e.Victory {
			return CueVictory, true
		}
		return CueDefeat, true
	}
	return 0, false
}

// Board is a runner.Notifier that turns events into sound. Until Init
// succeeds every call is a no-op, so a machine without audio still plays.
type Board struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	played      []Cue
}

// NewBoard creates a silent board.
func NewBoard() *Board {
	return &Board{mixer: &beep.Mixer{}}
}

// Init opens the audio device.
func (b *Board) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close silences everything queued.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Notify implements runner.Notifier.
func (b *Board) Notify(ev runner.Event) {
	if cue, ok := CueFor(ev); ok {
		b.Play(cue)
	}
}

// Play queues cue on the mixer.
func (b *Board) Play(cue Cue) {
	t, ok := cueTones[cue]
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.played = append(b.played, cue)
	if len(b.played) > playedLimit {
		b.played = b.played[len(b.played)-playedLimit:]
	}
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Add(newGlide(t, sampleRate))
	speaker.Unlock()
}

// Played returns the most recent requested cues, including those dropped
// because no device was open.
func (b *Board) Played() []Cue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Cue(nil), b.played...)
}

// glide is a sine sweep with a short attack and a linear release.
type glide struct {
	t     tone
	sr    beep.SampleRate
	pos   int
	total int
}

func newGlide(t tone, sr beep.SampleRate) *glide {
	return &glide{t: t, sr: sr, total: sr.N(t.length)}
}

func (g *glide) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		progress := float64(g.pos) / float64(g.total)
		freq := g.t.from + (g.t.to-g.t.from)*progress
		tm := float64(g.pos) / float64(g.sr)

		attack := math.Min(tm/0.01, 1)
		envelope := attack * (1 - progress)
		sample := g.t.volume * envelope * math.Sin(2*math.Pi*freq*tm)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *glide) Err() error {
	return nil
}
