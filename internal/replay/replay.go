// Package replay records the commands of a runner session and plays them
// back headlessly. A recording holds the seed and the resolved config, so
// playback rebuilds the exact same engine and steps it frame by frame.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/games/runner"
)

// FormatVersion is bumped whenever the on-disk layout changes.
const FormatVersion = 1

// ErrDesync is returned when a recorded command cannot be applied at the
// frame it was recorded on, or when the final result differs.
var ErrDesync = errors.New("replay: desync")

// Entry is one accepted command stamped with the engine frame it followed.
type Entry struct {
	Frame     uint64 `msgpack:"f"`
	Kind      int    `msgpack:"k"`
	Character int    `msgpack:"c,omitempty"`
	Branch    string `msgpack:"b,omitempty"`
}

// Result is the run summary stored at the end of a recording.
type Result struct {
	Rounds  []int  `msgpack:"rounds"`
	Total   int    `msgpack:"total"`
	Victory bool   `msgpack:"victory"`
	Branch  string `msgpack:"branch,omitempty"`
}

// Recording is a complete session capture.
type Recording struct {
	Version int                 `msgpack:"version"`
	GameID  string              `msgpack:"game_id"`
	Seed    int64               `msgpack:"seed"`
	Config  config.RunnerConfig `msgpack:"config"`
	Inputs  []Entry             `msgpack:"inputs"`
	Result  *Result             `msgpack:"result,omitempty"`
}

// Recorder collects commands from a runner.Game.
type Recorder struct {
	rec  Recording
	game *runner.Game
}

// Attach hooks a new recorder into g. The seed and config are read from
// the game's engine when the recording is taken, so g may be reset after
// attaching.
func Attach(g *runner.Game) *Recorder {
	r := &Recorder{game: g}
	r.rec = Recording{
		Version: FormatVersion,
		GameID:  g.ID(),
	}
	g.SetRecorder(r.Record)
	return r
}

// Record appends cmd. It matches the runner.Game recorder signature.
func (r *Recorder) Record(frame uint64, cmd runner.Command) {
	r.rec.Inputs = append(r.rec.Inputs, Entry{
		Frame:     frame,
		Kind:      int(cmd.Kind),
		Character: cmd.Character,
		Branch:    string(cmd.Branch),
	})
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.rec.Inputs)
}

// Recording returns the capture so far, with the current summary attached
// when the session has ended.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Inputs = append([]Entry(nil), r.rec.Inputs...)
	if r.game == nil {
		return rec
	}
	if e := r.game.Engine(); e != nil {
		rec.Seed = e.Seed()
		rec.Config = e.Config()
	}
	if r.game.State().GameOver {
		s := r.game.Summary()
		rec.Result = &Result{Rounds: s.Rounds, Total: s.Total, Victory: s.Victory, Branch: s.Branch}
	}
	return rec
}

// Save writes rec to path, creating parent directories.
func Save(path string, rec Recording) error {
	path = expandHome(path)
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: create directory: %w", err)
		}
	}

	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: read %s: %w", path, err)
	}

	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode %s: %w", path, err)
	}
	if rec.Version != FormatVersion {
		return Recording{}, fmt.Errorf("replay: unsupported format version %d", rec.Version)
	}
	return rec, nil
}

// Play rebuilds the engine from rec and feeds it every recorded command.
// onFrame, when non-nil, sees the events of every stepped frame.
// The returned engine is left in its final state.
func Play(rec Recording, onFrame func(frame uint64, events []runner.Event)) (*runner.Engine, error) {
	if err := rec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	engine := runner.NewEngine(rec.Config, rec.Seed)
	sched := core.NewManualScheduler()
	driver := runner.NewDriver(engine, sched, func(events []runner.Event) {
		if onFrame != nil {
			onFrame(engine.Frame(), events)
		}
	})

	for i, in := range rec.Inputs {
		for engine.Frame() < in.Frame {
			if sched.RunFrame() == 0 {
				return engine, fmt.Errorf("%w: input %d wants frame %d, session idle at %d",
					ErrDesync, i, in.Frame, engine.Frame())
			}
		}
		if engine.Frame() != in.Frame {
			return engine, fmt.Errorf("%w: input %d wants frame %d, engine at %d",
				ErrDesync, i, in.Frame, engine.Frame())
		}

		cmd := runner.Command{
			Kind:      runner.CommandKind(in.Kind),
			Character: in.Character,
			Branch:    runner.VictoryBranch(in.Branch),
		}
		if !engine.CanApply(cmd) {
			return engine, fmt.Errorf("%w: input %d (kind %d) rejected in phase %s",
				ErrDesync, i, in.Kind, engine.Session().Phase)
		}
		driver.Apply(cmd)
	}

	// A trailing running round plays out until it ends on its own.
	for engine.Running() {
		if sched.RunFrame() == 0 {
			break
		}
	}

	if rec.Result != nil {
		s := engine.Session()
		if s.TotalScore != rec.Result.Total {
			return engine, fmt.Errorf("%w: total %d, recorded %d", ErrDesync, s.TotalScore, rec.Result.Total)
		}
	}
	return engine, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
