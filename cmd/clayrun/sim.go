package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/games/runner"
	"github.com/vovakirdan/clayrun/internal/registry"
	"github.com/vovakirdan/clayrun/internal/replay"
	"github.com/vovakirdan/clayrun/internal/storage"
)

var (
	flagSimSessions  int
	flagSimMaxFrames int
	flagSimSave      bool
	flagSimRecordDir string
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run the autopilot headlessly",
	Long: `Play whole sessions with the built-in autopilot, without a terminal UI.

Each session picks the next character in turn, runs all three rounds and
logs every transition. A round the autopilot survives for --max-frames is
ended by letting the next obstacle through.

Examples:
  clayrun sim
  clayrun sim --sessions 50 --seed 1
  clayrun sim clayrun_classic --save --log-level debug
  clayrun sim --record-dir ./replays`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimSessions, "sessions", 10, "Number of sessions to play")
	simCmd.Flags().IntVar(&flagSimMaxFrames, "max-frames", 20000, "Frames per round before the autopilot stops jumping")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished runs in the archive as player \"autopilot\"")
	simCmd.Flags().StringVar(&flagSimRecordDir, "record-dir", "", "Write one replay per session into this directory")
}

// simResult is the outcome of one headless session.
type simResult struct {
	summary core.RunSummary
	frames  uint64
}

func runSim(_ *cobra.Command, args []string) {
	gameID := variantArg(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		os.Exit(1)
	}

	logger, closeLog := mustLogger("clayrun-sim", false)
	defer closeLog()

	var store *storage.Store
	if flagSimSave {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open run archive", "error", err)
		} else {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	victories, best, total := 0, 0, 0
	for i := 0; i < flagSimSessions; i++ {
		sessionSeed := seed + int64(i)
		res, err := simulate(gameID, sessionSeed, i, logger.With("session", i+1))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		s := res.summary
		total += s.Total
		if s.Total > best {
			best = s.Total
		}
		if s.Victory {
			victories++
		}
		fmt.Printf("  #%-3d  seed %-20d  %-26s  %s\n",
			i+1, sessionSeed, runner.FormatBreakdown(s.Rounds, s.Total)+"m", outcomeText(s))

		if store != nil {
			if _, err := store.SaveRun(storage.RunRecord{
				GameID:     gameID,
				Player:     "autopilot",
				Character:  s.Character,
				TotalScore: s.Total,
				Rounds:     s.Rounds,
				Victory:    s.Victory,
				Branch:     s.Branch,
			}); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	if flagSimSessions > 0 {
		fmt.Println()
		fmt.Printf("Sessions: %d  Victories: %d  Best: %dm  Average: %dm\n",
			flagSimSessions, victories, best, total/flagSimSessions)
	}
}

// simulate drives one session through the game's own input handling so
// recordings match what an interactive session would produce.
func simulate(gameID string, seed int64, index int, logger *log.Logger) (simResult, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return simResult{}, err
	}
	rg, ok := game.(*runner.Game)
	if !ok {
		return simResult{}, fmt.Errorf("variant %q has no autopilot support", gameID)
	}

	sched := core.NewManualScheduler()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	cfg.TickRate = flagFPS
	rg.SetNotifier(runner.NewLogNotifier(logger))
	rg.Reset(cfg, sched)
	if err := rg.ConfigError(); err != nil {
		logger.Warn("using default config", "error", err)
	}

	var recorder *replay.Recorder
	if flagSimRecordDir != "" {
		recorder = replay.Attach(rg)
	}

	// Character select: step right once per session index
	if chars := len(rg.Characters()); chars > 0 {
		for n := 0; n < index%chars; n++ {
			press(rg, core.ActionRight)
		}
	}
	press(rg, core.ActionConfirm)
	press(rg, core.ActionConfirm)

	bot := runner.NewAutopilot()
	for !rg.State().GameOver {
		roundStart := rg.Engine().Frame()
		for rg.State().Running {
			e := rg.Engine()
			if e.Frame()-roundStart < uint64(flagSimMaxFrames) && bot.ShouldJump(e) {
				press(rg, core.ActionJump)
			}
			sched.RunFrame()
		}
		press(rg, core.ActionConfirm)
	}

	if rg.Summary().Victory {
		press(rg, core.ActionChoice1+core.Action(index%3))
	}

	if recorder != nil {
		path := fmt.Sprintf("%s/%s-%d.replay", flagSimRecordDir, gameID, seed)
		if err := replay.Save(path, recorder.Recording()); err != nil {
			logger.Warn("could not save replay", "error", err)
		}
	}

	res := simResult{summary: rg.Summary(), frames: rg.Engine().Frame()}
	logger.Debug("session finished", "frames", res.frames, "total", res.summary.Total)
	return res, nil
}

func press(g *runner.Game, a core.Action) {
	in := core.NewInputFrame()
	in.Set(a)
	g.Handle(in)
}

func outcomeText(s core.RunSummary) string {
	switch {
	case s.Victory && s.Branch != "":
		return "VICTORY (" + s.Branch + ")"
	case s.Victory:
		return "VICTORY"
	default:
		return "DEFEAT"
	}
}
