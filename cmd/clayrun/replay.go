package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clayrun/internal/games/runner"
	"github.com/vovakirdan/clayrun/internal/replay"
)

var flagReplayVerbose bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded session",
	Long: `Load a recording made with 'clayrun play --record' or 'clayrun sim
--record-dir' and play it back headlessly. The outcome is printed and
checked against the result stored in the recording.

Examples:
  clayrun replay ~/.clayrun/replays/last.replay
  clayrun replay run.replay --verbose --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagReplayVerbose, "verbose", "v", false, "Log every session event")
}

func runReplay(_ *cobra.Command, args []string) {
	logger, closeLog := mustLogger("clayrun-replay", false)
	defer closeLog()

	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var onFrame func(uint64, []runner.Event)
	if flagReplayVerbose {
		notifier := runner.NewLogNotifier(logger)
		onFrame = func(frame uint64, events []runner.Event) {
			for _, ev := range events {
				if _, ok := ev.(runner.ProgressUpdated); ok {
					continue
				}
				notifier.Notify(ev)
			}
		}
	}

	fmt.Printf("Replay of %s (seed %d, %d inputs)\n", rec.GameID, rec.Seed, len(rec.Inputs))

	engine, err := replay.Play(rec, onFrame)
	if engine != nil {
		s := engine.Session()
		fmt.Printf("  Frames:  %d\n", engine.Frame())
		fmt.Printf("  Phase:   %s\n", s.Phase)
		fmt.Printf("  Rounds:  %s\n", s.Breakdown())
		fmt.Printf("  Outcome: %s\n", s.Outcome())
		if s.Branch != "" {
			fmt.Printf("  Ending:  %s\n", s.Branch)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec.Result != nil {
		fmt.Println("Result matches the recording.")
	}
}
