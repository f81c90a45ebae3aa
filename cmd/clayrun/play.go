package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clayrun/internal/audio"
	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/games/runner"
	"github.com/vovakirdan/clayrun/internal/platform/tui"
	"github.com/vovakirdan/clayrun/internal/registry"
	"github.com/vovakirdan/clayrun/internal/replay"
	"github.com/vovakirdan/clayrun/internal/storage"
)

var (
	flagRecord string
	flagSound  bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play the runner",
	Long: `Start a session of the given variant (default: clayrun).

Controls:
  Left/Right     - Choose character
  Enter          - Confirm / continue
  Space/Up       - Jump (press again in the air for a double jump)
  1/2/3          - Pick an ending after a victory
  R              - Restart (after the session ends)
  B              - Back (when no round is in play)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy    - Slower base speeds
  normal  - Config values as they are
  hard    - Faster base speeds and denser obstacles
  classic - Gentle 0.2 speed ramp per cleared obstacle
  fixed   - No speed ramp inside a round

Examples:
  clayrun play
  clayrun play clayrun_classic
  clayrun play --difficulty hard --sound
  clayrun play --record ~/.clayrun/replays/last.replay`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session's inputs to this file")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with finished runs")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := variantArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'clayrun list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog := mustLogger("clayrun", true)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var recorder *replay.Recorder
	if rg, ok := game.(*runner.Game); ok {
		board := setupSound(logger)
		if board != nil {
			defer board.Close()
		}
		rg.SetNotifier(runner.Notifiers{runner.NewLogNotifier(logger), soundNotifier(board)})
		if flagRecord != "" {
			recorder = replay.Attach(rg)
		}
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
		store = nil
	}

	runErr := tui.Run(game, store, cfg, tui.Options{
		Player: flagPlayer,
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}

	if recorder != nil {
		if saveErr := replay.Save(flagRecord, recorder.Recording()); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", saveErr)
		} else {
			fmt.Printf("Recorded %d inputs to %s\n", recorder.Len(), flagRecord)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// setupSound opens the audio device when --sound is set. A missing device
// is only a warning.
func setupSound(logger *log.Logger) *audio.Board {
	if !flagSound {
		return nil
	}
	board := audio.NewBoard()
	if err := board.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		return nil
	}
	return board
}

// soundNotifier avoids handing a typed nil board to runner.Notifiers.
func soundNotifier(board *audio.Board) runner.Notifier {
	if board == nil {
		return nil
	}
	return board
}
