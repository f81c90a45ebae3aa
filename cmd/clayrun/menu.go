package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clayrun/internal/core"
	"github.com/vovakirdan/clayrun/internal/games/runner"
	"github.com/vovakirdan/clayrun/internal/platform/tui"
	"github.com/vovakirdan/clayrun/internal/registry"
	"github.com/vovakirdan/clayrun/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start Clay Run in interactive menu mode.

After a session you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Run archive
  Q            - Quit

Examples:
  clayrun menu
  clayrun menu --fps 30
  clayrun menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	menuCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with finished runs")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger("clayrun", true)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
		store = nil
	}

	board := setupSound(logger)
	if board != nil {
		defer board.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes made while the menu was open
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}
		if rg, ok := game.(*runner.Game); ok {
			rg.SetNotifier(runner.Notifiers{runner.NewLogNotifier(logger), soundNotifier(board)})
		}

		// Fresh seed for each session unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, tui.Options{Player: flagPlayer, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
