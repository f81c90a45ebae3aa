package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clayrun/internal/platform/tui"
	"github.com/vovakirdan/clayrun/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the run archive",
	Long: `Open the interactive run archive with per-variant stats.

Controls:
  Tab/Shift+Tab - Switch variant
  Up/Down       - Scroll runs
  Q             - Quit`,
	Run: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
