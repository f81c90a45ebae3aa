package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/clayrun/internal/platform/tui"
	"github.com/vovakirdan/clayrun/internal/registry"
	"github.com/vovakirdan/clayrun/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Print the best runs of a variant",
	Long: `Display the best runs for the given variant (default: clayrun),
with the distance of every round.

Examples:
  clayrun scores
  clayrun scores clayrun_classic --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := variantArg(args)

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'clayrun list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'clayrun play %s' to set the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-16s  %-9s  %s\n", "Rank", "Total", "Rounds", "Ending", "Date")
	fmt.Printf("  %-4s  %-7s  %-16s  %-9s  %s\n", "----", "-----", "------", "------", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-7s  %-16s  %-9s  %s\n",
			i+1,
			fmt.Sprintf("%dm", r.TotalScore),
			tui.FormatRounds(r.Rounds),
			tui.FormatEnding(r),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %dm  Runs: %d  Victories: %d\n", stats.HighScore, stats.RunsCount, stats.Victories)
	}
}
