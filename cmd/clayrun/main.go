// clayrun is a terminal arcade runner: a clay figure crosses three rounds
// of obstacles, and the total distance decides where it ends up.
//
// Usage:
//
//	clayrun list              - List game variants
//	clayrun play [variant]    - Play a variant (default: clayrun)
//	clayrun menu              - Pick a variant interactively
//	clayrun scores [variant]  - Print the best runs
//	clayrun board             - Browse the run archive
//	clayrun serve             - Start SSH server for remote play
//	clayrun sim               - Run the autopilot headlessly
//	clayrun replay <file>     - Re-simulate a recorded session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set run archive path (default: ~/.clayrun/runs.db)
//	--config <path>       - Custom runner config (YAML or TOML)
//	--difficulty <name>   - Preset: easy, normal, hard, classic, fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clayrun/internal/config"
	"github.com/vovakirdan/clayrun/internal/games/runner"
)

const defaultVariant = "clayrun"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clayrun",
	Short: "Clay Run - jump your way across the city in your terminal",
	Long: `Clay Run is a one-button runner for the terminal.

Pick a character, jump (twice if needed) over what the street throws at you,
and cover enough ground in three rounds to reach the bakery.

Examples:
  clayrun play
  clayrun play clayrun_classic --difficulty easy
  clayrun menu
  clayrun serve --ssh :2222
  clayrun sim --sessions 20`,
	PersistentPreRunE: applyGameFlags,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.clayrun/runs.db", "Path to run archive")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
}

// applyGameFlags hands --config and --difficulty to the runner before any
// game is created.
func applyGameFlags(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger builds the command logger. Interactive commands own the
// terminal, so without --log-file their logs are discarded.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for commands that cannot continue without one.
func mustLogger(prefix string, interactive bool) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(prefix, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}

// variantArg returns the variant named in args, or the default one.
func variantArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultVariant
}
