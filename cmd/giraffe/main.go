// giraffe is an endless runner: a giraffe jumps over bushes while the
// savanna scrolls past. It plays in the terminal, a desktop window, over
// SSH or headless.
//
// Usage:
//
//	giraffe list               - List available variants
//	giraffe play [variant]     - Play a variant in the terminal
//	giraffe menu               - Pick variants interactively, with a scoreboard
//	giraffe window [variant]   - Play in a desktop window
//	giraffe serve              - Start SSH server for remote play
//	giraffe sim [variant]      - Run a bot without a display
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Load runner config from a YAML file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/giraffe-run/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "giraffe",
	Short: "Giraffe Run - an endless runner for terminals and windows",
	Long: `Giraffe Run is an endless runner: jump over the bushes, and the
longer you last the faster the savanna scrolls.

Available commands:
  list     - Show all variants
  play     - Play a variant in the terminal
  menu     - Interactive variant picker with a session scoreboard
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  sim      - Run a bot headless and print the result

Examples:
  giraffe list
  giraffe play classic
  giraffe menu
  giraffe window sprite
  giraffe serve --ssh :2222
  giraffe sim --ticks 10000 --bot autojump`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		runner.SetConfigPath(flagConfig)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}
