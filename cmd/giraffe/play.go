package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/platform/tui"
	"github.com/vovakirdan/giraffe-run/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant in the terminal",
	Long: `Start playing the given variant, "sprite" when none is named.

Controls:
  Space/Up/W   - Jump
  Down/S       - Cut the jump short (terminals cannot see key release)
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot (sprite variant)
  Q/Ctrl+C     - Quit

Examples:
  giraffe play
  giraffe play classic
  giraffe play parallax --fps 30
  giraffe play sprite --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// variantArg returns the variant named by args, or sprite.
func variantArg(args []string) (config.Variant, error) {
	if len(args) == 0 {
		return config.VariantSprite, nil
	}
	if !registry.Exists(args[0]) {
		return "", fmt.Errorf("unknown variant %q, run 'giraffe list' to see available variants", args[0])
	}
	return config.Variant(args[0]), nil
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("giraffe", true)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(string(variant))
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	// A single game has no scoreboard, so no ledger; runs are only logged.
	// Use "giraffe menu" to keep score across runs.
	if err := tui.Run(game, nil, terminalConfig(), tui.ModelOptions{Logger: logger}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
