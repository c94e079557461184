package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play the given variant, "sprite" when none
is named. Holding Space jumps to full height; letting go early makes a
short hop.

Controls:
  Space/Up   - Jump (release early for a short hop)
  P          - Pause
  R          - Restart (after game over)
  Q/Esc      - Quit

Examples:
  giraffe window
  giraffe window parallax --fps 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("giraffe", false)
	if err != nil {
		return err
	}
	defer closeLog()

	runtime := core.DefaultConfig()
	runtime.TickRate = flagFPS
	runtime.Seed = flagSeed

	if err := gui.Run(variant, runtime, gui.Options{Logger: logger}); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
