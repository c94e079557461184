package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/giraffe-run/internal/platform/tui"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from a menu",
	Long: `Start Giraffe Run in interactive menu mode.

Pick a variant with the arrow keys and Enter. Pause or lose a run and press
B to come back; your best score for each variant is kept until you quit.
Tab opens the scoreboard of the runs played in this session.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select variant
  Tab          - Scoreboard
  Q            - Quit

Examples:
  giraffe menu
  giraffe menu --fps 30`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("giraffe", true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		logger.Warn("Could not open run ledger", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(store, terminalConfig(), tui.ModelOptions{Logger: logger}); err != nil {
		return fmt.Errorf("run menu: %w", err)
	}
	return nil
}
