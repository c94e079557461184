package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/headless"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

var (
	flagTicks    int
	flagRealtime bool
	flagRestart  bool
	flagBot      string
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Run a bot without a display",
	Long: `Run the given variant, "sprite" when none is named, with a bot at the
controls and print how it went.

By default frames run back to back; --realtime paces them at --fps.

Bots:
  autojump  - Jumps when a bush comes within reach
  idle      - Never jumps

Examples:
  giraffe sim --ticks 10000
  giraffe sim classic --bot idle --restart
  giraffe sim parallax --realtime --fps 120 --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 5000, "Number of frames to run")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames at --fps instead of running unthrottled")
	simCmd.Flags().BoolVar(&flagRestart, "restart", false, "Start a new run after each failure")
	simCmd.Flags().StringVar(&flagBot, "bot", "autojump", "Bot at the controls: autojump, idle")
}

func botByName(name string) (headless.Bot, error) {
	switch name {
	case "autojump":
		return headless.NewAutoJumper(), nil
	case "idle":
		return headless.Idle{}, nil
	}
	return nil, fmt.Errorf("unknown bot %q", name)
}

func runSim(_ *cobra.Command, args []string) error {
	variant, err := variantArg(args)
	if err != nil {
		return err
	}
	bot, err := botByName(flagBot)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("giraffe-sim", false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := headless.Run(ctx, headless.Options{
		Variant:  variant,
		Runtime:  core.RuntimeConfig{TickRate: flagFPS, Seed: seed},
		Ticks:    flagTicks,
		Realtime: flagRealtime,
		Restart:  flagRestart,
		Bot:      bot,
		Store:    store,
		Logger:   logger,
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	elapsed := time.Since(start)

	printSimResult(variant, seed, bot, res, elapsed)

	stats, statsErr := store.Stats(string(variant))
	if statsErr == nil && stats.Runs > 0 {
		fmt.Printf("  %-10s %d runs, avg %.1f, best %d\n", "Ledger", stats.Runs, stats.AvgScore, stats.Best)
	}
	return nil
}

func printSimResult(variant config.Variant, seed int64, bot headless.Bot, res headless.Result, elapsed time.Duration) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	fmt.Println(title.Render(fmt.Sprintf("%s / %s", variant, bot.BotID())))

	snap := res.Final
	fmt.Printf("  %-10s %d\n", "Seed", seed)
	fmt.Printf("  %-10s %d in %s", "Frames", res.Frames, elapsed.Round(time.Millisecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf(" (%.0f fps)", float64(res.Frames)/secs)
	}
	fmt.Println()
	if res.Failures > 0 {
		fmt.Printf("  %-10s %d\n", "Failures", res.Failures)
	}
	fmt.Printf("  %-10s %d\n", "Runs", res.Runs)
	fmt.Printf("  %-10s %s at tick %d, score %d, level %d\n", "Final", snap.Status, snap.Tick, snap.Score.Current, snap.Difficulty.Level)
	fmt.Printf("  %-10s %d bushes, giraffe %s at y=%.0f\n", "", len(snap.Obstacles), snap.Player.Phase, snap.Player.Y)
	if snap.Score.HasBest {
		fmt.Printf("  %-10s %d\n", "Best", snap.Score.Best)
	}
}
