package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/giraffe-run/internal/frame"
	"github.com/vovakirdan/giraffe-run/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagStatsview   string
	flagSentryDSN   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Giraffe Run SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the variant menu. All sessions
share one scoreboard, which is dropped when the server stops.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.giraffe/host_key

Monitoring:
  --statsview serves live runtime charts (goroutines, heap, GC) at
  http://<addr>/debug/statsview. --sentry-dsn reports failed and panicked
  frames to Sentry.

Examples:
  giraffe serve                            # Listen on :23234 with auto-generated key
  giraffe serve --ssh :2222                # Listen on port 2222
  giraffe serve --host-key ./my_host_key   # Use specific host key
  giraffe serve --statsview localhost:18066

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagStatsview, "statsview", "", "Serve runtime charts on this address (disabled when empty)")
	serveCmd.Flags().StringVar(&flagSentryDSN, "sentry-dsn", "", "Report frame failures to this Sentry DSN")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("giraffe-ssh", false)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	if flagSentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: flagSentryDSN}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(5 * time.Second)
		defer sentry.Recover()

		cfg.OnFrameError = reportFrameError
		logger.Info("Reporting frame failures to Sentry")
	}

	if flagStatsview != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(flagStatsview))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		logger.Info("Serving runtime stats", "url", "http://"+flagStatsview+"/debug/statsview")
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Giraffe Run SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.Serve(ctx)
}

// reportFrameError sends a failed frame to Sentry. Panics keep their
// recovered value and stack.
func reportFrameError(err error) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "frame")
	})

	var panicErr *frame.PanicError
	if errors.As(err, &panicErr) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetExtra("stack", string(panicErr.Stack))
		})
		hub.Recover(panicErr.Value)
		return
	}
	hub.CaptureException(err)
}
