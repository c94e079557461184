package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open sessions on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.giraffe/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int

	// Logger receives server and session events. Defaults to stderr.
	Logger *log.Logger

	// OnFrameError is called for frame failures in any session.
	OnFrameError func(error)
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SessionCounts reports how many SSH sessions are open and have been served.
type SessionCounts struct {
	Active int64
	Total  int64
}

// SSHServer serves the session model over SSH. All sessions share one
// in-memory run ledger, so players see each other's runs until the server
// stops.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	active atomic.Int64
	total  atomic.Int64
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "giraffe-ssh",
		})
	}

	hostKeyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open()
	if err != nil {
		// Sessions still play, only the scoreboard stays empty
		logger.Warn("Could not open run ledger", "err", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.trackSessions,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("create SSH server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the host key path, defaulting to
// ~/.giraffe/host_key, and makes sure its directory exists. Wish generates
// the key on first start.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".giraffe", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create host key directory: %w", err)
	}
	return path, nil
}

// teaHandler builds the session model for one SSH connection. Runs are
// recorded under the SSH user name.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("No PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.store, cfg, ModelOptions{
		Session:      sess.User(),
		Logger:       s.logger.With("user", sess.User()),
		OnFrameError: s.config.OnFrameError,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSessions counts sessions and logs when they open and close.
func (s *SSHServer) trackSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		active := s.active.Add(1)
		s.total.Add(1)
		start := time.Now()
		s.logger.Info("Session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", active,
		)

		next(sess)

		s.logger.Info("Session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"active", s.active.Add(-1),
		)
	}
}

// Sessions returns the current session counts.
func (s *SSHServer) Sessions() SessionCounts {
	return SessionCounts{Active: s.active.Load(), Total: s.total.Load()}
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully. A listener failure is returned immediately.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve SSH: %w", err)
	case <-ctx.Done():
	}

	counts := s.Sessions()
	s.logger.Info("Shutting down", "active", counts.Active, "served", counts.Total)
	return s.Shutdown()
}

// Shutdown gracefully stops the server and drops the ledger.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
