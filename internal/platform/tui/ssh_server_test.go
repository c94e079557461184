package tui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestResolveHostKeyCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := resolveHostKey(path)
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory was not created: %v", err)
	}
}

func TestResolveHostKeyDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if want := filepath.Join(home, ".giraffe", "host_key"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSSHServerServeStopsOnCancel(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if counts := srv.Sessions(); counts.Active != 0 || counts.Total != 0 {
		t.Errorf("fresh server reports sessions: %+v", counts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
