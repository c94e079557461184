package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/giraffe-run/internal/core"
	_ "github.com/vovakirdan/giraffe-run/internal/games/runner"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s, cmd
}

func TestSessionMenuGameMenu(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	m := NewSessionModel(store, cfg, ModelOptions{Session: "tester"})

	if !strings.Contains(m.View(), "Giraffe Run") {
		t.Fatal("menu should list the variants")
	}

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame || cmd == nil {
		t.Fatal("enter should start the selected variant")
	}
	first := m.game.loop.game

	// Pause, then leave
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sendSession(t, m, TickMsg{Loop: m.game.id})
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatal("esc while paused should return to the menu")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game.loop.game != first {
		t.Error("the session should reuse the variant's game so its best score survives")
	}
}

func TestSessionScoreboard(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.RecordRun(storage.RunRecord{Variant: "classic", Session: "alice", Score: 77, Level: 2})

	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	m := NewSessionModel(store, cfg, ModelOptions{})

	if !strings.Contains(m.View(), "77") {
		t.Error("menu should show the ledger best score")
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewScores {
		t.Fatal("tab should open the scoreboard")
	}
	view := m.View()
	if !strings.Contains(view, "alice") || !strings.Contains(view, "Runs: 1") {
		t.Errorf("scoreboard should list alice's run, got:\n%s", view)
	}

	m, cmd := sendSession(t, m, runeKey("b"))
	if m.view != viewMenu {
		t.Fatal("b should return to the menu")
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("returning to the menu must not quit the session")
		}
	}

	m, cmd = sendSession(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should quit")
	}
}
