package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/frame"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

// stubGame scores one point per tick and ends after endAt ticks.
type stubGame struct {
	endAt     int
	shots     bool
	badRender bool
	state     core.GameState
	resets    int
	lastCfg   core.RuntimeConfig
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.lastCfg = cfg
	best := g.state.Best
	g.state = core.GameState{Best: best, Level: 1}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if g.state.GameOver {
		return core.StepResult{State: g.state}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.state.Paused {
		return core.StepResult{State: g.state}
	}

	g.state.Ticks++
	g.state.Score++
	if g.state.Ticks >= g.endAt {
		g.state.GameOver = true
		g.state.NewRecord = g.state.Score > g.state.Best
		if g.state.NewRecord {
			g.state.Best = g.state.Score
		}
		return core.StepResult{State: g.state, Ended: true}
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	if g.badRender {
		panic("renderer blew up")
	}
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState   { return g.state }
func (g *stubGame) ScreenshotEnabled() bool { return g.shots }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T, game *stubGame, store *storage.Store, opts ModelOptions) Model {
	t.Helper()
	m := NewModel(game, store, testConfig(), opts)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init() should start the tick loop")
	}
	return m
}

// send feeds one message and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg{Loop: m.id, Time: time.Now()})
}

func TestModelTicksUntilQuit(t *testing.T) {
	game := &stubGame{endAt: 1000}
	m := newTestModel(t, game, nil, ModelOptions{})

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		m, cmd = tick(t, m)
		if cmd == nil {
			t.Fatalf("tick %d did not request the next tick", i)
		}
	}
	if m.State().Ticks != 3 || m.Driver().Frames() != 3 {
		t.Fatalf("ticks/frames = %d/%d, expected 3/3", m.State().Ticks, m.Driver().Frames())
	}

	m, cmd = send(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if !m.Driver().Stopped() {
		t.Error("quitting should stop the driver")
	}

	m, cmd = tick(t, m)
	if cmd != nil {
		t.Error("stopped model must not request more ticks")
	}
	if m.Driver().Frames() != 3 {
		t.Errorf("frame ran after quit: %d", m.Driver().Frames())
	}
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	m := newTestModel(t, &stubGame{endAt: 1000}, nil, ModelOptions{})

	m, cmd := send(t, m, TickMsg{Loop: m.id + 1000})
	if cmd != nil || m.Driver().Frames() != 0 {
		t.Error("tick from another loop should be ignored")
	}
}

func TestModelInputConsumedByTick(t *testing.T) {
	game := &stubGame{endAt: 1000}
	m := newTestModel(t, game, nil, ModelOptions{})

	m, _ = send(t, m, runeKey("p"))
	m, _ = tick(t, m)
	if !m.State().Paused {
		t.Fatal("p should pause the game on the next tick")
	}

	// Input is consumed by the tick
	m, _ = tick(t, m)
	if !m.State().Paused {
		t.Error("pause toggled twice from one key press")
	}
}

func TestModelRecordsRunAndRestarts(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &stubGame{endAt: 5}
	m := newTestModel(t, game, store, ModelOptions{Session: "tester"})

	// r is ignored while running
	m, _ = send(t, m, runeKey("r"))
	for i := 0; i < 5; i++ {
		m, _ = tick(t, m)
	}
	if !m.State().GameOver {
		t.Fatal("expected game over after 5 ticks")
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if r := runs[0]; r.Score != 5 || r.Ticks != 5 || r.Session != "tester" || !r.RecordBeaten {
		t.Errorf("unexpected run record: %+v", r)
	}

	// Ticks after the end do not record again
	m, _ = tick(t, m)
	if runs, _ := store.TopRuns("stub", 10); len(runs) != 1 {
		t.Errorf("run recorded %d times", len(runs))
	}

	m, _ = send(t, m, runeKey("r"))
	m, _ = tick(t, m)
	if m.State().GameOver || m.State().Score != 0 {
		t.Errorf("restart should begin a new run, got %+v", m.State())
	}
	if m.State().Best != 5 {
		t.Errorf("best = %d after restart, expected 5", m.State().Best)
	}
	if game.lastCfg.Seed != 7 {
		t.Errorf("a fixed seed should survive restarts, got %d", game.lastCfg.Seed)
	}
}

func TestModelWithoutLedger(t *testing.T) {
	m := newTestModel(t, &stubGame{endAt: 2}, nil, ModelOptions{})

	for i := 0; i < 3; i++ {
		m, _ = tick(t, m)
	}
	if !m.State().GameOver {
		t.Fatal("expected game over after 2 ticks")
	}
	if m.Driver().Failures() != 0 {
		t.Errorf("failures = %d, a run without a ledger must end cleanly", m.Driver().Failures())
	}
}

func TestModelFrameErrorIsReported(t *testing.T) {
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	var reported []error
	game := &stubGame{endAt: 1}
	m := newTestModel(t, game, store, ModelOptions{
		OnFrameError: func(err error) { reported = append(reported, err) },
	})

	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("a failed frame must not stop the loop")
	}
	if m.Driver().Failures() != 1 || len(reported) != 1 {
		t.Fatalf("failures = %d, reported = %d; expected 1/1", m.Driver().Failures(), len(reported))
	}
	if !strings.Contains(reported[0].Error(), "record run") {
		t.Errorf("unexpected error: %v", reported[0])
	}
}

func TestModelRenderFailureIsContained(t *testing.T) {
	var reported []error
	game := &stubGame{endAt: 1000, badRender: true}
	m := newTestModel(t, game, nil, ModelOptions{
		OnFrameError: func(err error) { reported = append(reported, err) },
	})

	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("a failed render must not stop the loop")
	}
	if m.Driver().Failures() != 1 || len(reported) != 1 {
		t.Fatalf("failures = %d, reported = %d; expected 1/1", m.Driver().Failures(), len(reported))
	}
	var pe *frame.PanicError
	if !errors.As(reported[0], &pe) {
		t.Errorf("expected a PanicError, got %v", reported[0])
	}

	// View only converts the buffer, so it never calls the renderer
	_ = m.View()

	game.badRender = false
	m, _ = tick(t, m)
	if !strings.Contains(m.View(), "stub") {
		t.Error("the next good frame should paint again")
	}
	if m.State().Ticks != 2 {
		t.Errorf("ticks = %d, expected the game to keep stepping", m.State().Ticks)
	}
}

func TestModelBackToMenu(t *testing.T) {
	game := &stubGame{endAt: 1000}
	m := newTestModel(t, game, nil, ModelOptions{AllowBack: true})

	// Esc while running pauses
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc while running should pause, not leave")
	}
	m, _ = tick(t, m)
	if !m.State().Paused {
		t.Fatal("esc should have paused the game")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("esc while paused should return to the menu")
	}
	if !m.Driver().Stopped() {
		t.Error("leaving the game should stop the driver")
	}
}

func TestModelBackDisabled(t *testing.T) {
	m := newTestModel(t, &stubGame{endAt: 1}, nil, ModelOptions{})
	m, _ = tick(t, m)

	m, _ = send(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back must be ignored without a menu")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &stubGame{endAt: 1000}
	m := newTestModel(t, game, nil, ModelOptions{})
	m, _ = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", game.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
	if m.State().Ticks != 1 {
		t.Errorf("ticks = %d after resize, expected 1", m.State().Ticks)
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	game := &stubGame{endAt: 1000, shots: true}
	m := newTestModel(t, game, nil, ModelOptions{ScreenshotDir: dir})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = tick(t, m)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "stub_") {
		t.Fatalf("expected one stub screenshot, got %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "stub") || strings.Contains(string(data), "Saved") {
		t.Errorf("screenshot should hold the game without the status line, got %q", data)
	}
	if !strings.Contains(m.View(), "Saved stub_") {
		t.Error("expected a saved message on screen")
	}
}

func TestModelScreenshotUnavailable(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, &stubGame{endAt: 1000}, nil, ModelOptions{ScreenshotDir: dir})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = tick(t, m)

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("screenshot written for a variant without screenshots: %v", entries)
	}
	if !strings.Contains(m.View(), "not available") {
		t.Error("expected an unavailable message on screen")
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	screen := core.NewScreen(5, 2)
	screen.DrawText(0, 0, "hello")
	screen.DrawText(0, 1, "world")

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path, err := SaveScreenshot(dir, "sprite", screen, now)
	if err != nil {
		t.Fatalf("SaveScreenshot() failed: %v", err)
	}
	if filepath.Base(path) != "sprite_20260102_030405.txt" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != screen.String() {
		t.Errorf("screenshot = %q, expected %q", data, screen.String())
	}
}

func TestSaveScreenshotBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := SaveScreenshot(filepath.Join(file, "sub"), "sprite", core.NewScreen(1, 1), time.Now())
	if err == nil {
		t.Fatal("expected error when the directory cannot be created")
	}
	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("expected wrapped path error, got %v", err)
	}
}
