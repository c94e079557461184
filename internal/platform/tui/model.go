package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/frame"
	"github.com/vovakirdan/giraffe-run/internal/registry"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

// flashSeconds is how long a status message stays on screen.
const flashSeconds = 2

// ModelOptions configures a game model.
type ModelOptions struct {
	// Session is recorded with every run, "local" when empty.
	Session string
	// Logger receives frame failures and run events. Discarded when nil,
	// since anything written to the terminal would corrupt the alt screen.
	Logger *log.Logger
	// OnFrameError is called for every failed frame after it is logged.
	OnFrameError func(error)
	// AllowBack lets b/esc leave the game when it is paused or over.
	AllowBack bool
	// ScreenshotDir overrides ~/.giraffe/screenshots.
	ScreenshotDir string
}

// screenshotter is implemented by games that offer saving the screen.
type screenshotter interface {
	ScreenshotEnabled() bool
}

// Model is the Bubble Tea model for running one game.
// The frame driver runs one guarded frame per TickMsg; the frame also paints
// the screen, so View only converts the painted buffer.
type Model struct {
	id         uint64
	loop       *gameLoop
	screen     *core.Screen
	driver     *frame.Driver
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
}

// gameLoop is the frame state shared by every copy of a Model.
// Only the Bubble Tea goroutine touches it.
type gameLoop struct {
	game      registry.Game
	store     *storage.Store
	config    core.RuntimeConfig
	fixedSeed bool
	session   string
	logger    *log.Logger
	shotDir   string
	allowBack bool
	screen    *core.Screen

	input      core.InputFrame
	state      core.GameState
	flash      string
	flashTicks int
	wantShot   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) Model {
	fixedSeed := cfg.Seed != 0
	if !fixedSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	session := opts.Session
	if session == "" {
		session = "local"
	}

	loop := &gameLoop{
		game:      game,
		store:     store,
		config:    cfg,
		fixedSeed: fixedSeed,
		session:   session,
		logger:    logger,
		shotDir:   opts.ScreenshotDir,
		allowBack: opts.AllowBack,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		input:     core.NewInputFrame(),
	}

	return Model{
		id:     loopIDs.Add(1),
		loop:   loop,
		screen: loop.screen,
		// Bubble Tea's tick command is the scheduler, so the driver is
		// ticked directly.
		driver: frame.NewDriver(nil, loop.frame, frame.Options{
			Logger:  logger,
			OnError: opts.OnFrameError,
		}),
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.loop.game.Reset(m.loop.config)
	m.loop.state = m.loop.game.State()
	return tickCmd(m.id, m.loop.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.id {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.loop.requestScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.driver.Stop()
		return m, tea.Quit
	}

	state := m.loop.state
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionBack:
		if m.loop.allowBack && (state.GameOver || state.Paused) {
			m.backToMenu = true
			m.driver.Stop()
			return m, nil
		}
		// Esc pauses a running game
		if !state.GameOver {
			m.loop.input.Set(core.ActionPause)
		}
		return m, nil

	case core.ActionRestart:
		if !state.GameOver {
			return m, nil
		}
	}

	m.loop.input.Set(action)
	return m, nil
}

// handleResize processes window resize events. The game keeps running:
// world coordinates do not depend on the terminal size. The next frame
// repaints the resized buffer.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.loop.config.ScreenW = msg.Width
	m.loop.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick runs one frame and requests the next while the loop is live.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.driver.Tick() {
		return m, nil
	}
	return m, tickCmd(m.id, m.loop.config.TickRate)
}

// frame is the per-tick work handed to the frame driver: one game step,
// then the paint.
func (l *gameLoop) frame() error {
	defer l.input.Clear()

	err := l.step()
	l.paint()
	return err
}

func (l *gameLoop) step() error {
	if l.flashTicks > 0 {
		l.flashTicks--
		if l.flashTicks == 0 {
			l.flash = ""
		}
	}

	if l.input.Has(core.ActionRestart) && l.state.GameOver {
		if !l.fixedSeed {
			l.config.Seed = time.Now().UnixNano()
		}
		l.game.Reset(l.config)
		l.state = l.game.State()
		return nil
	}

	result := l.game.Step(l.input)
	l.state = result.State

	if result.Ended {
		return l.recordRun()
	}
	return nil
}

// recordRun logs a finished run and adds it to the ledger.
func (l *gameLoop) recordRun() error {
	l.logger.Info("Run ended",
		"variant", l.game.ID(),
		"session", l.session,
		"score", l.state.Score,
		"level", l.state.Level,
		"ticks", l.state.Ticks,
		"record", l.state.NewRecord,
	)

	if l.store == nil || l.state.Score <= 0 {
		return nil
	}

	_, err := l.store.RecordRun(storage.RunRecord{
		Variant:      l.game.ID(),
		Session:      l.session,
		Score:        l.state.Score,
		Level:        l.state.Level,
		Ticks:        l.state.Ticks,
		RecordBeaten: l.state.NewRecord,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// paint renders the game, takes a requested screenshot of it and draws the
// status line on top.
func (l *gameLoop) paint() {
	l.game.Render(l.screen)

	if l.wantShot {
		l.wantShot = false
		l.saveScreenshot()
	}

	bottom := l.screen.Height() - 1
	if l.flash != "" {
		l.screen.DrawTextColored(1, bottom, " "+l.flash+" ", core.ColorBrightWhite)
	}
	if l.allowBack && (l.state.GameOver || l.state.Paused) {
		hint := " B: menu "
		l.screen.DrawTextColored(l.screen.Width()-len(hint)-1, bottom, hint, core.ColorBrightWhite)
	}
}

// setFlash shows a status message on the ground line for a while.
func (l *gameLoop) setFlash(msg string) {
	l.flash = msg
	l.flashTicks = flashSeconds * l.config.TickRate
}

// requestScreenshot asks the next frame to save what it paints.
func (l *gameLoop) requestScreenshot() {
	if s, ok := l.game.(screenshotter); !ok || !s.ScreenshotEnabled() {
		l.setFlash("Screenshots are not available in this variant")
		return
	}
	l.wantShot = true
}

// saveScreenshot saves the freshly rendered screen to a file.
func (l *gameLoop) saveScreenshot() {
	dir := l.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			l.logger.Warn("Screenshot failed", "err", err)
			l.setFlash("Screenshot failed")
			return
		}
		dir = filepath.Join(home, ".giraffe", "screenshots")
	}

	path, err := SaveScreenshot(dir, l.game.ID(), l.screen, time.Now())
	if err != nil {
		l.logger.Warn("Screenshot failed", "err", err)
		l.setFlash("Screenshot failed")
		return
	}

	l.logger.Info("Screenshot saved", "path", path)
	l.setFlash("Saved " + filepath.Base(path))
}

// SaveScreenshot writes the screen as plain text to
// dir/<id>_<timestamp>.txt and returns the path.
func SaveScreenshot(dir, id string, screen *core.Screen, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.txt", id, now.Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return RenderScreen(m.screen)
}

// State returns the game state after the last frame.
func (m Model) State() core.GameState {
	return m.loop.state
}

// Driver exposes the frame driver, mainly for its counters.
func (m Model) Driver() *frame.Driver {
	return m.driver
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
