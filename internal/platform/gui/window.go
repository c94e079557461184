// Package gui runs Giraffe Run in a desktop window with ebiten. Unlike a
// terminal, a window reports key releases, so letting go of Space ends a
// jump early.
package gui

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/frame"
	"github.com/vovakirdan/giraffe-run/internal/games/runner"
)

// groundBand is the height of the painted ground strip.
const groundBand = 6

// Options configures a window.
type Options struct {
	Logger       *log.Logger
	OnFrameError func(error)
}

// Window implements ebiten.Game for one runner variant.
type Window struct {
	game      *runner.Game
	runtime   core.RuntimeConfig
	fixedSeed bool
	driver    *frame.Driver
	logger    *log.Logger

	input core.InputFrame
	state core.GameState
	sheet *ebiten.Image
}

// NewWindow creates a window and starts the first run. A zero seed is
// replaced by a fresh one on every run.
func NewWindow(v config.Variant, runtime core.RuntimeConfig, opts Options) *Window {
	fixedSeed := runtime.Seed != 0
	if !fixedSeed {
		runtime.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &Window{
		game:      runner.New(v),
		runtime:   runtime,
		fixedSeed: fixedSeed,
		logger:    logger,
		input:     core.NewInputFrame(),
	}
	w.game.Reset(runtime)
	w.state = w.game.State()

	// ebiten's Update loop is the scheduler
	w.driver = frame.NewDriver(nil, w.frame, frame.Options{
		Logger:  logger,
		OnError: opts.OnFrameError,
	})
	return w
}

// Update reads input edges and runs one guarded frame.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.driver.Stop()
		return ebiten.Termination
	}

	w.input.Clear()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		w.input.Set(core.ActionJump)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) || inpututil.IsKeyJustReleased(ebiten.KeyUp) {
		w.input.Set(core.ActionRelease)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.input.Set(core.ActionPause)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.input.Set(core.ActionRestart)
	}

	w.driver.Tick()
	return nil
}

// frame advances the game once.
func (w *Window) frame() error {
	if w.input.Has(core.ActionRestart) && w.state.GameOver {
		if !w.fixedSeed {
			w.runtime.Seed = time.Now().UnixNano()
		}
		w.game.Reset(w.runtime)
		w.state = w.game.State()
		return nil
	}

	result := w.game.Step(w.input)
	w.state = result.State
	if result.Ended {
		w.logger.Info("Run ended",
			"variant", w.game.ID(),
			"score", w.state.Score,
			"level", w.state.Level,
			"record", w.state.NewRecord,
		)
	}
	return nil
}

// Draw paints the current snapshot. A failing draw is reported like a
// failed frame and leaves the window running.
func (w *Window) Draw(screen *ebiten.Image) {
	w.driver.Guard(func() error {
		w.draw(screen)
		return nil
	})
}

// draw paints the current snapshot in world coordinates.
func (w *Window) draw(screen *ebiten.Image) {
	cfg := w.game.Simulation().Config()
	snap := w.game.Snapshot()
	width, height := float32(cfg.Field.Width), float32(cfg.Field.Height)

	screen.Fill(skyColor)

	if cfg.Polish.Parallax {
		drawHills(screen, float32(snap.ScrollX), width, height)
	}

	ground := float32(cfg.GroundY() + cfg.Player.Size)
	vector.DrawFilledRect(screen, 0, ground-groundBand, width, groundBand, groundColor, false)

	bush := float32(cfg.Obstacles.Size)
	for _, ob := range snap.Obstacles {
		vector.DrawFilledCircle(screen, float32(ob.X)+bush/2, ground-bush/2, bush/2, bushColor, true)
	}

	w.drawPlayer(screen, cfg, snap)
	w.drawHUD(screen, snap)
}

// drawHills paints a hill row that scrolls at the parallax offset.
func drawHills(dst *ebiten.Image, scroll, width, height float32) {
	const spacing = 180
	base := height * 0.72
	for x := -scroll; x < width+spacing; x += spacing {
		vector.DrawFilledCircle(dst, x, base, spacing*0.45, hillColor, true)
	}
}

// drawPlayer draws the giraffe, cropping the current run frame from the
// sprite sheet when the variant is animated.
func (w *Window) drawPlayer(dst *ebiten.Image, cfg config.RunnerConfig, snap runner.Snapshot) {
	x, y := float32(cfg.Player.X), float32(snap.Player.Y)
	size := float32(cfg.Player.Size)

	if snap.Status == runner.StatusFailed {
		drawGiraffe(dst, x, y, size, size, 0, failedColor)
		return
	}
	if !cfg.Polish.Animated || cfg.Polish.FrameWidth <= 0 || cfg.Polish.FrameHeight <= 0 {
		drawGiraffe(dst, x, y, size, size, 0, giraffeColor)
		return
	}

	if w.sheet == nil {
		w.sheet = buildSheet(cfg.Polish)
	}
	crop := w.game.Simulation().FrameCrop()
	sub := w.sheet.SubImage(image.Rect(crop.X, crop.Y, crop.Right(), crop.Bottom())).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(size)/float64(crop.W), float64(size)/float64(crop.H))
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(sub, &op)
}

func (w *Window) drawHUD(dst *ebiten.Image, snap runner.Snapshot) {
	hud := fmt.Sprintf("Score: %d   Level: %d", snap.Score.Current, snap.Difficulty.Level)
	if snap.Score.HasBest {
		hud += fmt.Sprintf("   Record: %d", snap.Score.Best)
	}
	ebitenutil.DebugPrintAt(dst, hud, 10, 10)

	switch {
	case snap.Status == runner.StatusFailed && snap.RecordBeaten:
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("GAME OVER - new record %d! Press R", snap.Score.Current), 330, 200)
	case snap.Status == runner.StatusFailed:
		ebitenutil.DebugPrintAt(dst, "GAME OVER - press R to restart", 340, 200)
	case w.state.Paused:
		ebitenutil.DebugPrintAt(dst, "PAUSED", 430, 200)
	}
}

// Layout keeps the logical screen at the field size; ebiten scales it to
// the window.
func (w *Window) Layout(_, _ int) (int, int) {
	cfg := w.game.Simulation().Config()
	return int(cfg.Field.Width), int(cfg.Field.Height)
}

// Run opens the window and blocks until it is closed.
func Run(v config.Variant, runtime core.RuntimeConfig, opts Options) error {
	w := NewWindow(v, runtime, opts)
	if err := w.game.ConfigError(); err != nil {
		w.logger.Warn("Using default config", "err", err)
	}

	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(w.game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if runtime.TickRate > 0 {
		ebiten.SetTPS(runtime.TickRate)
	}

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
