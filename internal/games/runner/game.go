// Package runner implements Giraffe Run, an endless runner in which a giraffe
// jumps over bushes while the ground scrolls towards it.
package runner

import (
	"math/rand"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Simulation to the platform: it owns pause state, maps
// actions to jump edges and keeps the best score across restarts.
type Game struct {
	variant config.Variant
	sim     *Simulation
	runtime core.RuntimeConfig
	paused  bool
	loadErr error
}

// New creates a game for the given variant.
func New(v config.Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.variant.Title()
}

// Reset initializes or restarts the game. Restarts keep the best score.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadVariant(configPath, g.variant)
	g.loadErr = err

	rng := rand.New(rand.NewSource(runtime.Seed))
	if g.sim == nil {
		g.sim = NewSimulation(cfg, rng)
	} else {
		g.sim.Reconfigure(cfg, rng)
	}
	g.paused = false
}

// ConfigError returns the error from the last config load, if the game fell
// back to the defaults because of it.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim.Status() == StatusFailed {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	status, _ := g.sim.Advance(Input{
		JumpBegin:   in.Has(core.ActionJump),
		JumpRelease: in.Has(core.ActionRelease),
	})

	return core.StepResult{
		State: g.State(),
		Ended: status == StatusFailed,
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	Render(dst, g.sim.Snapshot(), g.sim.Config())
	if g.paused {
		DrawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.sim.Snapshot()
	return core.GameState{
		Score:     snap.Score.Current,
		Best:      snap.Score.Best,
		Level:     snap.Difficulty.Level,
		Ticks:     snap.Tick,
		GameOver:  snap.Status == StatusFailed,
		Paused:    g.paused,
		NewRecord: snap.RecordBeaten,
	}
}

// Snapshot returns the simulation snapshot for graphical frontends.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// ScreenshotEnabled reports whether this variant offers screenshots.
func (g *Game) ScreenshotEnabled() bool {
	return g.sim != nil && g.sim.Config().Polish.Screenshot
}

// Register every variant with the registry
func init() {
	for _, v := range config.Variants() {
		registry.Register(string(v), func() registry.Game {
			return New(v)
		})
	}
}
