package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/registry"
)

func newTestGame(t *testing.T, v config.Variant) *Game {
	t.Helper()
	g := New(v)
	runtime := core.DefaultConfig()
	runtime.Seed = 42
	g.Reset(runtime)
	return g
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range config.Variants() {
		if !registry.Exists(string(v)) {
			t.Errorf("variant %q not registered", v)
			continue
		}
		g, err := registry.Create(string(v))
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", v, err)
		}
		if g.ID() != string(v) || g.Title() != v.Title() {
			t.Errorf("Create(%q) = %s/%s", v, g.ID(), g.Title())
		}
	}
}

func TestGameAppliesVariant(t *testing.T) {
	tests := []struct {
		variant    config.Variant
		ramp       int
		parallax   bool
		screenshot bool
	}{
		{config.VariantClassic, 1000, false, false},
		{config.VariantParallax, 500, true, false},
		{config.VariantSprite, 500, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.variant), func(t *testing.T) {
			g := newTestGame(t, tc.variant)
			cfg := g.Simulation().Config()
			if cfg.Difficulty.RampEvery != tc.ramp {
				t.Errorf("RampEvery = %d, expected %d", cfg.Difficulty.RampEvery, tc.ramp)
			}
			if cfg.Polish.Parallax != tc.parallax {
				t.Errorf("Parallax = %v, expected %v", cfg.Polish.Parallax, tc.parallax)
			}
			if g.ScreenshotEnabled() != tc.screenshot {
				t.Errorf("ScreenshotEnabled() = %v, expected %v", g.ScreenshotEnabled(), tc.screenshot)
			}
		})
	}
}

func TestGameJumpActions(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)

	g.Step(frameWith(core.ActionJump))
	if phase := g.Snapshot().Player.Phase; phase != PhaseAscending {
		t.Fatalf("phase after jump = %v, expected ascending", phase)
	}

	// A release right after take-off lands in the same tick, so climb first
	g.Step(frameWith())
	g.Step(frameWith())
	climbed := g.Snapshot().Player.Y

	g.Step(frameWith(core.ActionRelease))
	p := g.Snapshot().Player
	if p.Phase != PhaseDescending {
		t.Errorf("phase after release = %v, expected descending", p.Phase)
	}
	if p.Y <= climbed {
		t.Errorf("y after release = %v, expected below the climb at %v", p.Y, climbed)
	}

	for i := 0; i < 10 && g.Snapshot().Player.Phase != PhaseGrounded; i++ {
		g.Step(frameWith())
	}
	if p := g.Snapshot().Player; p.Phase != PhaseGrounded || p.Y != g.Simulation().Config().GroundY() {
		t.Errorf("player = %+v, expected grounded at %v", p, g.Simulation().Config().GroundY())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, config.VariantClassic)

	g.Step(frameWith())
	res := g.Step(frameWith(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	ticks := res.State.Ticks

	for i := 0; i < 10; i++ {
		res = g.Step(frameWith(core.ActionJump))
	}
	if res.State.Ticks != ticks {
		t.Errorf("ticks advanced while paused: %d -> %d", ticks, res.State.Ticks)
	}
	if g.Snapshot().Player.Phase != PhaseGrounded {
		t.Error("jump applied while paused")
	}

	res = g.Step(frameWith(core.ActionPause))
	if res.State.Paused {
		t.Fatal("expected unpaused state")
	}
	if res.State.Ticks != ticks+1 {
		t.Errorf("ticks = %d after resume, expected %d", res.State.Ticks, ticks+1)
	}
}

func TestGameEndAndRestartKeepsBest(t *testing.T) {
	g := newTestGame(t, config.VariantParallax)
	sim := g.Simulation()
	sim.score.Current = 42
	sim.obstacles = append(sim.obstacles, Obstacle{X: 30})

	res := g.Step(frameWith())
	if !res.Ended || !res.State.GameOver {
		t.Fatalf("expected run to end, got %+v", res)
	}
	if res.State.Best != 42 {
		t.Errorf("best = %d, expected 42", res.State.Best)
	}

	// Further steps report the end only once
	res = g.Step(frameWith(core.ActionJump))
	if res.Ended {
		t.Error("Ended reported twice")
	}

	g.Reset(core.DefaultConfig())
	state := g.State()
	if state.GameOver || state.Score != 0 || state.Best != 42 {
		t.Errorf("state after restart = %+v, expected fresh run with best 42", state)
	}
}

func TestGameRenderSmoke(t *testing.T) {
	g := newTestGame(t, config.VariantSprite)
	screen := core.NewScreen(80, 24)

	for i := 0; i < 120; i++ {
		g.Step(frameWith())
		g.Render(screen)
	}

	g.Step(frameWith(core.ActionPause))
	g.Render(screen)
	if !containsRow(screen, "PAUSED") {
		t.Error("paused game should show PAUSED")
	}
}

func TestGameFallsBackWhenVariantBreaksConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("polish:\n  animated: false\n  frame_every: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })

	g := newTestGame(t, config.VariantSprite)
	if err := g.ConfigError(); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("ConfigError() = %v, expected ErrInvalidConfig", err)
	}
	if every := g.Simulation().Config().Polish.FrameEvery; every <= 0 {
		t.Fatalf("frame_every = %d, expected the default", every)
	}

	for i := 0; i < 7; i++ {
		g.Step(frameWith())
	}
	if frame := g.Snapshot().Frame; frame != 1 {
		t.Errorf("frame after 7 ticks = %d, expected the animation to advance to 1", frame)
	}
}
