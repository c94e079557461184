package headless

import (
	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/games/runner"
)

// Bot decides the input for the next tick from the current snapshot.
type Bot interface {
	BotID() string
	Decide(snap runner.Snapshot, cfg config.RunnerConfig) core.InputFrame
}

// Idle never presses anything. Runs end at the first bush.
type Idle struct{}

// BotID implements Bot.
func (Idle) BotID() string { return "idle" }

// Decide implements Bot.
func (Idle) Decide(runner.Snapshot, config.RunnerConfig) core.InputFrame {
	return core.NewInputFrame()
}

// AutoJumper jumps when the nearest bush ahead is within reach. The reach
// grows with walk speed so the jump takes off early enough at high levels.
type AutoJumper struct {
	// LeadTicks is how many ticks before contact the bot jumps.
	LeadTicks float64
}

// NewAutoJumper returns a jumper tuned for the default physics.
func NewAutoJumper() *AutoJumper {
	return &AutoJumper{LeadTicks: 6}
}

// BotID implements Bot.
func (b *AutoJumper) BotID() string { return "autojump" }

// Decide implements Bot.
func (b *AutoJumper) Decide(snap runner.Snapshot, cfg config.RunnerConfig) core.InputFrame {
	in := core.NewInputFrame()
	if snap.Status != runner.StatusRunning || snap.Player.Phase != runner.PhaseGrounded {
		return in
	}

	window := cfg.Obstacles.CollisionFraction * cfg.Player.Size
	reach := window + b.LeadTicks*snap.Difficulty.WalkSpeed
	for _, ob := range snap.Obstacles {
		if ob.X > 0 && ob.X <= reach {
			in.Set(core.ActionJump)
			break
		}
	}
	return in
}
