package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
)

// Simulation owns all state of one runner and advances it one tick at a time.
// It is not safe for concurrent use; the frame driver is its only caller.
type Simulation struct {
	cfg config.RunnerConfig
	rng *rand.Rand

	tick         int
	player       Player
	obstacles    []Obstacle
	difficulty   Difficulty
	score        Score
	status       Status
	scrollX      float64
	framePos     float64 // Fractional animation position in [0, FrameCount)
	recordBeaten bool
}

// NewSimulation creates a running simulation. The rng drives obstacle gaps.
func NewSimulation(cfg config.RunnerConfig, rng *rand.Rand) *Simulation {
	s := &Simulation{
		cfg:       cfg,
		rng:       rng,
		obstacles: make([]Obstacle, 0, 8),
	}
	s.Reset()
	return s
}

// Reconfigure swaps config and randomness, then resets. The best score survives.
func (s *Simulation) Reconfigure(cfg config.RunnerConfig, rng *rand.Rand) {
	s.cfg = cfg
	s.rng = rng
	s.Reset()
}

// Reset starts a new run. The best score is left untouched.
func (s *Simulation) Reset() {
	s.tick = 0
	s.obstacles = s.obstacles[:0]
	s.player = Player{Y: s.cfg.GroundY(), Phase: PhaseGrounded}
	s.setLevel(s.cfg.ClampLevel(s.cfg.Difficulty.InitialLevel))
	s.score.Current = 0
	s.status = StatusRunning
	s.scrollX = 0
	s.framePos = 0
	s.recordBeaten = false
}

// setLevel sets the level and derives both speeds from it.
func (s *Simulation) setLevel(level int) {
	jump, walk := s.cfg.Speeds(level)
	s.difficulty = Difficulty{Level: level, JumpSpeed: jump, WalkSpeed: walk}
}

// Advance applies the input edges and runs one tick.
// While failed it changes nothing and returns the current snapshot.
func (s *Simulation) Advance(in Input) (Status, Snapshot) {
	if s.status == StatusFailed {
		return s.status, s.Snapshot()
	}

	s.applyInput(in)
	s.step()
	return s.status, s.Snapshot()
}

// applyInput handles the jump edges.
func (s *Simulation) applyInput(in Input) {
	if in.JumpBegin && s.player.Phase == PhaseGrounded {
		s.player.Phase = PhaseAscending
	}
	if in.JumpRelease && s.player.Phase == PhaseAscending {
		s.player.Phase = PhaseDescending
	}
}

// step runs the per-tick update in its fixed order.
func (s *Simulation) step() {
	s.tick++

	if s.collides() {
		s.fail()
		return
	}

	s.rampDifficulty()

	if s.tick%s.cfg.SpawnInterval(s.difficulty.Level) == 0 {
		s.spawn()
	}

	s.updateJump()

	if s.tick%s.cfg.Scoring.Every == 0 {
		s.score.Current++
	}

	s.advanceObstacles()
	s.updatePolish()
}

// fail ends the run and records a new best score if one was reached.
func (s *Simulation) fail() {
	if s.score.Current > s.score.Best {
		s.score.Best = s.score.Current
		s.score.HasBest = true
		s.recordBeaten = true
	}
	s.status = StatusFailed
}

// rampDifficulty raises the level every RampEvery ticks once scoring has begun.
func (s *Simulation) rampDifficulty() {
	if s.tick%s.cfg.Difficulty.RampEvery != 0 {
		return
	}
	if s.score.Current <= 0 || s.difficulty.Level >= s.cfg.Difficulty.MaxLevel {
		return
	}
	s.difficulty.Level++
	s.difficulty.JumpSpeed += s.cfg.Difficulty.JumpSpeedCoef
	s.difficulty.WalkSpeed += s.cfg.Difficulty.WalkSpeedCoef
}

// updateJump moves the giraffe along its jump arc, clamping at both ends.
func (s *Simulation) updateJump() {
	switch s.player.Phase {
	case PhaseAscending:
		s.player.Y -= s.difficulty.JumpSpeed
		if apex := s.cfg.Apex(); s.player.Y <= apex {
			s.player.Y = apex
			s.player.Phase = PhaseDescending
		}
	case PhaseDescending:
		s.player.Y += s.difficulty.JumpSpeed
		if ground := s.cfg.GroundY(); s.player.Y >= ground {
			s.player.Y = ground
			s.player.Phase = PhaseGrounded
		}
	}
}

// updatePolish advances the parallax offset and the run animation.
func (s *Simulation) updatePolish() {
	polish := s.cfg.Polish
	if polish.Parallax {
		s.scrollX = math.Mod(s.scrollX+s.difficulty.WalkSpeed*polish.ParallaxFactor, s.cfg.Field.Width)
	}
	if polish.Animated {
		s.framePos = math.Mod(s.framePos+s.frameStep(), float64(polish.FrameCount))
	}
}

// frameStep is how far the animation moves per tick. The legs cycle faster
// as the walk speed grows past its level-zero value.
func (s *Simulation) frameStep() float64 {
	return s.difficulty.WalkSpeed / (s.cfg.Physics.WalkSpeed * float64(s.cfg.Polish.FrameEvery))
}

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(s.obstacles))
	copy(obstacles, s.obstacles)

	return Snapshot{
		Status:       s.status,
		Tick:         s.tick,
		Player:       s.player,
		Obstacles:    obstacles,
		Difficulty:   s.difficulty,
		Score:        s.score,
		ScrollX:      s.scrollX,
		Frame:        s.frame(),
		RecordBeaten: s.recordBeaten,
	}
}

// frame returns the integer animation frame.
func (s *Simulation) frame() int {
	if !s.cfg.Polish.Animated || s.cfg.Polish.FrameCount <= 0 {
		return 0
	}
	return int(s.framePos) % s.cfg.Polish.FrameCount
}

// FrameCrop returns the sprite-sheet region of the current run frame,
// assuming frames are laid out left to right.
func (s *Simulation) FrameCrop() core.Rect {
	p := s.cfg.Polish
	return core.NewRect(s.frame()*p.FrameWidth, 0, p.FrameWidth, p.FrameHeight)
}

// Status returns the run status.
func (s *Simulation) Status() Status {
	return s.status
}

// Config returns the configuration driving the simulation.
func (s *Simulation) Config() config.RunnerConfig {
	return s.cfg
}
