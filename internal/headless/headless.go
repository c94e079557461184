// Package headless runs Giraffe Run without a display, either paced by a
// wall-clock timer or as fast as the frame driver can go. A Bot supplies
// the input.
package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
	"github.com/vovakirdan/giraffe-run/internal/frame"
	"github.com/vovakirdan/giraffe-run/internal/games/runner"
	"github.com/vovakirdan/giraffe-run/internal/storage"
)

// ErrNoTicks is returned when a run is asked for zero ticks.
var ErrNoTicks = errors.New("headless: ticks must be positive")

// Options configures a headless run.
type Options struct {
	Variant config.Variant
	Runtime core.RuntimeConfig
	// Ticks is the number of frames to run.
	Ticks int
	// Realtime paces frames at Runtime.TickRate. Otherwise frames run
	// back to back.
	Realtime bool
	// Restart begins a new run after each failure instead of idling.
	Restart bool
	// Bot supplies input. Idle when nil.
	Bot Bot
	// Store receives finished runs when set.
	Store  *storage.Store
	Logger *log.Logger
	// OnFrameError is passed to the frame driver.
	OnFrameError func(error)
}

// Result summarizes a headless run.
type Result struct {
	Frames   uint64
	Failures uint64
	Runs     int // Finished runs
	Best     int
	Final    runner.Snapshot
}

// session is the frame state of one headless run. Timed frames fire on
// timer goroutines, so mu guards the game against the final read in Run.
type session struct {
	opts   Options
	logger *log.Logger
	driver *frame.Driver
	done   chan struct{}

	mu      sync.Mutex
	game    *runner.Game
	runtime core.RuntimeConfig
	ticks   int
	runs    int
}

// Run plays opts.Ticks frames and returns the summary. Cancelling ctx stops
// the run early; the partial result is returned with ctx's error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Ticks <= 0 {
		return Result{}, ErrNoTicks
	}
	if opts.Bot == nil {
		opts.Bot = Idle{}
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &session{
		opts:    opts,
		game:    runner.New(opts.Variant),
		logger:  logger,
		runtime: opts.Runtime,
		done:    make(chan struct{}),
	}
	s.game.Reset(s.runtime)
	if err := s.game.ConfigError(); err != nil {
		logger.Warn("Using default config", "err", err)
	}

	var err error
	if opts.Realtime {
		err = s.runTimed(ctx)
	} else {
		err = s.runStepped(ctx)
	}

	return s.result(), err
}

func (s *session) result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.Snapshot()
	return Result{
		Frames:   uint64(s.ticks),
		Failures: s.driver.Failures(),
		Runs:     s.runs,
		Best:     snap.Score.Best,
		Final:    snap,
	}
}

// runTimed lets a TimerScheduler pace the frames.
func (s *session) runTimed(ctx context.Context) error {
	sched := frame.NewTimerScheduler(s.runtime.TickRate)
	s.driver = frame.NewDriver(sched, s.frame, s.driverOptions())
	s.driver.Start()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.driver.Stop()
		return ctx.Err()
	}
}

// runStepped drains a StepScheduler until the driver stops.
func (s *session) runStepped(ctx context.Context) error {
	sched := &frame.StepScheduler{}
	s.driver = frame.NewDriver(sched, s.frame, s.driverOptions())
	s.driver.Start()

	for !s.driver.Stopped() {
		if err := ctx.Err(); err != nil {
			s.driver.Stop()
			return err
		}
		if sched.RunPending() == 0 {
			break
		}
	}
	return nil
}

func (s *session) driverOptions() frame.Options {
	return frame.Options{
		Logger:  s.logger,
		OnError: s.opts.OnFrameError,
	}
}

// frame advances the game once and stops the driver after the last tick.
func (s *session) frame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++
	if s.ticks >= s.opts.Ticks {
		defer s.finish()
	}

	snap := s.game.Snapshot()
	if snap.Status == runner.StatusFailed {
		if s.opts.Restart {
			s.runtime.Seed++
			s.game.Reset(s.runtime)
		}
		return nil
	}

	cfg := s.game.Simulation().Config()
	result := s.game.Step(s.opts.Bot.Decide(snap, cfg))
	if result.Ended {
		return s.recordRun(result.State)
	}
	return nil
}

func (s *session) finish() {
	s.driver.Stop()
	close(s.done)
}

func (s *session) recordRun(state core.GameState) error {
	s.runs++
	s.logger.Debug("Run ended",
		"bot", s.opts.Bot.BotID(),
		"run", s.runs,
		"score", state.Score,
		"level", state.Level,
		"ticks", state.Ticks,
	)

	if s.opts.Store == nil || state.Score <= 0 {
		return nil
	}
	_, err := s.opts.Store.RecordRun(storage.RunRecord{
		Variant:      s.game.ID(),
		Session:      "bot:" + s.opts.Bot.BotID(),
		Score:        state.Score,
		Level:        state.Level,
		Ticks:        state.Ticks,
		RecordBeaten: state.NewRecord,
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
