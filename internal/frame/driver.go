package frame

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"
)

// Func is the work done on every frame.
type Func func() error

// PanicError wraps a panic recovered from a frame.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("frame panicked: %v", e.Value)
}

// Options configures a Driver.
type Options struct {
	// Logger receives frame failures. Defaults to the package logger.
	Logger *log.Logger
	// OnError is called after a failed frame has been logged.
	OnError func(error)
}

// Driver runs a frame callback once per scheduled frame. A failing frame is
// logged and swallowed, so one bad frame never ends the loop.
type Driver struct {
	sched   Scheduler
	fn      Func
	logger  *log.Logger
	onError func(error)

	mu         sync.Mutex
	pending    Handle
	hasPending bool
	started    bool
	stopped    bool
	frames     uint64
	failures   uint64
}

// NewDriver creates a driver. Nothing runs until Start or Tick is called.
func NewDriver(sched Scheduler, fn Func, opts Options) *Driver {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default().WithPrefix("frame")
	}
	return &Driver{
		sched:   sched,
		fn:      fn,
		logger:  logger,
		onError: opts.OnError,
	}
}

// Start schedules the first frame. Calling it again, or after Stop, does nothing.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true
	d.requestLocked()
}

// Stop cancels the loop. No frame runs after Stop returns, except one that
// was already executing.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.hasPending {
		d.sched.Cancel(d.pending)
		d.hasPending = false
	}
}

// Stopped reports whether Stop has been called.
func (d *Driver) Stopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// Frames returns the number of frames run, failed ones included.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Failures returns the number of frames, and guarded calls, that returned an
// error or panicked.
func (d *Driver) Failures() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failures
}

// Tick runs exactly one frame and reports whether the loop is still live.
// Hosts with their own frame loop call it directly instead of Start.
func (d *Driver) Tick() bool {
	if d.Stopped() {
		return false
	}

	err := d.run(d.fn)

	d.mu.Lock()
	d.frames++
	frame := d.frames
	if err != nil {
		d.failures++
	}
	live := !d.stopped
	d.mu.Unlock()

	if err != nil {
		d.report(frame, err)
	}
	return live
}

// Guard runs fn with the same panic capture and reporting as a frame. Hosts
// use it for work done outside Tick, such as drawing. It is not counted as a
// frame and runs even after Stop. Reports whether fn succeeded.
func (d *Driver) Guard(fn Func) bool {
	err := d.run(fn)
	if err == nil {
		return true
	}

	d.mu.Lock()
	d.failures++
	frame := d.frames
	d.mu.Unlock()

	d.report(frame, err)
	return false
}

// run calls fn, turning a panic into an error.
func (d *Driver) run(fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func (d *Driver) report(frame uint64, err error) {
	var pe *PanicError
	if errors.As(err, &pe) {
		d.logger.Error("Frame panicked", "frame", frame, "panic", pe.Value, "stack", string(pe.Stack))
	} else {
		d.logger.Error("Frame failed", "frame", frame, "err", err)
	}
	if d.onError != nil {
		d.onError(err)
	}
}

// scheduled is the callback handed to the scheduler. The next frame is
// requested only after this one returns, so frames never overlap.
func (d *Driver) scheduled() {
	d.mu.Lock()
	d.hasPending = false
	stopped := d.stopped
	d.mu.Unlock()

	// Queued before Stop but fired after it
	if stopped {
		return
	}

	if !d.Tick() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped {
		d.requestLocked()
	}
}

func (d *Driver) requestLocked() {
	d.pending = d.sched.Request(d.scheduled)
	d.hasPending = true
}
