package frame

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietOptions() Options {
	return Options{Logger: log.New(io.Discard)}
}

func TestDriverRunsOneFramePerRequest(t *testing.T) {
	sched := &StepScheduler{}
	calls := 0
	d := NewDriver(sched, func() error {
		calls++
		return nil
	}, quietOptions())

	d.Start()
	d.Start()
	if sched.Pending() != 1 {
		t.Fatalf("expected one pending request after Start, got %d", sched.Pending())
	}

	for i := 1; i <= 5; i++ {
		if ran := sched.RunPending(); ran != 1 {
			t.Fatalf("round %d ran %d requests, expected 1", i, ran)
		}
		if calls != i {
			t.Fatalf("calls = %d, expected %d", calls, i)
		}
		if sched.Pending() != 1 {
			t.Fatalf("round %d left %d pending requests, expected 1", i, sched.Pending())
		}
	}
	if d.Frames() != 5 || d.Failures() != 0 {
		t.Errorf("frames/failures = %d/%d, expected 5/0", d.Frames(), d.Failures())
	}
}

func TestDriverSwallowsErrorsAndPanics(t *testing.T) {
	sched := &StepScheduler{}
	boom := errors.New("boom")

	var reported []error
	opts := quietOptions()
	opts.OnError = func(err error) { reported = append(reported, err) }

	frame := 0
	d := NewDriver(sched, func() error {
		frame++
		switch frame {
		case 2:
			return boom
		case 3:
			panic("bad frame")
		}
		return nil
	}, opts)

	d.Start()
	for i := 0; i < 5; i++ {
		sched.RunPending()
	}

	if d.Frames() != 5 {
		t.Errorf("Frames() = %d, expected 5", d.Frames())
	}
	if d.Failures() != 2 {
		t.Errorf("Failures() = %d, expected 2", d.Failures())
	}
	if d.Stopped() {
		t.Error("failures must not stop the loop")
	}

	if len(reported) != 2 {
		t.Fatalf("expected 2 reported errors, got %d", len(reported))
	}
	if !errors.Is(reported[0], boom) {
		t.Errorf("first report = %v, expected boom", reported[0])
	}
	var pe *PanicError
	if !errors.As(reported[1], &pe) || pe.Value != "bad frame" {
		t.Errorf("second report = %v, expected recovered panic", reported[1])
	}
	if len(pe.Stack) == 0 {
		t.Error("panic error should carry a stack")
	}
}

func TestDriverStopCancelsPending(t *testing.T) {
	sched := &StepScheduler{}
	calls := 0
	d := NewDriver(sched, func() error {
		calls++
		return nil
	}, quietOptions())

	d.Start()
	sched.RunPending()
	d.Stop()

	if sched.Pending() != 0 {
		t.Errorf("Stop() left %d pending requests", sched.Pending())
	}
	if ran := sched.RunPending(); ran != 0 {
		t.Errorf("%d requests ran after Stop()", ran)
	}
	if d.Tick() {
		t.Error("Tick() after Stop() should report the loop as dead")
	}
	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}

	d.Start()
	if sched.Pending() != 0 {
		t.Error("Start() after Stop() must not schedule")
	}
}

// stubbornScheduler ignores Cancel, like a host that already queued the frame.
type stubbornScheduler struct {
	fns []func()
}

func (s *stubbornScheduler) Request(fn func()) Handle {
	s.fns = append(s.fns, fn)
	return Handle(len(s.fns))
}

func (s *stubbornScheduler) Cancel(Handle) {}

func TestDriverIgnoresFrameQueuedBeforeStop(t *testing.T) {
	sched := &stubbornScheduler{}
	calls := 0
	d := NewDriver(sched, func() error {
		calls++
		return nil
	}, quietOptions())

	d.Start()
	d.Stop()
	sched.fns[0]()

	if calls != 0 {
		t.Errorf("frame ran after Stop(): calls = %d", calls)
	}
	if len(sched.fns) != 1 {
		t.Errorf("stopped driver requested %d more frames", len(sched.fns)-1)
	}
}

func TestDriverStopFromFrame(t *testing.T) {
	sched := &StepScheduler{}
	var d *Driver
	d = NewDriver(sched, func() error {
		if d.Frames() == 2 {
			d.Stop()
		}
		return nil
	}, quietOptions())

	d.Start()
	for i := 0; i < 10; i++ {
		sched.RunPending()
	}

	if d.Frames() != 3 {
		t.Errorf("Frames() = %d, expected 3", d.Frames())
	}
	if sched.Pending() != 0 {
		t.Error("driver kept scheduling after stopping itself")
	}
}

func TestDriverTickWithoutScheduler(t *testing.T) {
	calls := 0
	d := NewDriver(nil, func() error {
		calls++
		return nil
	}, quietOptions())

	for i := 0; i < 3; i++ {
		if !d.Tick() {
			t.Fatal("Tick() reported a dead loop")
		}
	}
	d.Stop()
	if calls != 3 || d.Frames() != 3 {
		t.Errorf("calls/frames = %d/%d, expected 3/3", calls, d.Frames())
	}
}

func TestDriverGuard(t *testing.T) {
	var reported []error
	opts := quietOptions()
	opts.OnError = func(err error) { reported = append(reported, err) }
	d := NewDriver(nil, func() error { return nil }, opts)
	d.Tick()

	tests := []struct {
		name string
		fn   Func
		ok   bool
	}{
		{"ok", func() error { return nil }, true},
		{"error", func() error { return errors.New("draw failed") }, false},
		{"panic", func() error { panic("draw blew up") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Guard(tt.fn); got != tt.ok {
				t.Errorf("Guard() = %v, expected %v", got, tt.ok)
			}
		})
	}

	if d.Frames() != 1 {
		t.Errorf("frames = %d, guarded calls must not count as frames", d.Frames())
	}
	if d.Failures() != 2 || len(reported) != 2 {
		t.Fatalf("failures/reported = %d/%d, expected 2/2", d.Failures(), len(reported))
	}
	var pe *PanicError
	if !errors.As(reported[1], &pe) || pe.Value != "draw blew up" {
		t.Errorf("expected a PanicError, got %v", reported[1])
	}

	d.Stop()
	if !d.Guard(func() error { return nil }) {
		t.Error("Guard() should still run after Stop")
	}
}

func TestDriverWithTimerScheduler(t *testing.T) {
	sched := NewTimerScheduler(500)
	done := make(chan struct{})

	var mu sync.Mutex
	inFrame := false
	overlapped := false

	var d *Driver
	d = NewDriver(sched, func() error {
		mu.Lock()
		if inFrame {
			overlapped = true
		}
		inFrame = true
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inFrame = false
		mu.Unlock()

		if d.Frames() == 4 {
			d.Stop()
			close(done)
		}
		return nil
	}, quietOptions())

	d.Start()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer driven frames did not run")
	}

	time.Sleep(20 * time.Millisecond)
	if d.Frames() != 5 {
		t.Errorf("Frames() = %d, expected 5", d.Frames())
	}

	mu.Lock()
	defer mu.Unlock()
	if overlapped {
		t.Error("frames overlapped")
	}
}

func TestTimerSchedulerCancel(t *testing.T) {
	sched := NewTimerScheduler(100)
	if sched.Interval() != 10*time.Millisecond {
		t.Errorf("Interval() = %v, expected 10ms", sched.Interval())
	}

	fired := make(chan struct{}, 1)
	h := sched.Request(func() { fired <- struct{}{} })
	sched.Cancel(h)
	sched.Cancel(h)

	select {
	case <-fired:
		t.Error("cancelled request fired")
	case <-time.After(50 * time.Millisecond):
	}
}
