// Package frame drives a per-frame callback the way a display refresh would:
// one guarded frame at a time, each requesting the next when it returns.
package frame

import (
	"sync"
	"time"
)

// Handle identifies a pending frame request.
type Handle uint64

// Scheduler runs a callback once on some later frame.
// Request must not invoke fn before it returns.
type Scheduler interface {
	Request(fn func()) Handle
	Cancel(h Handle)
}

// TimerScheduler fires each request after a fixed interval.
// Callbacks run on timer goroutines.
type TimerScheduler struct {
	interval time.Duration

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewTimerScheduler creates a scheduler firing tickRate times per second.
func NewTimerScheduler(tickRate int) *TimerScheduler {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &TimerScheduler{
		interval: time.Second / time.Duration(tickRate),
		timers:   make(map[Handle]*time.Timer),
	}
}

// Interval returns the delay between a request and its callback.
func (s *TimerScheduler) Interval() time.Duration {
	return s.interval
}

// Request schedules fn after one interval.
func (s *TimerScheduler) Request(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.timers[h] = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		delete(s.timers, h)
		s.mu.Unlock()
		fn()
	})
	return h
}

// Cancel stops a pending request. Unknown or fired handles are ignored.
func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[h]; ok {
		t.Stop()
		delete(s.timers, h)
	}
}

// StepScheduler queues requests until the caller runs them with RunPending.
// It drives unthrottled headless runs.
type StepScheduler struct {
	mu    sync.Mutex
	next  Handle
	queue []request
}

type request struct {
	handle Handle
	fn     func()
}

// Request queues fn for the next RunPending call.
func (s *StepScheduler) Request(fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.queue = append(s.queue, request{handle: s.next, fn: fn})
	return s.next
}

// Cancel removes a queued request.
func (s *StepScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.queue {
		if r.handle == h {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued requests.
func (s *StepScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// RunPending runs the requests queued so far and returns how many ran.
// Requests made by those callbacks wait for the next call.
func (s *StepScheduler) RunPending() int {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, r := range queue {
		r.fn()
	}
	return len(queue)
}
