package persist

import (
	"sync"
	"time"
)

// Scheduler coalesces rapid successive change notifications into one write:
// every Notify schedules the write at now+delay, superseding any
// not-yet-fired schedule. Exactly one write fires per quiet period.
type Scheduler struct {
	mu     sync.Mutex
	delay  time.Duration
	write  func()
	timer  *time.Timer
	closed bool
}

// NewScheduler creates a scheduler invoking write after each quiet period.
func NewScheduler(delay time.Duration, write func()) *Scheduler {
	return &Scheduler{
		delay: delay,
		write: write,
	}
}

// Notify (re)schedules the pending write at now+delay.
func (s *Scheduler) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.write()
}

// Flush runs any pending write immediately and synchronously.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	pending := s.timer != nil && s.timer.Stop()
	s.timer = nil
	closed := s.closed
	s.mu.Unlock()

	if pending && !closed {
		s.write()
	}
}

// Close cancels any pending write and rejects further notifications. It does
// not flush; callers that want the last state persisted call Flush first.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
