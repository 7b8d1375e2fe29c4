package session

import (
	"time"
)

// SchedulerState is the state of the polling scheduler
type SchedulerState int

// scheduler state constants
const (
	Idle SchedulerState = iota
	Polling
	Suspended
)

func (s SchedulerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Suspended:
		return "suspended"
	}

	return "unknown"
}

// DefaultPollInterval is the delay between the end of a poll and the next one
const DefaultPollInterval = time.Millisecond * 1500

// Scheduler polls the table state on a self-rescheduling timer
// At most one poll is in flight. A poll requested while one is outstanding is dropped.
// NOTE: all methods must be called from the run loop
type Scheduler struct {
	delay time.Duration
	clock Clock
	post  func(fn func())
	poll  func()

	state      SchedulerState
	inFlight   bool
	generation int
	timer      Timer
}

// NewScheduler returns an idle scheduler
// poll issues the request, and its completion must be reported with Complete.
// post is how timer callbacks get back onto the run loop.
func NewScheduler(delay time.Duration, clock Clock, post func(fn func()), poll func()) *Scheduler {
	if delay <= 0 {
		delay = DefaultPollInterval
	}

	return &Scheduler{
		delay: delay,
		clock: clock,
		post:  post,
		poll:  poll,
		state: Idle,
	}
}

// State returns the current state
func (s *Scheduler) State() SchedulerState {
	return s.state
}

// InFlight returns true while a poll is outstanding
func (s *Scheduler) InFlight() bool {
	return s.inFlight
}

// Trigger issues a poll immediately
// Returns false if the poll was dropped because one is in flight or polling is suspended
func (s *Scheduler) Trigger() bool {
	if s.inFlight || s.state == Suspended {
		return false
	}

	s.stopTimer()
	s.state = Polling
	s.inFlight = true
	s.poll()
	return true
}

// Complete reports the end of the outstanding poll, successful or not
// If roundEnded is true polling is suspended, otherwise the next poll is scheduled
func (s *Scheduler) Complete(roundEnded bool) {
	s.inFlight = false

	if roundEnded {
		s.Suspend()
		return
	}

	if s.state == Suspended {
		return
	}

	s.state = Polling
	s.schedule()
}

// Suspend stops rescheduling until Resume is called
func (s *Scheduler) Suspend() {
	s.stopTimer()
	s.state = Suspended
}

// Resume polls immediately after a suspension
func (s *Scheduler) Resume() bool {
	if s.state != Suspended {
		return false
	}

	s.state = Idle
	return s.Trigger()
}

// Stop cancels the pending timer
func (s *Scheduler) Stop() {
	s.stopTimer()
	s.state = Idle
}

func (s *Scheduler) schedule() {
	s.stopTimer()

	gen := s.generation
	s.timer = s.clock.AfterFunc(s.delay, func() {
		s.post(func() {
			// a newer schedule replaced this timer
			if gen != s.generation {
				return
			}

			s.timer = nil
			s.Trigger()
		})
	})
}

func (s *Scheduler) stopTimer() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
