package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestScheduler() (*Scheduler, *fakeClock, *int) {
	polls := 0
	clock := newFakeClock()
	s := NewScheduler(DefaultPollInterval, clock, runNow, func() { polls++ })
	return s, clock, &polls
}

func TestScheduler_reschedulesAfterCompletion(t *testing.T) {
	a := assert.New(t)
	s, clock, polls := newTestScheduler()
	a.Equal(Idle, s.State())

	a.True(s.Trigger())
	a.Equal(Polling, s.State())
	a.True(s.InFlight())
	a.Equal(1, *polls)

	// dropped, not queued
	a.False(s.Trigger())
	a.Equal(1, *polls)
	a.Equal(0, clock.Pending())

	s.Complete(false)
	a.False(s.InFlight())
	a.Equal(1, clock.Pending())

	clock.Advance(DefaultPollInterval - time.Millisecond)
	a.Equal(1, *polls)

	clock.Advance(time.Millisecond)
	a.Equal(2, *polls)
	a.True(s.InFlight())
	a.Equal(0, clock.Pending())
}

func TestScheduler_suspendsAtRoundEnd(t *testing.T) {
	a := assert.New(t)
	s, clock, polls := newTestScheduler()

	s.Trigger()
	s.Complete(true)
	a.Equal(Suspended, s.State())
	a.Equal(0, clock.Pending())

	clock.Advance(time.Minute)
	a.Equal(1, *polls)

	a.False(s.Trigger())
	a.Equal(1, *polls)

	a.True(s.Resume())
	a.Equal(2, *polls)
	a.Equal(Polling, s.State())

	a.False(s.Resume())
}

func TestScheduler_suspendWhilePolling(t *testing.T) {
	a := assert.New(t)
	s, clock, polls := newTestScheduler()

	s.Trigger()
	s.Suspend()

	// a late completion cannot restart the cadence
	s.Complete(false)
	a.Equal(Suspended, s.State())
	a.Equal(0, clock.Pending())
	a.Equal(1, *polls)
}

func TestScheduler_staleTimerIsIgnored(t *testing.T) {
	a := assert.New(t)
	s, clock, polls := newTestScheduler()

	s.Trigger()
	s.Complete(false)
	stale := clock.timers[0]

	// an immediate poll, i.e., after an action, replaces the schedule
	a.True(s.Trigger())
	s.Complete(false)
	a.Equal(2, *polls)

	// the old timer fires anyway
	stale.fn()
	a.Equal(2, *polls)
	a.False(s.InFlight())

	clock.Advance(DefaultPollInterval)
	a.Equal(3, *polls)
}

func TestScheduler_Stop(t *testing.T) {
	s, clock, polls := newTestScheduler()

	s.Trigger()
	s.Complete(false)
	s.Stop()

	clock.Advance(time.Minute)
	assert.Equal(t, 1, *polls)
	assert.Equal(t, Idle, s.State())
}

func TestNewScheduler_defaultDelay(t *testing.T) {
	s := NewScheduler(0, newFakeClock(), runNow, func() {})
	assert.Equal(t, DefaultPollInterval, s.delay)
}

func TestSchedulerState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "polling", Polling.String())
	assert.Equal(t, "suspended", Suspended.String())
	assert.Equal(t, "unknown", SchedulerState(42).String())
}
