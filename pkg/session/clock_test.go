package session

import (
	"sync"
	"time"
)

// fakeClock fires timers when the test advances it
type fakeClock struct {
	lock   sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{}
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.lock.Lock()
	defer c.lock.Unlock()

	t := &fakeTimer{clock: c, at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.lock.Lock()
	defer t.clock.lock.Unlock()

	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// Advance moves the clock forward and fires every timer that became due
func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	c.now += d

	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && t.at <= c.now {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.lock.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped
func (c *fakeClock) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}

	return n
}

func runNow(fn func()) {
	fn()
}
