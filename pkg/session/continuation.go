package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"pokertable-client/internal/transport"
)

// ErrNotRoundEnded is returned when a continuation is requested during a round
var ErrNotRoundEnded = errors.New("the round has not ended")

// ErrContinueInFlight is returned when a continuation is requested while one is outstanding
var ErrContinueInFlight = errors.New("the next round is already being requested")

// Phase is the phase of the continuation flow
type Phase int

// phase constants
const (
	Active Phase = iota
	RoundEnded
)

func (p Phase) String() string {
	if p == RoundEnded {
		return "roundEnded"
	}

	return "active"
}

// Policy decides what starts the next round
type Policy string

// policy constants
const (
	PolicyManual Policy = "manual"
	PolicyAuto   Policy = "auto"
)

// DefaultAutoContinueDelay is how long the auto policy shows the winners
const DefaultAutoContinueDelay = time.Millisecond * 3000

// ParsePolicy parses a policy name, an empty name is manual
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyManual:
		return PolicyManual, nil
	case PolicyAuto:
		return PolicyAuto, nil
	}

	return "", fmt.Errorf("unknown continue policy: %s", s)
}

// Continuation moves the session from a finished round to the next one
// NOTE: all methods must be called from the run loop
type Continuation struct {
	policy Policy
	delay  time.Duration
	clock  Clock
	post   func(fn func())
	send   func()

	phase      Phase
	inFlight   bool
	generation int
	timer      Timer
}

// NewContinuation returns a continuation in the Active phase
// send issues the continue request, and its completion must be reported with Complete.
func NewContinuation(policy Policy, delay time.Duration, clock Clock, post func(fn func()), send func()) *Continuation {
	if delay <= 0 {
		delay = DefaultAutoContinueDelay
	}

	return &Continuation{
		policy: policy,
		delay:  delay,
		clock:  clock,
		post:   post,
		send:   send,
		phase:  Active,
	}
}

// Phase returns the current phase
func (c *Continuation) Phase() Phase {
	return c.phase
}

// Policy returns the policy
func (c *Continuation) Policy() Policy {
	return c.policy
}

// InFlight returns true while a continue request is outstanding
func (c *Continuation) InFlight() bool {
	return c.inFlight
}

// EndRound enters the RoundEnded phase
// Returns false if the phase was already RoundEnded
func (c *Continuation) EndRound() bool {
	if c.phase == RoundEnded {
		return false
	}

	c.phase = RoundEnded
	if c.policy == PolicyAuto {
		c.arm()
	}

	return true
}

// Request sends the continue request
func (c *Continuation) Request() error {
	if c.phase != RoundEnded {
		return ErrNotRoundEnded
	}

	if c.inFlight {
		return ErrContinueInFlight
	}

	c.stopTimer()
	c.inFlight = true
	c.send()
	return nil
}

// Complete reports the result of the continue request
// Returns true if the session went back to the Active phase.
// On failure the phase stays RoundEnded. Under the auto policy a transport failure re-arms the timer,
// a failure reported by the server waits for the player.
func (c *Continuation) Complete(err error) bool {
	c.inFlight = false

	if err != nil {
		var transportErr *transport.Error
		if c.policy == PolicyAuto && errors.As(err, &transportErr) {
			c.arm()
		}

		return false
	}

	c.phase = Active
	return true
}

// Stop cancels the pending timer
func (c *Continuation) Stop() {
	c.stopTimer()
}

func (c *Continuation) arm() {
	c.stopTimer()

	gen := c.generation
	c.timer = c.clock.AfterFunc(c.delay, func() {
		c.post(func() {
			if gen != c.generation {
				return
			}

			c.timer = nil
			if err := c.Request(); err != nil {
				logrus.WithError(err).Debug("skipping automatic continue")
			}
		})
	})
}

func (c *Continuation) stopTimer() {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
