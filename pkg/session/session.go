package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"pokertable-client/internal/transport"
	"pokertable-client/pkg/action"
	"pokertable-client/pkg/game"
	"pokertable-client/pkg/render"
)

// ErrClosed is returned after the session was closed
var ErrClosed = errors.New("session is closed")

// ErrActionUnavailable is returned when the player has no action to take
var ErrActionUnavailable = errors.New("there is no action to take right now")

// Options configures a session
type Options struct {
	PollInterval      time.Duration
	ContinuePolicy    Policy
	AutoContinueDelay time.Duration

	// Clock defaults to the wall clock
	Clock Clock
}

// Session keeps the local view of one game in sync with the table service
// All state is owned by the run loop. Network calls run on their own goroutines and post
// their completion back to the loop.
type Session struct {
	sender    transport.Sender
	presenter render.Presenter
	start     game.StartRequest
	localName string

	reconciler   *game.Reconciler
	scheduler    *Scheduler
	dispatcher   *Dispatcher
	continuation *Continuation

	logMessages  []*LogMessage
	announcement *render.Announcement
	notice       string

	// round counts the successful continuations
	round int

	ctx           context.Context
	cancel        context.CancelFunc
	execInRunLoop chan func()
	close         chan bool
	done          chan struct{}
	closeOnce     sync.Once
}

// New creates a session and starts its run loop
// presenter may be nil if the view is only read with View
func New(sender transport.Sender, presenter render.Presenter, start game.StartRequest, opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		sender:        sender,
		presenter:     presenter,
		start:         start,
		localName:     start.Human(),
		reconciler:    game.NewReconciler(&game.Cell{}),
		ctx:           ctx,
		cancel:        cancel,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
		done:          make(chan struct{}),
	}

	post := func(fn func()) { s.exec(fn) }
	s.scheduler = NewScheduler(opts.PollInterval, clock, post, s.poll)
	s.dispatcher = NewDispatcher(s.reconciler.Cell())
	s.continuation = NewContinuation(opts.ContinuePolicy, opts.AutoContinueDelay, clock, post, s.sendContinue)

	go s.runLoop()
	return s
}

func (s *Session) runLoop() {
	log := logrus.WithField("localName", s.localName)

	log.Debug("creating session run loop")
	for {
		select {
		case fn := <-s.execInRunLoop:
			fn()
		case <-s.close:
			log.Debug("terminating session run loop")
			s.teardown()
			close(s.done)
			return
		}
	}
}

// exec queues fn on the run loop
// Returns false if the session is closed
func (s *Session) exec(fn func()) bool {
	select {
	case <-s.close:
		return false
	default:
	}

	select {
	case s.execInRunLoop <- fn:
		return true
	case <-s.close:
		return false
	}
}

// call runs fn on the run loop and waits for its result
func (s *Session) call(fn func() error) error {
	result := make(chan error, 1)
	if !s.exec(func() { result <- fn() }) {
		return ErrClosed
	}

	select {
	case err := <-result:
		return err
	case <-s.close:
		return ErrClosed
	}
}

// LocalName returns the name of the local player
func (s *Session) LocalName() string {
	return s.localName
}

// Start sends the start request and begins polling
// This blocks until the table service answered
func (s *Session) Start(ctx context.Context) error {
	if err := s.start.Validate(); err != nil {
		return err
	}

	raw, err := s.sender.Send(ctx, transport.Start, s.start)
	if err != nil {
		return err
	}

	if _, err := game.DecodeEnvelope(raw); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"localName": s.localName,
		"gameType":  s.start.GameType,
		"players":   len(s.start.Players),
	}).Info("game started")

	if !s.exec(func() {
		s.addLogMessages(newLogMessage("game started"))
		s.scheduler.Trigger()
		s.present()
	}) {
		return ErrClosed
	}

	return nil
}

// Perform submits an action for the local player
// An empty amount for a Bet uses the amount set with SetAmount
func (s *Session) Perform(kind action.Kind, rawAmount string) error {
	return s.call(func() error {
		return s.perform(kind, rawAmount)
	})
}

// SetAmount sets the raise amount the next Bet uses
func (s *Session) SetAmount(rawAmount string) error {
	return s.call(func() error {
		s.notice = ""
		s.dispatcher.SetDraft(rawAmount)
		s.present()
		return nil
	})
}

// Continue asks for the next round
func (s *Session) Continue() error {
	return s.call(func() error {
		s.notice = ""
		if err := s.continuation.Request(); err != nil {
			s.surface(err.Error())
			s.present()
			return err
		}

		s.present()
		return nil
	})
}

// View returns the current projection of the table
func (s *Session) View(ctx context.Context) (*render.View, error) {
	result := make(chan *render.View, 1)
	if !s.exec(func() { result <- s.project() }) {
		return nil, ErrClosed
	}

	select {
	case v := <-result:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.close:
		return nil, ErrClosed
	}
}

// Close stops the run loop and waits for it to exit. Outstanding requests are canceled.
// It must not be called from the run loop.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.close)
	})

	<-s.done
}

// teardown stops the timers and drops the table state
// NOTE: must only be called from the run loop
func (s *Session) teardown() {
	s.scheduler.Stop()
	s.continuation.Stop()
	s.reconciler.Cell().Reset()
	s.announcement = nil
}

// do performs the request on its own goroutine and runs done on the run loop
func (s *Session) do(endpoint transport.Endpoint, payload interface{}, done func(raw json.RawMessage, err error)) {
	go func() {
		raw, err := s.sender.Send(s.ctx, endpoint, payload)
		s.exec(func() {
			done(raw, err)
		})
	}()
}

// NOTE: must only be called from the run loop
func (s *Session) poll() {
	round := s.round
	s.do(transport.State, nil, func(raw json.RawMessage, err error) {
		if err != nil {
			s.failure("could not fetch the table state", err)
		} else if err := s.applySnapshot(round, raw); err != nil {
			s.failure("could not apply the table state", err)
		}

		s.scheduler.Complete(s.continuation.Phase() == RoundEnded)
		s.present()
	})
}

// NOTE: must only be called from the run loop
func (s *Session) perform(kind action.Kind, rawAmount string) error {
	s.notice = ""

	snap := s.reconciler.Cell().Current()
	if snap == nil || !render.ActionPanelVisible(snap, s.continuation.Phase() == RoundEnded) {
		s.surface(ErrActionUnavailable.Error())
		s.present()
		return ErrActionUnavailable
	}

	a, payload, err := s.dispatcher.Submit(kind, rawAmount)
	if err != nil {
		s.surface(err.Error())
		s.present()
		return err
	}

	currentBet := snap.CurrentBet
	round := s.round
	logrus.WithFields(logrus.Fields{
		"action":     kind.Wire(),
		"raise":      a.Raise(),
		"currentBet": currentBet,
	}).Debug("sending action")

	s.do(transport.Action, payload, func(raw json.RawMessage, err error) {
		s.actionCompleted(a, currentBet, round, raw, err)
	})

	s.present()
	return nil
}

// NOTE: must only be called from the run loop
func (s *Session) actionCompleted(a action.Action, currentBet, round int, raw json.RawMessage, err error) {
	s.dispatcher.Complete()

	if err != nil {
		s.failure("could not send the action", err)
	} else if _, err := game.DecodeEnvelope(raw); err != nil {
		s.failure("the action was rejected", err)
	} else {
		s.addLogMessages(newLogMessage("%s", a.LogMessage(currentBet)))
		if game.HasSnapshot(raw) {
			if err := s.applySnapshot(round, raw); err != nil {
				s.failure("could not apply the action result", err)
			}
		}
	}

	s.scheduler.Trigger()
	s.present()
}

// NOTE: must only be called from the run loop
func (s *Session) sendContinue() {
	s.do(transport.Continue, nil, s.continueCompleted)
}

// NOTE: must only be called from the run loop
func (s *Session) continueCompleted(raw json.RawMessage, err error) {
	if err == nil {
		_, err = game.DecodeEnvelope(raw)
	}

	if !s.continuation.Complete(err) {
		s.failure("could not start the next round", err)
		s.present()
		return
	}

	s.round++
	s.announcement = nil
	s.addLogMessages(newLogMessage("next round"))
	logrus.WithField("round", s.round).Info("next round")

	s.scheduler.Resume()
	s.present()
}

// applySnapshot reconciles raw with the current snapshot
// A response to a request issued before the last continuation can replace the snapshot,
// but it cannot end the new round.
// NOTE: must only be called from the run loop
func (s *Session) applySnapshot(round int, raw json.RawMessage) error {
	prev := s.reconciler.Cell().Current()
	snap, tr, err := s.reconciler.Apply(raw)
	if err != nil {
		return err
	}

	if snap.Message != "" && (prev == nil || prev.Message != snap.Message) {
		s.addLogMessages(newLogMessage("%s", snap.Message))
	}

	if tr.TurnJustStarted {
		s.dispatcher.ResetDraft()
	}

	if snap.RoundEnded && round == s.round && s.continuation.EndRound() {
		s.scheduler.Suspend()

		ann := render.Announce(snap)
		if s.continuation.Policy() == PolicyAuto {
			ann.Hint = "The next round starts shortly"
		} else {
			ann.Hint = "Type continue to deal the next round"
		}
		s.announcement = ann

		s.addLogMessages(newLogMessage("%s", ann.Text))
		logrus.WithField("winners", strings.Join(snap.Winners, ",")).Info("round ended")
	}

	return nil
}

// failure records a failed exchange
// Server errors are shown verbatim. Transport and validation failures are logged and the
// previous snapshot stays current.
// NOTE: must only be called from the run loop
func (s *Session) failure(what string, err error) {
	var appErr *game.ApplicationError
	var validationErr *game.ValidationError

	switch {
	case errors.As(err, &appErr):
		logrus.WithError(err).Warn(what)
		s.surface(appErr.Error())
	case errors.As(err, &validationErr):
		logrus.WithError(err).Error(what)
		s.addLogMessages(newLogMessage("%s: %v", what, err))
	default:
		logrus.WithError(err).Warn(what)
		s.addLogMessages(newLogMessage("%s: %v", what, err))
	}
}

// surface shows msg to the player as a log line and a notice
// A notice that is already shown is not repeated
// NOTE: must only be called from the run loop
func (s *Session) surface(msg string) {
	if msg == s.notice {
		return
	}

	s.notice = msg
	s.addLogMessages(newLogMessage("%s", msg))
	if s.presenter != nil {
		s.presenter.Notify(msg)
	}
}

// NOTE: must only be called from the run loop
func (s *Session) project() *render.View {
	return render.Project(render.Frame{
		Snapshot:      s.reconciler.Cell().Current(),
		LocalName:     s.localName,
		RoundEnded:    s.continuation.Phase() == RoundEnded,
		ActionPending: s.dispatcher.InFlight(),
		AmountDraft:   s.dispatcher.Draft(),
		Announcement:  s.announcement,
		Log:           s.logLines(),
		Notice:        s.notice,
	})
}

// NOTE: must only be called from the run loop
func (s *Session) present() {
	if s.presenter == nil {
		return
	}

	if err := s.presenter.Present(s.project()); err != nil {
		logrus.WithError(err).Error("could not present the table")
	}
}
