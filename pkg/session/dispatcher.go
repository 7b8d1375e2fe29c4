package session

import (
	"errors"
	"strings"

	"pokertable-client/pkg/action"
	"pokertable-client/pkg/game"
)

// ErrActionInFlight is returned when an action is submitted before the previous one completed
var ErrActionInFlight = errors.New("an action is already being sent")

// Dispatcher guards the single in-flight action and owns the raise amount the player is typing
// NOTE: all methods must be called from the run loop
type Dispatcher struct {
	cell     *game.Cell
	inFlight bool
	draft    string
}

// NewDispatcher returns a dispatcher that reads the current bet from cell
func NewDispatcher(cell *game.Cell) *Dispatcher {
	return &Dispatcher{cell: cell}
}

// Submit validates user input and reserves the in-flight slot
// A Bet without an amount uses the draft. On error nothing is reserved and no request may be sent.
func (d *Dispatcher) Submit(kind action.Kind, rawAmount string) (action.Action, action.Payload, error) {
	if d.inFlight {
		return action.Action{}, action.Payload{}, ErrActionInFlight
	}

	if kind == action.Bet && strings.TrimSpace(rawAmount) == "" {
		rawAmount = d.draft
	}

	a, err := action.Parse(kind, rawAmount)
	if err != nil {
		return action.Action{}, action.Payload{}, err
	}

	currentBet := d.cell.CurrentBet()
	if err := a.Validate(currentBet); err != nil {
		return action.Action{}, action.Payload{}, err
	}

	d.inFlight = true
	return a, a.Payload(currentBet), nil
}

// Complete releases the in-flight slot and clears the draft
// It is called for every response, successful or not
func (d *Dispatcher) Complete() {
	d.inFlight = false
	d.draft = ""
}

// InFlight returns true while an action request is outstanding
func (d *Dispatcher) InFlight() bool {
	return d.inFlight
}

// Draft returns the raise amount as typed
func (d *Dispatcher) Draft() string {
	return d.draft
}

// SetDraft replaces the raise amount
func (d *Dispatcher) SetDraft(s string) {
	d.draft = strings.TrimSpace(s)
}

// ResetDraft clears the raise amount
func (d *Dispatcher) ResetDraft() {
	d.draft = ""
}
