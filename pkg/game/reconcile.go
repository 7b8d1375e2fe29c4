package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"pokertable-client/pkg/deck"
)

// Envelope is the part every server response carries
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// wireSnapshot uses pointers for the fields that must be present
type wireSnapshot struct {
	Envelope
	Pot            *int          `json:"pot"`
	ToCall         int           `json:"toCall"`
	CurrentBet     int           `json:"currentBet"`
	CommunityCards []deck.Card   `json:"communityCards"`
	Players        *[]PlayerView `json:"players"`
	Hand           []deck.Card   `json:"hand"`
	YourTurn       *bool         `json:"yourTurn"`
	RoundEnded     *bool         `json:"roundEnded"`
	Winners        []string      `json:"winners"`
	Message        string        `json:"message"`
}

// DecodeEnvelope decodes the success flag of a response
// If the server reported a failure, an *ApplicationError is returned
func DecodeEnvelope(raw json.RawMessage) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ValidationError{Cause: err}
	}

	if !env.Success {
		return nil, &ApplicationError{Message: env.Error}
	}

	return &env, nil
}

// HasSnapshot returns true if the response carries the table state, i.e., an action response
// that includes the same shape as the state endpoint
func HasSnapshot(raw json.RawMessage) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}

	_, ok := fields["players"]
	return ok
}

// DecodeSnapshot decodes and validates a state response
func DecodeSnapshot(raw json.RawMessage) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &ValidationError{Cause: err}
	}

	if !w.Success {
		return nil, &ApplicationError{Message: w.Error}
	}

	switch {
	case w.Pot == nil:
		return nil, &ValidationError{Cause: errors.New("missing pot")}
	case w.Players == nil:
		return nil, &ValidationError{Cause: errors.New("missing players")}
	case w.YourTurn == nil:
		return nil, &ValidationError{Cause: errors.New("missing yourTurn")}
	case w.RoundEnded == nil:
		return nil, &ValidationError{Cause: errors.New("missing roundEnded")}
	}

	snap := &Snapshot{
		Pot:            *w.Pot,
		ToCall:         w.ToCall,
		CurrentBet:     w.CurrentBet,
		CommunityCards: w.CommunityCards,
		Players:        *w.Players,
		Hand:           w.Hand,
		YourTurn:       *w.YourTurn,
		RoundEnded:     *w.RoundEnded,
		Winners:        w.Winners,
		Message:        w.Message,
	}

	if err := validate(snap); err != nil {
		return nil, &ValidationError{Cause: err}
	}

	return snap, nil
}

func validate(s *Snapshot) error {
	// toCall is not checked, the service can report a negative amount for a short stacked blind
	if s.Pot < 0 || s.CurrentBet < 0 {
		return errors.New("amounts cannot be negative")
	}

	if len(s.CommunityCards) > MaxCommunityCards {
		return fmt.Errorf("expected at most %d community cards, got %d", MaxCommunityCards, len(s.CommunityCards))
	}

	if len(s.Winners) > 0 && !s.RoundEnded {
		return errors.New("winners reported before the round ended")
	}

	names := make(map[string]bool, len(s.Players))
	for _, p := range s.Players {
		if p.Name == "" {
			return errors.New("player without a name")
		}

		if names[p.Name] {
			return fmt.Errorf("duplicate player name: %s", p.Name)
		}
		names[p.Name] = true

		if p.Chips < 0 || p.Bet < 0 {
			return fmt.Errorf("player %s has a negative amount", p.Name)
		}
	}

	return nil
}

// Cell holds the single current snapshot
// It must only be accessed from the session run loop
type Cell struct {
	current *Snapshot
}

// Current returns the current snapshot, or nil if no snapshot has been applied yet
func (c *Cell) Current() *Snapshot {
	return c.current
}

// RoundEnded returns true if the current snapshot reports the end of a round
func (c *Cell) RoundEnded() bool {
	return c.current != nil && c.current.RoundEnded
}

// CurrentBet returns the table's current bet level, or zero without a snapshot
func (c *Cell) CurrentBet() int {
	if c.current == nil {
		return 0
	}

	return c.current.CurrentBet
}

// Reset drops the current snapshot at the end of a session
func (c *Cell) Reset() {
	c.current = nil
}

// Reconciler applies incoming responses to a Cell
type Reconciler struct {
	cell *Cell
}

// NewReconciler returns a reconciler that writes to cell
func NewReconciler(cell *Cell) *Reconciler {
	return &Reconciler{cell: cell}
}

// Cell returns the state cell
func (r *Reconciler) Cell() *Cell {
	return r.cell
}

// Apply decodes raw and, if it is a valid snapshot, replaces the current snapshot
// On any error the current snapshot is left untouched
func (r *Reconciler) Apply(raw json.RawMessage) (*Snapshot, Transition, error) {
	snap, err := DecodeSnapshot(raw)
	if err != nil {
		return nil, Transition{}, err
	}

	prev := r.cell.current
	r.cell.current = snap

	return snap, transition(prev, snap), nil
}
