package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when a raise amount is not a positive integer
var ErrInvalidAmount = errors.New("raise amount must be greater than 0")

// MaxAmount is the largest total bet the table service accepts
const MaxAmount = math.MaxInt32

// Kind is the kind of action a player can take
type Kind int

// kind constants
const (
	Fold Kind = iota
	Check
	Bet
)

var kindFromString = map[string]Kind{
	"fold":  Fold,
	"check": Check,
	"bet":   Bet,
	"raise": Bet,
}

// FromString returns a kind for the given identifier
// "raise" is accepted as an alias of "bet"
func FromString(s string) (Kind, error) {
	if k, ok := kindFromString[strings.ToLower(s)]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %s", s)
}

func (k Kind) String() string {
	switch k {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Bet:
		return "Bet"
	}

	panic("unknown action")
}

// Wire returns the identifier the table service expects
func (k Kind) Wire() string {
	switch k {
	case Fold:
		return "FOLD"
	case Check:
		return "CHECK"
	case Bet:
		return "BET"
	}

	panic("unknown action")
}

// MarshalJSON encodes the kind into JSON
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.Wire())
}

// Action is a user intent
// The raise amount is only meaningful for Bet
type Action struct {
	kind  Kind
	raise int
}

// NewFold returns a fold action
func NewFold() Action {
	return Action{kind: Fold}
}

// NewCheck returns a check action
func NewCheck() Action {
	return Action{kind: Check}
}

// NewBet returns a bet that raises by amount over the current bet
func NewBet(amount int) (Action, error) {
	if amount <= 0 || amount > MaxAmount {
		return Action{}, ErrInvalidAmount
	}

	return Action{kind: Bet, raise: amount}, nil
}

// Parse builds an action from user input
// rawAmount is ignored unless the kind is Bet
func Parse(kind Kind, rawAmount string) (Action, error) {
	switch kind {
	case Fold:
		return NewFold(), nil
	case Check:
		return NewCheck(), nil
	case Bet:
		amount, err := strconv.Atoi(strings.TrimSpace(rawAmount))
		if err != nil {
			return Action{}, ErrInvalidAmount
		}

		return NewBet(amount)
	}

	return Action{}, fmt.Errorf("unknown action kind: %d", kind)
}

// Kind returns the action kind
func (a Action) Kind() Kind {
	return a.kind
}

// Raise returns the amount over the current bet
func (a Action) Raise() int {
	return a.raise
}

// Payload is the body of an action request
type Payload struct {
	Action Kind `json:"action"`
	Amount *int `json:"amount,omitempty"`
}

// Validate checks the action can be sent over currentBet
// A Bet whose total does not fit MaxAmount returns ErrInvalidAmount.
func (a Action) Validate(currentBet int) error {
	if a.kind != Bet {
		return nil
	}

	if currentBet < 0 || currentBet > MaxAmount || a.raise > MaxAmount-currentBet {
		return ErrInvalidAmount
	}

	return nil
}

// Payload builds the request body
// A Bet is sent as the absolute total: currentBet + raise
func (a Action) Payload(currentBet int) Payload {
	switch a.kind {
	case Fold, Check:
		return Payload{Action: a.kind}
	case Bet:
		total := currentBet + a.raise
		return Payload{Action: a.kind, Amount: &total}
	}

	panic("unknown action")
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(currentBet int) string {
	switch a.kind {
	case Fold:
		return "you folded"
	case Check:
		return "you checked"
	case Bet:
		return fmt.Sprintf("you bet %d (raise of %d)", currentBet+a.raise, a.raise)
	}

	return ""
}
