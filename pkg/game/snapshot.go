package game

import (
	"pokertable-client/pkg/deck"
)

// MaxCommunityCards is the most community cards a table can show
const MaxCommunityCards = 5

// PlayerView is a player as seen by the local client
type PlayerView struct {
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	Bet    int    `json:"bet"`
	Folded bool   `json:"folded"`

	// Hand is only populated for the local player or for revealed hands at the end of a round
	Hand []deck.Card `json:"hand,omitempty"`

	// Combo is the hand rank label, i.e., "full house", only present after the showdown
	Combo string `json:"combo,omitempty"`
}

// Snapshot is one authoritative, point-in-time view of the table
// A snapshot is never modified after it is decoded
type Snapshot struct {
	Pot            int          `json:"pot"`
	ToCall         int          `json:"toCall"`
	CurrentBet     int          `json:"currentBet"`
	CommunityCards []deck.Card  `json:"communityCards"`
	Players        []PlayerView `json:"players"`
	Hand           []deck.Card  `json:"hand"`
	YourTurn       bool         `json:"yourTurn"`
	RoundEnded     bool         `json:"roundEnded"`
	Winners        []string     `json:"winners"`
	Message        string       `json:"message"`
}

// Transition describes what changed between the previous and the new snapshot
type Transition struct {
	// TurnJustStarted is true only when yourTurn went from false to true
	TurnJustStarted bool `json:"turnJustStarted"`

	// RoundJustEnded is true only when roundEnded went from false to true
	RoundJustEnded bool `json:"roundJustEnded"`
}

// PlayerIndex returns the seat index of the named player, or -1
func (s *Snapshot) PlayerIndex(name string) int {
	for i, p := range s.Players {
		if p.Name == name {
			return i
		}
	}

	return -1
}

// IsWinner returns true if the named player is one of the winners
func (s *Snapshot) IsWinner(name string) bool {
	for _, w := range s.Winners {
		if w == name {
			return true
		}
	}

	return false
}

func transition(prev, next *Snapshot) Transition {
	var wasTurn, wasEnded bool
	if prev != nil {
		wasTurn = prev.YourTurn
		wasEnded = prev.RoundEnded
	}

	return Transition{
		TurnJustStarted: !wasTurn && next.YourTurn,
		RoundJustEnded:  !wasEnded && next.RoundEnded,
	}
}
