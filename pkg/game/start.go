package game

import (
	"fmt"

	"pokertable-client/pkg/deck"
)

// communityCards is the size of a full board
const communityCards = 5

// PlayerType is who controls a seat
type PlayerType string

// player type constants
const (
	PlayerHuman  PlayerType = "human"
	PlayerRandom PlayerType = "random"
	PlayerAI     PlayerType = "ai"
)

// GameType is the poker variant the server should run
type GameType string

// game type constants
const (
	Texas GameType = "texas"
	Omaha GameType = "omaha"
)

// HoleCards returns the number of private cards each player is dealt
func (g GameType) HoleCards() int {
	if g == Omaha {
		return 4
	}

	return 2
}

// DeckType is the deck the server should deal from
type DeckType string

// deck type constants
const (
	StandardDeck  DeckType = "standard"
	ShortenedDeck DeckType = "shortened"
)

// Ranks returns the ranks the deck is built from
func (d DeckType) Ranks() []deck.Rank {
	if d == ShortenedDeck {
		return deck.ShortenedRanks
	}

	return deck.StandardRanks
}

// Size returns the number of cards in the deck
func (d DeckType) Size() int {
	return len(d.Ranks()) * len(deck.Suits)
}

// Seat is a roster entry of the start request
type Seat struct {
	Type PlayerType `json:"type" yaml:"type"`
	Name string     `json:"name" yaml:"name"`
}

// StartRequest is the payload that starts a game session
type StartRequest struct {
	GameType   GameType `json:"gameType"`
	DeckType   DeckType `json:"deckType"`
	Players    []Seat   `json:"players"`
	SmallBlind int      `json:"smallBlind"`
	BigBlind   int      `json:"bigBlind"`
}

// Human returns the name of the single human seat
func (s StartRequest) Human() string {
	for _, p := range s.Players {
		if p.Type == PlayerHuman {
			return p.Name
		}
	}

	return ""
}

// Validate ensures the request is well formed before it is sent
func (s StartRequest) Validate() error {
	switch s.GameType {
	case Texas, Omaha:
	default:
		return UserError(fmt.Sprintf("unknown game type: %s", s.GameType))
	}

	switch s.DeckType {
	case StandardDeck, ShortenedDeck:
	default:
		return UserError(fmt.Sprintf("unknown deck type: %s", s.DeckType))
	}

	if s.SmallBlind <= 0 {
		return UserError("small blind must be greater than zero")
	}

	if s.BigBlind < s.SmallBlind {
		return UserError("big blind cannot be less than the small blind")
	}

	if len(s.Players) < 2 {
		return UserError("at least two players are required")
	}

	humans := 0
	names := make(map[string]bool)
	for _, p := range s.Players {
		switch p.Type {
		case PlayerHuman:
			humans++
		case PlayerRandom, PlayerAI:
		default:
			return UserError(fmt.Sprintf("unknown player type: %s", p.Type))
		}

		if p.Name == "" {
			return UserError("player name cannot be empty")
		}

		if names[p.Name] {
			return UserError(fmt.Sprintf("duplicate player name: %s", p.Name))
		}
		names[p.Name] = true
	}

	if humans != 1 {
		return UserError("exactly one human player is required")
	}

	if need := len(s.Players)*s.GameType.HoleCards() + communityCards; need > s.DeckType.Size() {
		return UserError(fmt.Sprintf("a %s deck has %d cards, %d players need %d", s.DeckType, s.DeckType.Size(), len(s.Players), need))
	}

	return nil
}
