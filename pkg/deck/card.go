package deck

import (
	"fmt"
	"strings"
)

// Rank is the rank symbol the table service sends for a card
type Rank string

// rank constants
const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
	Spades   Suit = "S"
)

// StandardRanks are the ranks of a 52 card deck, lowest first
var StandardRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// ShortenedRanks are the ranks of a 36 card deck, lowest first
var ShortenedRanks = []Rank{Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Suits are all of the known suits
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Card is an individual playing card
// Cards are only displayed, the server decides what they are worth
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♦"
	case Hearts:
		suit = "♥"
	case Spades:
		suit = "♠"
	default:
		suit = string(c.Suit)
	}

	return fmt.Sprintf("%s%s", c.Rank, suit)
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// AssetKey is the key of the image asset for the card, i.e., 10H
func (c Card) AssetKey() string {
	return string(c.Rank) + string(c.Suit)
}

// HasAsset returns true if both the rank and suit are known symbols
func (c Card) HasAsset() bool {
	return c.Rank.IsValid() && c.Suit.IsValid()
}

// IsValid returns true if the rank is one of the known rank symbols
func (r Rank) IsValid() bool {
	for _, rank := range StandardRanks {
		if rank == r {
			return true
		}
	}

	return false
}

// IsValid returns true if the suit is one of the known suit symbols
func (s Suit) IsValid() bool {
	for _, suit := range Suits {
		if suit == s {
			return true
		}
	}

	return false
}

// CardsToString will convert a slice of cards to a string in the format of 2♥ 10♣ ...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}
