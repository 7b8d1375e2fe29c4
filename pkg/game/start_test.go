package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validStartRequest() StartRequest {
	return StartRequest{
		GameType:   Texas,
		DeckType:   StandardDeck,
		SmallBlind: 10,
		BigBlind:   20,
		Players: []Seat{
			{Type: PlayerHuman, Name: "You"},
			{Type: PlayerRandom, Name: "Bot1"},
			{Type: PlayerAI, Name: "Bot2"},
		},
	}
}

func TestStartRequest_Validate(t *testing.T) {
	a := assert.New(t)

	req := validStartRequest()
	a.NoError(req.Validate())
	a.Equal("You", req.Human())

	req = validStartRequest()
	req.GameType = "stud"
	a.EqualError(req.Validate(), "unknown game type: stud")

	req = validStartRequest()
	req.DeckType = "pinochle"
	a.EqualError(req.Validate(), "unknown deck type: pinochle")

	req = validStartRequest()
	req.SmallBlind = 0
	a.EqualError(req.Validate(), "small blind must be greater than zero")

	req = validStartRequest()
	req.BigBlind = 5
	a.EqualError(req.Validate(), "big blind cannot be less than the small blind")

	req = validStartRequest()
	req.Players = req.Players[:1]
	a.EqualError(req.Validate(), "at least two players are required")

	req = validStartRequest()
	req.Players[1].Type = PlayerHuman
	a.EqualError(req.Validate(), "exactly one human player is required")

	req = validStartRequest()
	req.Players[0].Type = PlayerAI
	a.EqualError(req.Validate(), "exactly one human player is required")
	a.Equal("", req.Human())

	req = validStartRequest()
	req.Players[2].Name = "Bot1"
	a.EqualError(req.Validate(), "duplicate player name: Bot1")

	req = validStartRequest()
	req.Players[2].Type = "alien"
	a.EqualError(req.Validate(), "unknown player type: alien")

	req = validStartRequest()
	req.Players[2].Name = ""
	a.EqualError(req.Validate(), "player name cannot be empty")

	var ue UserError
	a.ErrorAs(req.Validate(), &ue)
}

func TestStartRequest_ValidateDeckSize(t *testing.T) {
	a := assert.New(t)

	a.Equal(52, StandardDeck.Size())
	a.Equal(36, ShortenedDeck.Size())

	req := validStartRequest()
	req.GameType = Omaha
	req.DeckType = ShortenedDeck
	for i := len(req.Players); i < 7; i++ {
		req.Players = append(req.Players, Seat{Type: PlayerRandom, Name: fmt.Sprintf("Bot%d", i)})
	}

	// 7 * 4 + 5
	a.NoError(req.Validate())

	req.Players = append(req.Players, Seat{Type: PlayerAI, Name: "Bot7"})
	a.EqualError(req.Validate(), "a shortened deck has 36 cards, 8 players need 37")

	req.DeckType = StandardDeck
	a.NoError(req.Validate())
}
