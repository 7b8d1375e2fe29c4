package render

import (
	"fmt"
	"math"
	"strings"

	"pokertable-client/pkg/deck"
	"pokertable-client/pkg/game"
)

// seat layout constants, screen coordinates with y growing downward
const (
	AnchorAngle = 90.0
	RadiusX     = 400.0
	RadiusY     = 250.0
)

// Card is a card ready for display
// Asset is empty if no image exists for the card
type Card struct {
	Label string `json:"label"`
	Asset string `json:"asset,omitempty"`
}

// Seat is a player placed around the table
type Seat struct {
	Name     string  `json:"name"`
	Chips    int     `json:"chips"`
	Bet      int     `json:"bet"`
	Folded   bool    `json:"folded"`
	IsLocal  bool    `json:"isLocal"`
	IsWinner bool    `json:"isWinner"`
	Angle    float64 `json:"angle"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Hand     []Card  `json:"hand"`
	Combo    string  `json:"combo,omitempty"`
}

// Announcement is the winner announcement displayed after a round
type Announcement struct {
	Text    string   `json:"text"`
	Winners []string `json:"winners"`
	Details []string `json:"details"`

	// Hint tells the player how the next round starts
	Hint string `json:"hint,omitempty"`
}

// View is everything that is drawn on screen
type View struct {
	Waiting            bool          `json:"waiting"`
	Pot                int           `json:"pot"`
	ToCall             int           `json:"toCall"`
	CurrentBet         int           `json:"currentBet"`
	Community          []Card        `json:"community"`
	Hand               []Card        `json:"hand"`
	Seats              []Seat        `json:"seats"`
	ActionPanelVisible bool          `json:"actionPanelVisible"`
	ActionsEnabled     bool          `json:"actionsEnabled"`
	AmountDraft        string        `json:"amountDraft"`
	Announcement       *Announcement `json:"announcement,omitempty"`
	Log                []string      `json:"log"`
	Notice             string        `json:"notice,omitempty"`
}

// Frame is the input of Project
type Frame struct {
	Snapshot  *game.Snapshot
	LocalName string

	// RoundEnded is true while the session waits for the next round
	RoundEnded bool

	// ActionPending is true while an action request is in flight
	ActionPending bool

	AmountDraft  string
	Announcement *Announcement
	Log          []string
	Notice       string
}

// Project computes the view of a frame
// It has no side effects
func Project(f Frame) *View {
	v := &View{
		AmountDraft:  f.AmountDraft,
		Announcement: f.Announcement,
		Log:          f.Log,
		Notice:       f.Notice,
		Community:    []Card{},
		Hand:         []Card{},
		Seats:        []Seat{},
	}

	s := f.Snapshot
	if s == nil {
		v.Waiting = true
		return v
	}

	v.Pot = s.Pot
	v.ToCall = s.ToCall
	if v.ToCall < 0 {
		v.ToCall = 0
	}
	v.CurrentBet = s.CurrentBet
	v.Community = cards(s.CommunityCards)
	v.Hand = cards(s.Hand)
	v.Seats = seats(s, f.LocalName)
	v.ActionPanelVisible = ActionPanelVisible(s, f.RoundEnded)
	v.ActionsEnabled = v.ActionPanelVisible && !f.ActionPending

	return v
}

// ActionPanelVisible returns true if the player can act on the snapshot
func ActionPanelVisible(s *game.Snapshot, roundEnded bool) bool {
	return s.YourTurn && !s.RoundEnded && !roundEnded
}

// Announce builds the winner announcement for a snapshot that ended a round
func Announce(s *game.Snapshot) *Announcement {
	a := &Announcement{
		Winners: append([]string{}, s.Winners...),
		Details: []string{},
	}

	if len(s.Winners) > 0 {
		a.Text = "Winners: " + strings.Join(s.Winners, ", ")
	} else {
		a.Text = "No winners"
	}

	for _, p := range s.Players {
		if p.Combo != "" && !p.Folded && s.IsWinner(p.Name) {
			a.Details = append(a.Details, fmt.Sprintf("%s: %s", p.Name, p.Combo))
		}
	}

	return a
}

// SeatAngle returns the angle of the seat at index i of n seats, given the local player's index
// The local player is always at AnchorAngle
func SeatAngle(i, localIndex, n int) float64 {
	if n == 0 {
		return AnchorAngle
	}

	relative := (i - localIndex + n) % n
	return math.Mod(AnchorAngle+float64(relative)*360/float64(n), 360)
}

func seats(s *game.Snapshot, localName string) []Seat {
	localIndex := s.PlayerIndex(localName)
	anchor := localIndex
	if anchor < 0 {
		anchor = 0
	}

	n := len(s.Players)
	result := make([]Seat, n)
	for i, p := range s.Players {
		angle := SeatAngle(i, anchor, n)
		rad := angle * math.Pi / 180
		seat := Seat{
			Name:     p.Name,
			Chips:    p.Chips,
			Bet:      p.Bet,
			Folded:   p.Folded,
			IsLocal:  i == localIndex,
			IsWinner: s.RoundEnded && s.IsWinner(p.Name),
			Angle:    angle,
			X:        round(RadiusX * math.Cos(rad)),
			Y:        round(RadiusY * math.Sin(rad)),
			Hand:     []Card{},
		}

		switch {
		case seat.IsLocal:
			seat.Hand = cards(s.Hand)
			if s.RoundEnded {
				seat.Combo = p.Combo
			}
		case s.RoundEnded:
			seat.Hand = cards(p.Hand)
			seat.Combo = p.Combo
		}

		result[i] = seat
	}

	return result
}

func cards(in []deck.Card) []Card {
	out := make([]Card, 0, len(in))
	for _, c := range in {
		card := Card{Label: c.String()}
		if c.HasAsset() {
			card.Asset = c.AssetKey()
		}

		out = append(out, card)
	}

	return out
}

func round(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}

	return r
}
