package render

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// layout names
const (
	LayoutTable = "table"
	LayoutList  = "list"
)

// logLines is how many log lines a layout shows
const logLines = 6

// Layout turns a view into text
type Layout interface {
	Render(v *View) (string, error)
}

// NewLayout returns the layout with the given name, sized for width columns
func NewLayout(name string, width int) (Layout, error) {
	switch name {
	case LayoutTable:
		return newTableLayout(width), nil
	case LayoutList:
		return &ListLayout{}, nil
	}

	return nil, fmt.Errorf("unknown presentation: %s", name)
}

// ListLayout shows the players as a table in seating order
type ListLayout struct{}

// Render implements Layout
func (l *ListLayout) Render(v *View) (string, error) {
	if v.Waiting {
		return waiting(v), nil
	}

	data := pterm.TableData{{"Player", "Chips", "Bet", "Status", "Cards"}}
	for _, seat := range v.Seats {
		name := seat.Name
		if seat.IsLocal {
			name = pterm.LightCyan(name)
		}

		data = append(data, []string{
			name,
			fmt.Sprint(seat.Chips),
			fmt.Sprint(seat.Bet),
			seatStatus(seat),
			seatCards(seat),
		})
	}

	players, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	return players + "\n" + footer(v), nil
}

func waiting(v *View) string {
	var sb strings.Builder
	sb.WriteString("Waiting for the table...\n")
	writeLog(&sb, v)
	return sb.String()
}

func seatStatus(seat Seat) string {
	switch {
	case seat.IsWinner:
		return pterm.LightGreen("Winner")
	case seat.Folded:
		return pterm.LightRed("Folded")
	}

	return "Active"
}

func seatCards(seat Seat) string {
	s := cardLabels(seat.Hand)
	if seat.Combo != "" {
		s += " (" + seat.Combo + ")"
	}

	return s
}

func cardLabels(cards []Card) string {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.Label
	}

	return strings.Join(labels, " ")
}

// footer writes the parts every layout shares: board, hand, action panel, announcement and log
func footer(v *View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Pot: %d   To call: %d   Current bet: %d\n", v.Pot, v.ToCall, v.CurrentBet)

	board := cardLabels(v.Community)
	if board == "" {
		board = "-"
	}
	fmt.Fprintf(&sb, "Board: %s\n", board)
	fmt.Fprintf(&sb, "Your hand: %s\n", cardLabels(v.Hand))

	if v.ActionPanelVisible {
		if v.ActionsEnabled {
			sb.WriteString(pterm.LightYellow("Your turn: fold | check | bet <raise>"))
			if v.AmountDraft != "" {
				fmt.Fprintf(&sb, " [raise: %s]", v.AmountDraft)
			}
		} else {
			sb.WriteString(pterm.Gray("Sending action..."))
		}
		sb.WriteString("\n")
	}

	if a := v.Announcement; a != nil {
		sb.WriteString(pterm.LightGreen(a.Text) + "\n")
		for _, d := range a.Details {
			sb.WriteString("  " + d + "\n")
		}
		if a.Hint != "" {
			sb.WriteString(a.Hint + "\n")
		}
	}

	writeLog(&sb, v)

	if v.Notice != "" {
		sb.WriteString(pterm.LightRed(v.Notice) + "\n")
	}

	return sb.String()
}

func writeLog(sb *strings.Builder, v *View) {
	lines := v.Log
	if len(lines) > logLines {
		lines = lines[len(lines)-logLines:]
	}

	for _, line := range lines {
		sb.WriteString(pterm.Gray("> "+line) + "\n")
	}
}
