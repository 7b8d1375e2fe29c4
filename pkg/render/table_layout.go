package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"
)

const (
	minCanvasWidth = 48
	maxCanvasWidth = 100
	canvasHeight   = 17
)

// TableLayout draws the seats around an oval, the local player at the bottom
type TableLayout struct {
	width int
}

func newTableLayout(width int) *TableLayout {
	// leave room for the box border and padding
	width -= 6
	if width < minCanvasWidth {
		width = minCanvasWidth
	} else if width > maxCanvasWidth {
		width = maxCanvasWidth
	}

	return &TableLayout{width: width}
}

// Render implements Layout
func (t *TableLayout) Render(v *View) (string, error) {
	if v.Waiting {
		return waiting(v), nil
	}

	c := newCanvas(t.width, canvasHeight)
	cx, cy := t.width/2, canvasHeight/2

	// a label may take half of the canvas so the side seats never overlap
	maxLabel := cx - 2

	// longest label decides how far seats are pulled in from the edges
	labelWidth := 0
	labels := make([][]string, len(v.Seats))
	for i, seat := range v.Seats {
		labels[i] = seatLines(seat)
		for j, line := range labels[i] {
			line = truncate(line, maxLabel)
			labels[i][j] = line
			if n := utf8.RuneCountInString(line); n > labelWidth {
				labelWidth = n
			}
		}
	}

	rx := float64(cx - labelWidth/2 - 1)
	ry := float64(cy - 2)
	for i, seat := range v.Seats {
		col := cx + int(seat.X/RadiusX*rx)
		row := cy + int(seat.Y/RadiusY*ry)
		lines := labels[i]
		for j, line := range lines {
			c.writeCentered(row-len(lines)/2+j, col, line)
		}
	}

	board := cardLabels(v.Community)
	if board == "" {
		board = "-- -- --"
	}
	c.writeCentered(cy-1, cx, board)
	c.writeCentered(cy, cx, fmt.Sprintf("Pot %d", v.Pot))
	if v.ToCall > 0 {
		c.writeCentered(cy+1, cx, fmt.Sprintf("To call %d", v.ToCall))
	}

	table := pterm.DefaultBox.WithTitle("Table").WithTitleTopCenter().Sprint(c.String())
	return table + "\n" + footer(v), nil
}

func seatLines(seat Seat) []string {
	name := seat.Name
	switch {
	case seat.IsWinner:
		name = "* " + name + " *"
	case seat.Folded:
		name += " (folded)"
	case seat.IsLocal:
		name = "[" + name + "]"
	}

	lines := []string{name, fmt.Sprintf("%d / bet %d", seat.Chips, seat.Bet)}
	if cards := seatCards(seat); cards != "" {
		lines = append(lines, cards)
	}

	return lines
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "…"
}

type canvas struct {
	width int
	rows  [][]rune
}

func newCanvas(width, height int) *canvas {
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}

	return &canvas{width: width, rows: rows}
}

// writeCentered writes s centered on col; anything outside the canvas is clipped
func (c *canvas) writeCentered(row, col int, s string) {
	if row < 0 || row >= len(c.rows) {
		return
	}

	runes := []rune(s)
	start := col - len(runes)/2
	if start < 0 {
		start = 0
	}
	if start+len(runes) > c.width {
		start = c.width - len(runes)
		if start < 0 {
			start = 0
		}
	}

	for i, r := range runes {
		if start+i >= c.width {
			return
		}
		c.rows[row][start+i] = r
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		lines[i] = strings.TrimRight(string(row), " ")
	}

	return strings.Join(lines, "\n")
}
