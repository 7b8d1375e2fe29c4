package render

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

const defaultWidth = 80

// clearScreen moves the cursor home and clears the screen
const clearScreen = "\033[H\033[2J"

// Presenter shows views and notices to the player
type Presenter interface {
	// Present draws the view
	Present(v *View) error

	// Notify shows a notice the player must see, i.e., an error from the server
	Notify(msg string)
}

// Terminal presents views on a terminal or any other writer
type Terminal struct {
	out    io.Writer
	layout Layout
	clear  bool
}

// NewTerminal returns a presenter for the named layout
// The screen is only cleared between frames when out is a terminal
func NewTerminal(out io.Writer, layoutName string) (*Terminal, error) {
	width := defaultWidth
	isTerminal := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isTerminal = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	layout, err := NewLayout(layoutName, width)
	if err != nil {
		return nil, err
	}

	return &Terminal{
		out:    out,
		layout: layout,
		clear:  isTerminal,
	}, nil
}

// Present implements Presenter
func (t *Terminal) Present(v *View) error {
	s, err := t.layout.Render(v)
	if err != nil {
		return err
	}

	if t.clear {
		s = clearScreen + s
	}

	_, err = io.WriteString(t.out, s)
	return err
}

// Notify implements Presenter
func (t *Terminal) Notify(msg string) {
	_, _ = fmt.Fprintln(t.out, pterm.Error.Sprint(msg))
}
