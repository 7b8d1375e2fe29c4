package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pokertable-client/pkg/action"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		cmd  Command
	}{
		{"fold", Command{Kind: CommandAction, Action: action.Fold}},
		{"  CHECK ", Command{Kind: CommandAction, Action: action.Check}},
		{"bet 40", Command{Kind: CommandAction, Action: action.Bet, Amount: "40"}},
		{"raise 15", Command{Kind: CommandAction, Action: action.Bet, Amount: "15"}},
		{"bet", Command{Kind: CommandAction, Action: action.Bet}},
		{"bet abc", Command{Kind: CommandAction, Action: action.Bet, Amount: "abc"}},
		{"amount 25", Command{Kind: CommandAmount, Amount: "25"}},
		{"continue", Command{Kind: CommandContinue}},
		{"next", Command{Kind: CommandContinue}},
		{"help", Command{Kind: CommandHelp}},
		{"quit", Command{Kind: CommandQuit}},
	}

	for _, test := range tests {
		cmd, err := Parse(test.line)
		assert.NoError(t, err, test.line)
		assert.Equal(t, test.cmd, cmd, test.line)
	}
}

func TestParse_errors(t *testing.T) {
	a := assert.New(t)

	_, err := Parse("")
	a.Equal(errEmpty, err)

	_, err = Parse("fold 10")
	a.EqualError(err, "fold does not take an amount")

	_, err = Parse("bet 10 20")
	a.EqualError(err, "usage: bet [raise]")

	_, err = Parse("amount")
	a.EqualError(err, "usage: amount <raise>")

	_, err = Parse("allin")
	a.EqualError(err, "unknown command: allin")
}

type controller struct {
	calls []string
	err   error
}

func (c *controller) Perform(kind action.Kind, rawAmount string) error {
	c.calls = append(c.calls, kind.String()+":"+rawAmount)
	return c.err
}

func (c *controller) SetAmount(rawAmount string) error {
	c.calls = append(c.calls, "amount:"+rawAmount)
	return c.err
}

func (c *controller) Continue() error {
	c.calls = append(c.calls, "continue")
	return c.err
}

func TestRun(t *testing.T) {
	in := strings.NewReader("amount 30\r\n\nbet\nfold\nwhat\ncontinue\nhelp\nquit\ncheck\n")
	out := &bytes.Buffer{}
	c := &controller{}

	assert.NoError(t, Run(context.Background(), in, out, c))
	assert.Equal(t, []string{"amount:30", "Bet:", "Fold:", "continue"}, c.calls)
	assert.Contains(t, out.String(), "unknown command: what")
	assert.Contains(t, out.String(), Usage)
}

func TestRun_endOfInput(t *testing.T) {
	c := &controller{err: errors.New("the round has not ended")}

	// controller errors do not stop the loop
	assert.NoError(t, Run(context.Background(), strings.NewReader("continue\ncheck"), &bytes.Buffer{}, c))
	assert.Equal(t, []string{"continue", "Check:"}, c.calls)
}

func TestRun_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// a reader that blocks until the test ends
	r, w := io.Pipe()
	defer w.Close()

	err := Run(ctx, r, &bytes.Buffer{}, &controller{})
	assert.Equal(t, context.Canceled, err)
}
