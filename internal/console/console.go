// Package console reads player commands from a line based input
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"pokertable-client/pkg/action"
)

// CommandKind is the kind of command a player typed
type CommandKind int

// command kind constants
const (
	CommandAction CommandKind = iota
	CommandAmount
	CommandContinue
	CommandHelp
	CommandQuit
)

// Usage is printed for the help command
const Usage = `Commands:
  fold              fold your hand
  check             check
  bet [raise]       raise over the current bet, without a raise the amount is used
  raise [raise]     same as bet
  amount <raise>    set the amount for the next bet
  continue          deal the next round once the round ended
  help              show this help
  quit              leave the table`

// Command is a parsed input line
type Command struct {
	Kind CommandKind

	// Action is only set for CommandAction
	Action action.Kind

	// Amount is the raw amount, validated when the action is sent
	Amount string
}

var errEmpty = errors.New("empty command")

// Parse parses a single input line
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, errEmpty
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "fold", "check":
		if len(args) > 0 {
			return Command{}, fmt.Errorf("%s does not take an amount", name)
		}

		kind := action.Fold
		if name == "check" {
			kind = action.Check
		}

		return Command{Kind: CommandAction, Action: kind}, nil
	case "bet", "raise":
		if len(args) > 1 {
			return Command{}, fmt.Errorf("usage: %s [raise]", name)
		}

		cmd := Command{Kind: CommandAction, Action: action.Bet}
		if len(args) == 1 {
			cmd.Amount = args[0]
		}

		return cmd, nil
	case "amount":
		if len(args) != 1 {
			return Command{}, errors.New("usage: amount <raise>")
		}

		return Command{Kind: CommandAmount, Amount: args[0]}, nil
	case "continue", "next":
		return Command{Kind: CommandContinue}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "quit", "exit":
		return Command{Kind: CommandQuit}, nil
	}

	return Command{}, fmt.Errorf("unknown command: %s", name)
}

// Controller receives the player's intents
type Controller interface {
	Perform(kind action.Kind, rawAmount string) error
	SetAmount(rawAmount string) error
	Continue() error
}

// Run reads commands from in until quit, end of input or ctx is done
// Errors of the controller are shown by the controller itself, only parse errors are written to out.
func Run(ctx context.Context, in io.Reader, out io.Writer, c Controller) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(in)
		for {
			str, err := reader.ReadString('\n')
			if str != "" {
				select {
				case lines <- strings.TrimRight(str, "\r\n"):
				case <-ctx.Done():
					return
				}
			}

			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		case line := <-lines:
			quit, err := dispatch(line, out, c)
			if err != nil {
				return err
			}

			if quit {
				return nil
			}
		}
	}
}

func dispatch(line string, out io.Writer, c Controller) (bool, error) {
	cmd, err := Parse(line)
	if errors.Is(err, errEmpty) {
		return false, nil
	}

	if err != nil {
		_, werr := fmt.Fprintln(out, err)
		return false, werr
	}

	switch cmd.Kind {
	case CommandAction:
		err = c.Perform(cmd.Action, cmd.Amount)
	case CommandAmount:
		err = c.SetAmount(cmd.Amount)
	case CommandContinue:
		err = c.Continue()
	case CommandHelp:
		_, werr := fmt.Fprintln(out, Usage)
		return false, werr
	case CommandQuit:
		return true, nil
	}

	if err != nil {
		logrus.WithError(err).WithField("line", line).Debug("command was not accepted")
	}

	return false, nil
}
