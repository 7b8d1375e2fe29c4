package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pokertable-client/internal/tablesim"
	"pokertable-client/pkg/action"
	"pokertable-client/pkg/game"
)

func cellWith(t *testing.T, snap game.Snapshot) *game.Cell {
	t.Helper()

	raw, err := json.Marshal(tablesim.StateReply(snap).Body)
	require.NoError(t, err)

	cell := &game.Cell{}
	_, _, err = game.NewReconciler(cell).Apply(raw)
	require.NoError(t, err)

	return cell
}

func TestDispatcher_Submit(t *testing.T) {
	a := assert.New(t)
	d := NewDispatcher(cellWith(t, tablesim.HeadsUp(true)))

	act, payload, err := d.Submit(action.Bet, "40")
	a.NoError(err)
	a.Equal(40, act.Raise())
	a.Equal(action.Bet, payload.Action)
	if a.NotNil(payload.Amount) {
		a.Equal(60, *payload.Amount)
	}
	a.True(d.InFlight())

	_, _, err = d.Submit(action.Fold, "")
	a.Equal(ErrActionInFlight, err)

	d.Complete()
	a.False(d.InFlight())

	_, payload, err = d.Submit(action.Check, "ignored")
	a.NoError(err)
	a.Equal(action.Payload{Action: action.Check}, payload)
}

func TestDispatcher_SubmitInvalidAmount(t *testing.T) {
	d := NewDispatcher(cellWith(t, tablesim.HeadsUp(true)))

	for _, raw := range []string{"", "0", "-5", "abc", "1.5", "2147483647", "9223372036854775807"} {
		_, _, err := d.Submit(action.Bet, raw)
		assert.Equal(t, action.ErrInvalidAmount, err, "amount %q", raw)
		assert.False(t, d.InFlight(), "amount %q", raw)
	}
}

func TestDispatcher_draft(t *testing.T) {
	a := assert.New(t)
	d := NewDispatcher(cellWith(t, tablesim.HeadsUp(true)))

	d.SetDraft(" 30 ")
	a.Equal("30", d.Draft())

	_, payload, err := d.Submit(action.Bet, "")
	a.NoError(err)
	a.Equal(50, *payload.Amount)

	// the draft is kept until the response arrives
	a.Equal("30", d.Draft())
	d.Complete()
	a.Equal("", d.Draft())

	d.SetDraft("10")
	d.ResetDraft()
	a.Equal("", d.Draft())
}

func TestDispatcher_noSnapshot(t *testing.T) {
	d := NewDispatcher(&game.Cell{})

	_, payload, err := d.Submit(action.Bet, "20")
	assert.NoError(t, err)
	assert.Equal(t, 20, *payload.Amount)
}
