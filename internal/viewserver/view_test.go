package viewserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pokertable-client/pkg/action"
	"pokertable-client/pkg/render"
	"pokertable-client/pkg/session"
)

type performCall struct {
	kind      action.Kind
	rawAmount string
}

type fakeSession struct {
	lock      sync.Mutex
	view      *render.View
	err       error
	performs  []performCall
	continues int
}

func (f *fakeSession) calls() ([]performCall, int) {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]performCall{}, f.performs...), f.continues
}

type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func (f *fakeSession) View(ctx context.Context) (*render.View, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	return f.view, nil
}

func (f *fakeSession) Perform(kind action.Kind, rawAmount string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.performs = append(f.performs, performCall{kind: kind, rawAmount: rawAmount})
	return f.err
}

func (f *fakeSession) Continue() error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.continues++
	return f.err
}

func TestMux_getView(t *testing.T) {
	s := &fakeSession{view: &render.View{Pot: 60, ToCall: 20, ActionPanelVisible: true}}
	ts := httptest.NewServer(NewMux("", s))
	defer ts.Close()

	var v render.View
	assertGet(t, ts, "/view", &v, http.StatusOK)
	assert.Equal(t, 60, v.Pot)
	assert.Equal(t, 20, v.ToCall)
	assert.True(t, v.ActionPanelVisible)

	s.lock.Lock()
	s.err = session.ErrClosed
	s.lock.Unlock()

	var errObj errorResponse
	assertGet(t, ts, "/view", &errObj, http.StatusServiceUnavailable)
	assert.Equal(t, "session is closed", errObj.Message)
}

func TestMux_postAction(t *testing.T) {
	s := &fakeSession{}
	ts := httptest.NewServer(NewMux("", s))
	defer ts.Close()

	var status statusResponse
	assertPost(t, ts, "/action", map[string]interface{}{"action": "bet", "amount": 40}, &status, http.StatusAccepted)
	assert.Equal(t, "accepted", status.Status)
	assertPost(t, ts, "/action", map[string]interface{}{"action": "FOLD"}, nil, http.StatusAccepted)

	performs, _ := s.calls()
	assert.Equal(t, []performCall{{kind: action.Bet, rawAmount: "40"}, {kind: action.Fold}}, performs)

	var errObj errorResponse
	assertPost(t, ts, "/action", map[string]interface{}{"action": "allin"}, &errObj, http.StatusBadRequest)
	assert.Equal(t, "unknown action for identifier: allin", errObj.Message)

	assertPost(t, ts, "/action", "not json", nil, http.StatusBadRequest)
	performs, _ = s.calls()
	assert.Equal(t, 2, len(performs))
}

func TestMux_postActionErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{action.ErrInvalidAmount, http.StatusBadRequest},
		{session.ErrActionInFlight, http.StatusConflict},
		{session.ErrActionUnavailable, http.StatusConflict},
		{session.ErrClosed, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, test := range tests {
		s := &fakeSession{err: test.err}
		ts := httptest.NewServer(NewMux("", s))

		var errObj errorResponse
		assertPost(t, ts, "/action", map[string]interface{}{"action": "bet", "amount": 0}, &errObj, test.status)
		assert.Equal(t, test.status, errObj.StatusCode)
		ts.Close()
	}
}

func TestMux_postContinue(t *testing.T) {
	s := &fakeSession{}
	ts := httptest.NewServer(NewMux("", s))
	defer ts.Close()

	assertPost(t, ts, "/continue", nil, nil, http.StatusAccepted)
	_, continues := s.calls()
	assert.Equal(t, 1, continues)

	s.lock.Lock()
	s.err = session.ErrNotRoundEnded
	s.lock.Unlock()
	var errObj errorResponse
	assertPost(t, ts, "/continue", nil, &errObj, http.StatusConflict)
	assert.Equal(t, "the round has not ended", errObj.Message)
}

func TestMux_Handler(t *testing.T) {
	accessLog := &syncBuffer{}
	ts := httptest.NewServer(NewMux("", &fakeSession{view: &render.View{}}).Handler(accessLog))
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/view", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := assertDo(t, req, nil, http.StatusOK)
	if assert.NotNil(t, resp) {
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(accessLog.String(), "GET /view")
	}, time.Second, time.Millisecond*5)
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", NewMux("", &fakeSession{}))
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal("server did not shut down")
	}
}
