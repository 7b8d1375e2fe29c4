package viewserver

import (
	"errors"
	"net/http"
	"strconv"

	"pokertable-client/pkg/action"
	"pokertable-client/pkg/session"
)

type actionRequest struct {
	Action string `json:"action"`

	// Amount is the raise over the current bet
	Amount *int `json:"amount"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (m *Mux) getView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := m.session.View(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}

		writeJSON(w, http.StatusOK, v)
	}
}

func (m *Mux) postAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req actionRequest
		if !decodeRequest(w, r, &req) {
			return
		}

		kind, err := action.FromString(req.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		rawAmount := ""
		if req.Amount != nil {
			rawAmount = strconv.Itoa(*req.Amount)
		}

		if err := m.session.Perform(kind, rawAmount); err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, statusResponse{Status: "accepted"})
	}
}

func (m *Mux) postContinue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.session.Continue(); err != nil {
			writeSessionError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, statusResponse{Status: "accepted"})
	}
}

// writeSessionError maps an error of the session to a status code
func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, action.ErrInvalidAmount):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, session.ErrActionInFlight),
		errors.Is(err, session.ErrActionUnavailable),
		errors.Is(err, session.ErrNotRoundEnded),
		errors.Is(err, session.ErrContinueInFlight):
		writeJSONError(w, http.StatusConflict, err)
	case errors.Is(err, session.ErrClosed):
		writeJSONError(w, http.StatusServiceUnavailable, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
