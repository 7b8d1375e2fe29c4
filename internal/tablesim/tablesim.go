// Package tablesim is a scripted stand-in for the table service
// Replies are queued per endpoint; once a queue is empty the endpoint's default reply is used.
package tablesim

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"pokertable-client/pkg/deck"
	"pokertable-client/pkg/game"
)

// endpoint names
const (
	Start    = "start"
	State    = "state"
	Action   = "action"
	Continue = "continue"
)

// Reply is a scripted response
type Reply struct {
	Status int
	Body   interface{}

	// Release holds the reply until it is closed
	Release <-chan struct{}
}

// Request is a request that was received
type Request struct {
	Endpoint  string
	Method    string
	Body      json.RawMessage
	RequestID string
}

// Server is an http.Handler that answers the four table endpoints
type Server struct {
	*mux.Router

	lock     sync.Mutex
	replies  map[string][]Reply
	defaults map[string]Reply
	requests []Request
	notify   chan Request
}

// New returns a server where every endpoint answers {success:true}
func New() *Server {
	s := &Server{
		Router:   mux.NewRouter(),
		replies:  make(map[string][]Reply),
		defaults: make(map[string]Reply),
		notify:   make(chan Request, 256),
	}

	for _, name := range []string{Start, Action, Continue} {
		s.defaults[name] = OK()
	}
	s.defaults[State] = Fail(http.StatusBadRequest, "Игра не начата")

	r := s.Router.PathPrefix("/api").Subrouter()
	r.Methods(http.MethodPost).Path("/start").Handler(s.handle(Start))
	r.Methods(http.MethodGet).Path("/state").Handler(s.handle(State))
	r.Methods(http.MethodPost).Path("/action").Handler(s.handle(Action))
	r.Methods(http.MethodPost).Path("/continue").Handler(s.handle(Continue))

	return s
}

// Enqueue adds replies that will be used, in order, for the endpoint
func (s *Server) Enqueue(endpoint string, replies ...Reply) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.replies[endpoint] = append(s.replies[endpoint], replies...)
}

// SetDefault sets the reply used when nothing is queued for the endpoint
func (s *Server) SetDefault(endpoint string, reply Reply) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.defaults[endpoint] = reply
}

// Requests returns the requests received for the endpoint
func (s *Server) Requests(endpoint string) []Request {
	s.lock.Lock()
	defer s.lock.Unlock()

	var requests []Request
	for _, req := range s.requests {
		if req.Endpoint == endpoint {
			requests = append(requests, req)
		}
	}

	return requests
}

// Count returns how many requests the endpoint received
func (s *Server) Count(endpoint string) int {
	return len(s.Requests(endpoint))
}

// Received returns a channel that receives every request as it arrives
func (s *Server) Received() <-chan Request {
	return s.notify
}

func (s *Server) next(endpoint string) Reply {
	s.lock.Lock()
	defer s.lock.Unlock()

	if queue := s.replies[endpoint]; len(queue) > 0 {
		s.replies[endpoint] = queue[1:]
		return queue[0]
	}

	return s.defaults[endpoint]
}

func (s *Server) handle(endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		req := Request{
			Endpoint:  endpoint,
			Method:    r.Method,
			Body:      body,
			RequestID: r.Header.Get("X-Request-ID"),
		}

		s.lock.Lock()
		s.requests = append(s.requests, req)
		s.lock.Unlock()

		select {
		case s.notify <- req:
		default:
		}

		reply := s.next(endpoint)
		if reply.Release != nil {
			select {
			case <-reply.Release:
			case <-r.Context().Done():
				return
			}
		}

		status := reply.Status
		if status == 0 {
			status = http.StatusOK
		}

		writeJSON(w, status, reply.Body)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

// OK returns a bare success reply
func OK() Reply {
	return Reply{Body: game.Envelope{Success: true}}
}

// Fail returns a failure envelope with the given status code
func Fail(status int, msg string) Reply {
	return Reply{Status: status, Body: game.Envelope{Success: false, Error: msg}}
}

type stateBody struct {
	Success bool `json:"success"`
	game.Snapshot
}

// StateReply returns a successful state reply for the snapshot
func StateReply(snap game.Snapshot) Reply {
	if snap.Players == nil {
		snap.Players = []game.PlayerView{}
	}

	if snap.CommunityCards == nil {
		snap.CommunityCards = []deck.Card{}
	}

	if snap.Winners == nil {
		snap.Winners = []string{}
	}

	return Reply{Body: stateBody{Success: true, Snapshot: snap}}
}

// HeadsUp returns a two player snapshot with "You" and "Bot1", blinds 10/20
func HeadsUp(yourTurn bool) game.Snapshot {
	return game.Snapshot{
		Pot:        30,
		ToCall:     20,
		CurrentBet: 20,
		Players: []game.PlayerView{
			{Name: "You", Chips: 1000, Bet: 0},
			{Name: "Bot1", Chips: 980, Bet: 20},
		},
		Hand:     []deck.Card{{Rank: deck.Ace, Suit: deck.Spades}, {Rank: deck.King, Suit: deck.Spades}},
		YourTurn: yourTurn,
	}
}
