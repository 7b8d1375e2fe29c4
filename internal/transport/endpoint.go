package transport

import "net/http"

// Endpoint is a logical endpoint of the table service
type Endpoint int

// endpoint constants
const (
	Start Endpoint = iota
	State
	Action
	Continue
)

func (e Endpoint) String() string {
	switch e {
	case Start:
		return "start"
	case State:
		return "state"
	case Action:
		return "action"
	case Continue:
		return "continue"
	}

	return "unknown"
}

// Method is the HTTP method of the endpoint
func (e Endpoint) Method() string {
	if e == State {
		return http.MethodGet
	}

	return http.MethodPost
}

// Path is the HTTP path of the endpoint
func (e Endpoint) Path() string {
	return "/api/" + e.String()
}
