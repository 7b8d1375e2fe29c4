// Package viewserver serves the local view of the table over HTTP
// It lets other programs, i.e., a browser front end, read the view and act for the player.
package viewserver

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	gmux "github.com/gorilla/mux"
	"github.com/rs/cors"
	"pokertable-client/pkg/action"
	"pokertable-client/pkg/render"
)

// Session is the part of the session the server exposes
type Session interface {
	View(ctx context.Context) (*render.View, error)
	Perform(kind action.Kind, rawAmount string) error
	Continue() error
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	session Session
}

// NewMux returns a new HTTP mux
func NewMux(version string, session Session) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		session: session,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/view").Handler(this.getView())
	r.Methods(http.MethodPost).Path("/action").Handler(this.postAction())
	r.Methods(http.MethodPost).Path("/continue").Handler(this.postContinue())

	return this
}

// Handler wraps the mux with CORS and, if accessLog is not nil, access logs
func (m *Mux) Handler(accessLog io.Writer) http.Handler {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	h := c.Handler(m)
	if accessLog == nil {
		return h
	}

	return handlers.CombinedLoggingHandler(accessLog, h)
}
