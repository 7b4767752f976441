// Package server exposes the editing session over HTTP and WebSocket.
package server

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/michaelquigley/df/dl"
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/hub"
)

// Editor is the session as seen by the HTTP API.
type Editor interface {
	hub.Controller
	Binding(handle int) (*binding.Record, error)
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	editor      Editor
	addr        string
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, ed Editor, addr string) *Server {
	s := &Server{
		hub:         h,
		broadcaster: b,
		editor:      ed,
		addr:        addr,
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.editor))
	r.HandleFunc("/api/state", handleState(s.editor)).Methods("GET")
	r.HandleFunc("/api/devices/{handle}/binding", handleBinding(s.editor)).Methods("GET")
	r.HandleFunc("/api/commands", handleCommand(s.editor)).Methods("POST")
	return r
}

func (s *Server) ListenAndServe() error {
	dl.Infof("HTTP server listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	dl.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
