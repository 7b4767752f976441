package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/hub"
	"github.com/soar/sohconfig/internal/session"
)

// The default CheckOrigin rejects a browser Origin whose host differs from
// the request's Host.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, ed Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			dl.Errorf("websocket upgrade failed: %v", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPump(ed)
	}
}

func handleState(ed Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ed.State())
	}
}

func handleBinding(ed Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle, err := strconv.Atoi(mux.Vars(r)["handle"])
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid device handle"))
			return
		}
		rec, err := ed.Binding(handle)
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, session.NewBindingView(rec))
	}
}

// handleCommand accepts the same commands as the WebSocket endpoint.
func handleCommand(ed Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !sameOrigin(r) {
			writeError(w, http.StatusForbidden, errors.New("cross-origin request"))
			return
		}
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, errors.New("content type must be application/json"))
			return
		}
		var cmd hub.ClientMessage
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid body"))
			return
		}
		if err := hub.Dispatch(ed, cmd); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeJSON(w, http.StatusOK, ed.State())
	}
}

// sameOrigin reports whether a request carries no Origin header or one whose
// host matches the request's Host.
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		dl.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
