package hub

import (
	"time"

	"github.com/soar/sohconfig/internal/session"
)

// Message types sent from server to client.
const (
	TypeState  = "state"
	TypeNotice = "notice"
	TypeError  = "error"
)

// Message is a WebSocket message sent from server to client.
type Message struct {
	Type      string          `json:"type"`
	Seq       int64           `json:"seq"`
	Timestamp int64           `json:"timestamp"` // unix millis
	State     *session.State  `json:"state,omitempty"`
	Notice    *session.Notice `json:"notice,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// NewStateMessage creates a "state" message carrying a full session snapshot.
func NewStateMessage(seq int64, state *session.State) *Message {
	return &Message{
		Type:      TypeState,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		State:     state,
	}
}

func NewNoticeMessage(seq int64, n *session.Notice) *Message {
	return &Message{
		Type:      TypeNotice,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Notice:    n,
	}
}

// NewErrorMessage reports a failed command to the client that sent it.
func NewErrorMessage(err error) *Message {
	return &Message{
		Type:      TypeError,
		Timestamp: time.Now().UnixMilli(),
		Error:     err.Error(),
	}
}

// Client command types.
const (
	CmdSelectDevice  = "select_device"
	CmdCapture       = "capture"
	CmdCancelCapture = "cancel_capture"
	CmdSetThreshold  = "set_threshold"
	CmdSet           = "set"
	CmdReset         = "reset"
	CmdSave          = "save"
	CmdSetBackend    = "set_backend"
)

// ClientMessage is a command sent from the client to the server.
type ClientMessage struct {
	Type    string  `json:"type"`
	Handle  int     `json:"handle,omitempty"`
	Button  string  `json:"button,omitempty"`
	Key     string  `json:"key,omitempty"`
	Value   float64 `json:"value,omitempty"`
	Raw     string  `json:"raw,omitempty"`
	Backend string  `json:"backend,omitempty"`
}
