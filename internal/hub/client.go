package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/michaelquigley/df/dl"
)

// Client represents a connected WebSocket client.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	closed bool // guarded by hub.mu
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads commands from the WebSocket and applies them to ctrl. A
// failed command is answered with an error message to this client only.
func (c *Client) ReadPump(ctrl Controller) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd ClientMessage
		if err := json.Unmarshal(message, &cmd); err != nil {
			dl.Warnf("error parsing client message: %v", err)
			continue
		}

		if err := Dispatch(ctrl, cmd); err != nil {
			dl.Warnf("command '%s' failed: %v", cmd.Type, err)
			c.reply(NewErrorMessage(err))
		}
	}
}

func (c *Client) reply(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		dl.Errorf("error marshaling reply: %v", err)
		return
	}
	c.hub.deliver(c, data)
}
