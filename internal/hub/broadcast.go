package hub

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/michaelquigley/df/dl"
	"github.com/soar/sohconfig/internal/session"
)

const fullSyncInterval = 5 * time.Second

// StateSource provides session snapshots.
type StateSource interface {
	State() session.State
}

// Broadcaster forwards session notices to the hub, each followed by a fresh
// snapshot, and periodically resends the full state.
type Broadcaster struct {
	hub     *Hub
	source  StateSource
	notices chan session.Notice
	seq     atomic.Int64
}

func NewBroadcaster(h *Hub, source StateSource) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		source:  source,
		notices: make(chan session.Notice, 64),
	}
}

// SetSource sets the snapshot source when it is created after the
// broadcaster, as the session is when the broadcaster is its observer.
func (b *Broadcaster) SetSource(source StateSource) {
	b.source = source
}

// Notify is a session.Observer. Notices are dropped when the queue is full;
// the next periodic sync carries the state anyway.
func (b *Broadcaster) Notify(n session.Notice) {
	select {
	case b.notices <- n:
	default:
		dl.Warnf("notice queue full, dropping '%s'", n.Type)
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case n := <-b.notices:
			b.send(NewNoticeMessage(b.seq.Add(1), &n))
			b.sendState()

		case <-ticker.C:
			b.sendState()
		}
	}
}

// SendInitialState sends the current full state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	state := b.source.State()
	data, err := json.Marshal(NewStateMessage(b.seq.Load(), &state))
	if err != nil {
		dl.Errorf("error marshaling initial state: %v", err)
		return
	}
	b.hub.deliver(c, data)
}

func (b *Broadcaster) sendState() {
	state := b.source.State()
	b.send(NewStateMessage(b.seq.Add(1), &state))
}

func (b *Broadcaster) send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		dl.Errorf("error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
