package hub

import (
	"encoding/json"
	"strings"
	"sync"

	"lockchat/pkg/logger"
)

// Events owned by the hub's own subscription lifecycle.
const (
	EventConnected = "connected"
	EventError     = "error"
)

// Conn is a live subscriber connection. Send must be safe for
// concurrent use and must fail (not block forever) once the underlying
// transport is closed.
type Conn interface {
	Send(data []byte) error
}

// Envelope is the wire format for every hub event.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub tracks live subscriber connections per channel id and fans
// events out to exactly the current subscribers of a channel. Nothing
// is persisted or replayed: a connection that subscribes after a
// broadcast never sees it.
//
// One Hub is constructed at startup and handed to whoever needs to
// broadcast; there is no package-level instance.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Conn]struct{}
	logger   logger.Logger
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[Conn]struct{}),
		logger:   logger,
	}
}

// Subscribe registers conn under channelID. A blank id is rejected.
// The caller owns the connection lifecycle and must call Unsubscribe
// when the transport closes or errors.
func (h *Hub) Subscribe(channelID string, conn Conn) bool {
	key := strings.TrimSpace(channelID)
	if key == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[key]
	if !ok {
		set = make(map[Conn]struct{})
		h.channels[key] = set
	}
	set[conn] = struct{}{}
	return true
}

// Unsubscribe removes conn from channelID. The channel entry itself is
// dropped once its subscriber set is empty, so dead channels do not
// accumulate.
func (h *Hub) Unsubscribe(channelID string, conn Conn) {
	key := strings.TrimSpace(channelID)
	if key == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[key]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.channels, key)
	}
}

// Broadcast serializes {event, payload} once and sends it to every
// current subscriber of channelID. An unknown or empty channel is a
// silent no-op. A failed send to one connection never aborts delivery
// to the rest; the failing connection's own close handling will
// unsubscribe it.
func (h *Hub) Broadcast(channelID, event string, payload any) {
	key := strings.TrimSpace(channelID)

	h.mu.RLock()
	set, ok := h.channels[key]
	if !ok || len(set) == 0 {
		h.mu.RUnlock()
		return
	}
	// Snapshot so sends happen outside the lock and concurrent
	// unsubscribes cannot disturb the iteration.
	conns := make([]Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		h.logger.Error("failed to serialize broadcast", "channel", key, "event", event, "err", err)
		return
	}

	for _, c := range conns {
		if err := c.Send(data); err != nil {
			h.logger.Debug("dropped broadcast to subscriber", "channel", key, "event", event, "err", err)
		}
	}
}

// Subscribers reports the current subscriber count for a channel.
func (h *Hub) Subscribers(channelID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[strings.TrimSpace(channelID)])
}
