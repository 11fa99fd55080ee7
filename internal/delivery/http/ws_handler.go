package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lockchat/internal/hub"
	"lockchat/pkg/logger"
)

type WSHandler struct {
	hub      *hub.Hub
	upgrader websocket.Upgrader
	logger   logger.Logger
}

func NewWSHandler(h *hub.Hub, logger logger.Logger) *WSHandler {
	return &WSHandler{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session cookie authenticates the request; origin
			// enforcement lives in the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// wsConn adapts a gorilla connection to hub.Conn. Writes are
// serialized and refused once the transport is closed.
type wsConn struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func (c *wsConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.closed = true
		return err
	}
	return nil
}

func (c *wsConn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		_ = c.conn.Close()
	}
}

func (c *wsConn) sendEvent(event string, payload any) {
	data, err := json.Marshal(hub.Envelope{Event: event, Payload: payload})
	if err != nil {
		return
	}
	_ = c.Send(data)
}

// Subscribe upgrades the request and registers the connection under
// ?channelId=. The read pump exists only to detect close/error: any
// transport failure deterministically unsubscribes the connection, so
// the hub never holds a stale entry.
func (h *WSHandler) Subscribe(c *gin.Context) {
	raw, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	conn := &wsConn{conn: raw}

	channelID := strings.TrimSpace(c.Query("channelId"))
	if !h.hub.Subscribe(channelID, conn) {
		conn.sendEvent(hub.EventError, gin.H{"message": "Missing channelId"})
		conn.close()
		return
	}

	conn.sendEvent(hub.EventConnected, gin.H{"channelId": channelID})

	go func() {
		defer func() {
			h.hub.Unsubscribe(channelID, conn)
			conn.close()
		}()
		for {
			// Inbound frames are discarded; the socket is
			// broadcast-only.
			if _, _, err := raw.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
