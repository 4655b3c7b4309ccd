// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1024

	// Send buffer size
	sendBufferSize = 64
)

// joinRequest is the one inbound frame clients may send: joining another
// poll's room on an already-open connection.
type joinRequest struct {
	Type   string `json:"type"`
	PollID string `json:"poll_id"`
}

// Client is one live websocket connection. Outbound tally updates flow
// through the buffered send channel and a single writer goroutine, which
// preserves publish order per connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Start subscribes the client to its initial poll and begins the read and
// write pumps. It returns immediately; the pumps own the connection from
// here and tear everything down on disconnect.
func (c *Client) Start(pollID string) {
	c.hub.Subscribe(pollID, c)

	go c.writePump()
	go c.readPump()
}

// trySend queues a payload without blocking. Returns false when the buffer
// is full or the client is already shut down.
func (c *Client) trySend(payload []byte) (ok bool) {
	defer func() {
		// Send on a closed channel means the client lost a race with
		// shutdown; report failure instead of panicking.
		if recover() != nil {
			ok = false
		}
	}()

	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// shutdown closes the send channel exactly once, which stops the write pump
// and closes the connection.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump consumes inbound frames until the connection drops, handling
// join requests and keeping the read deadline fresh on pongs. Its exit is
// what unsubscribes the client from every room.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err, "connection_id", c.id)
			}
			return
		}

		var req joinRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			continue
		}
		if req.Type == "join" && req.PollID != "" {
			c.hub.Subscribe(req.PollID, c)
		}
	}
}

// writePump drains the send channel to the connection and pings the peer on
// a timer.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
