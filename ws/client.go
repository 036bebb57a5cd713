package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	// A client must send something (a heartbeat, or a pong to our ping)
	// within pongWait or the connection is dropped.
	pongWait   = 90 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	sendBufferSize = 256
)

// Client is one user's WebSocket connection. It implements Conn.
//
// ReadPump and WritePump each run on their own goroutine; only WritePump
// writes to the socket.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	log    *slog.Logger

	mu     sync.Mutex // guards send against a concurrent Close
	send   chan []byte
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, userID string, log *slog.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		log:    log.With("user_id", userID),
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) UserID() string {
	return c.userID
}

// Send queues data for the write pump without blocking.
func (c *Client) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close stops the write pump, which then closes the socket. Safe to call
// more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump reads frames until the connection fails, then unregisters the
// client. It blocks for the lifetime of the connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.extendReadDeadline(); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error { return c.extendReadDeadline() })

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("unexpected close", "error", err)
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			c.log.Debug("invalid frame", "error", err)
			continue
		}

		c.handleEvent(event)
	}
}

func (c *Client) handleEvent(event Event) {
	switch event.Op {
	case OpHeartbeat:
		if err := c.extendReadDeadline(); err != nil {
			return
		}
		c.sendEvent(Event{Op: OpHeartbeatAck})

	default:
		c.log.Debug("unknown op", "op", event.Op)
	}
}

func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		c.log.Error("failed to marshal event", "op", event.Op, "error", err)
		return
	}
	if err := c.Send(data); err != nil {
		c.log.Debug("event dropped", "op", event.Op, "error", err)
	}
}

func (c *Client) extendReadDeadline() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Warn("failed to set read deadline", "error", err)
		return err
	}
	return nil
}

// WritePump drains the send buffer onto the socket and pings the peer.
// It returns, closing the socket, once Close is called or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				_ = c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
