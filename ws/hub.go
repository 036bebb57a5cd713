package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

var (
	ErrUserOffline    = errors.New("user is not connected")
	ErrSendBufferFull = errors.New("send buffer full")
	ErrConnClosed     = errors.New("connection closed")
)

// Conn is a live, addressable connection of one user.
//
// Send must not block and must not call back into the Hub.
type Conn interface {
	UserID() string
	Send(data []byte) error
	Close()
}

// Notifier delivers an event to one user if that user is online.
type Notifier interface {
	SendToUser(userID string, event Event) error
}

// Hub is the presence registry. It holds at most one Conn per user: a
// reconnect replaces (and closes) the previous connection.
//
// Locking:
//
// A single RWMutex guards conns. Register, Unregister and Shutdown take the
// write lock; Lookup, Snapshot and SendToUser only read. The Hub owns no
// goroutine of its own: every caller (a client's read pump, a delivery
// goroutine, shutdown) does its work inline under the lock, which is safe
// because Conn.Send never blocks and never calls back into the Hub.
//
// Broadcast:
//
// Every Register and Unregister sends the full sorted list of online users
// to every registered connection, the new one included. The list is encoded
// and queued while the write lock is still held, so two concurrent
// connects cannot deliver their snapshots in the opposite order: whatever
// a client received last matches the registry. A full list instead of a
// join/leave delta means a client that missed a frame (full buffer) is
// corrected by the next one.
//
// Identity:
//
// Unregister compares the stored Conn with the one leaving. After a
// reconnect the old socket's read pump still exits and unregisters; the
// comparison keeps it from removing the new connection.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]Conn
	closed bool

	seq atomic.Int64
	log *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		conns: make(map[string]Conn),
		log:   log.With("component", "hub"),
	}
}

// Register makes conn the connection of conn.UserID(). A previous connection
// for the same user is closed. After Shutdown, conn is closed immediately.
func (h *Hub) Register(conn Conn) {
	userID := conn.UserID()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		conn.Close()
		return
	}

	if prev, ok := h.conns[userID]; ok && prev != conn {
		prev.Close()
		h.log.Debug("connection replaced", "user_id", userID)
	}
	h.conns[userID] = conn
	h.log.Info("user connected", "user_id", userID, "online", len(h.conns))

	h.broadcastOnlineLocked()
}

// Unregister removes conn if it is still the registered connection of its
// user. A stale connection closing after a reconnect leaves the newer entry
// in place. The online list is broadcast either way.
func (h *Hub) Unregister(conn Conn) {
	userID := conn.UserID()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	if current, ok := h.conns[userID]; ok && current == conn {
		delete(h.conns, userID)
		h.log.Info("user disconnected", "user_id", userID, "online", len(h.conns))
	}

	h.broadcastOnlineLocked()
}

// Lookup returns the live connection of userID.
func (h *Hub) Lookup(userID string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.conns[userID]
	return conn, ok
}

// Snapshot returns the ids of all online users in ascending order.
func (h *Hub) Snapshot() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.snapshotLocked()
}

// SendToUser pushes event to userID's connection. It fails with
// ErrUserOffline when the user has no connection, or with the connection's
// own error (ErrSendBufferFull, ErrConnClosed).
func (h *Hub) SendToUser(userID string, event Event) error {
	conn, ok := h.Lookup(userID)
	if !ok {
		return ErrUserOffline
	}

	data, err := h.encode(event)
	if err != nil {
		return err
	}
	return conn.Send(data)
}

// Shutdown closes every connection and refuses new registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for _, conn := range h.conns {
		conn.Close()
	}
	h.conns = make(map[string]Conn)
	h.log.Info("hub shut down, all connections closed")
}

func (h *Hub) snapshotLocked() []string {
	ids := make([]string, 0, len(h.conns))
	for userID := range h.conns {
		ids = append(ids, userID)
	}
	sort.Strings(ids)
	return ids
}

func (h *Hub) broadcastOnlineLocked() {
	data, err := h.encode(Event{Op: OpOnlineUsers, Data: h.snapshotLocked()})
	if err != nil {
		h.log.Error("failed to encode online users", "error", err)
		return
	}

	for userID, conn := range h.conns {
		if err := conn.Send(data); err != nil {
			// The next broadcast carries the full list again.
			h.log.Debug("online users not delivered", "user_id", userID, "error", err)
		}
	}
}

func (h *Hub) encode(event Event) ([]byte, error) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.Op, err)
	}
	return data, nil
}
