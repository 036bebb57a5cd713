// Package ws keeps track of who is online and pushes events to them over
// WebSocket.
//
//   - Hub: the presence registry, one live connection per user
//   - Client: a gorilla/websocket connection with its read and write pumps
//   - Event: the JSON frame exchanged in both directions
//
// The HTTP layer never writes to sockets directly; services hand events to
// the Hub, which routes them to the right Client's outbound buffer.
package ws

// Event is one frame on the wire.
//
// Seq increases by one for every outbound event so clients can spot gaps.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client -> server
const (
	OpHeartbeat = "heartbeat"
)

// Server -> client
const (
	OpHeartbeatAck = "heartbeat_ack"
	OpOnlineUsers  = "online_users" // d: sorted []string of online user ids
	OpNewMessage   = "new_message"  // d: models.MessageView
)
