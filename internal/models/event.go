package models

// Event types carried over Redis pub/sub and the WebSocket connection.
const (
	EventMessage        = "message"
	EventMessageDeleted = "message_deleted"
	EventRoomRead       = "room_read"
	EventTyping         = "typing"
	EventNotification   = "notification"
	EventError          = "error"
)

// Frame types a WebSocket client may send.
const (
	FrameMessage   = "message"
	FrameTyping    = "typing"
	FrameOpenRoom  = "open_room"
	FrameCloseRoom = "close_room"
)

// RoomEvent is the envelope fanned out to room participants. Room carries
// the post-operation room snapshot so list views and badges reconcile
// without a follow-up fetch.
type RoomEvent struct {
	Type    string       `json:"type"`
	RoomID  string       `json:"room_id"`
	ActorID string       `json:"actor_id,omitempty"`
	Message *ChatMessage `json:"message,omitempty"`
	Room    *ChatRoom    `json:"room,omitempty"`
	// MessageID identifies the removed message on message_deleted events.
	MessageID uint   `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ClientFrame is an inbound WebSocket frame. SenderID is never trusted
// from the wire: the read pump overwrites it with the authenticated user.
type ClientFrame struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	Body     string `json:"body,omitempty"`
	SenderID string `json:"-"`
}
