package models

import (
	"time"

	"gorm.io/gorm"
)

// MessageDeleteWindow is how long after sending a message its author may
// still delete it.
const MessageDeleteWindow = 5 * time.Minute

// ChatMessage is a single message inside a chat room. The embedded
// gorm.Model provides the auto-increment ID and the server-assigned
// CreatedAt, which together define the thread ordering (CreatedAt
// ascending, ID as tiebreaker).
type ChatMessage struct {
	gorm.Model

	RoomID   string `gorm:"type:text;not null;index:idx_room_msg" json:"room_id"`
	SenderID string `gorm:"type:text;not null;index:idx_room_msg" json:"sender_id"`
	Body     string `gorm:"type:text;not null" json:"body"`
}

// CanBeDeletedBy reports whether userID may delete the message at the
// given instant: only the sender, and only within MessageDeleteWindow of
// the send.
func (m *ChatMessage) CanBeDeletedBy(userID string, now time.Time) bool {
	if userID == "" || userID != m.SenderID {
		return false
	}
	return now.Sub(m.CreatedAt) <= MessageDeleteWindow
}
