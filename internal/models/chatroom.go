package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom is a two-party conversation between a doctor and a patient.
// It carries a denormalized last-message summary and one unread counter
// per participant so that room lists and notification badges can render
// without touching the message table.
type ChatRoom struct {
	// RoomID is the unique identifier for the chat room (UUID).
	RoomID string `gorm:"primaryKey" json:"room_id"`

	DoctorID  string `gorm:"type:text;not null;index" json:"doctor_id"`
	PatientID string `gorm:"type:text;not null;index" json:"patient_id"`

	// Display names are captured at room creation so the list view does
	// not need a join against the users table.
	DoctorName  string `gorm:"type:text" json:"doctor_name"`
	PatientName string `gorm:"type:text" json:"patient_name"`

	// Last-message summary. LastMessageAt is nil when the room holds no
	// messages.
	LastMessageBody     string     `gorm:"type:text" json:"last_message_body"`
	LastMessageSenderID string     `gorm:"type:text" json:"last_message_sender_id"`
	LastMessageAt       *time.Time `json:"last_message_at,omitempty"`

	// Unread counters, one per participant. Never negative.
	DoctorUnread  int `gorm:"default:0" json:"doctor_unread"`
	PatientUnread int `gorm:"default:0" json:"patient_unread"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt doubles as the room-list ordering key: it moves on every
	// send but not on unread resets.
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.RoomID == "" {
		r.RoomID = uuid.New().String()
	}
	return
}

// HasParticipant reports whether userID is one of the room's two parties.
func (r *ChatRoom) HasParticipant(userID string) bool {
	return userID != "" && (userID == r.DoctorID || userID == r.PatientID)
}

// PartnerOf returns the other participant's ID, or "" when userID is not
// in the room.
func (r *ChatRoom) PartnerOf(userID string) string {
	switch userID {
	case r.DoctorID:
		return r.PatientID
	case r.PatientID:
		return r.DoctorID
	}
	return ""
}

// UnreadFor returns the unread counter belonging to userID.
func (r *ChatRoom) UnreadFor(userID string) int {
	switch userID {
	case r.DoctorID:
		return r.DoctorUnread
	case r.PatientID:
		return r.PatientUnread
	}
	return 0
}

// BumpUnread increments userID's unread counter by one.
func (r *ChatRoom) BumpUnread(userID string) {
	switch userID {
	case r.DoctorID:
		r.DoctorUnread++
	case r.PatientID:
		r.PatientUnread++
	}
}

// ClearUnread zeroes userID's unread counter.
func (r *ChatRoom) ClearUnread(userID string) {
	switch userID {
	case r.DoctorID:
		r.DoctorUnread = 0
	case r.PatientID:
		r.PatientUnread = 0
	}
}
