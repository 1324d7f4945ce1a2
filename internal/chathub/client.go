package chathub

import "github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"

// Client is one live connection managed by the Hub. It abstracts the
// transport so the hub and the notifier can be tested without sockets.
type Client interface {
	// GetUserID returns the authenticated account behind the connection.
	GetUserID() string

	// ActiveRoomID returns the room the user is currently viewing, or ""
	// when no thread is open. The notifier suppresses alerts for the
	// active room.
	ActiveRoomID() string
	// SetActiveRoom records which thread the user has open.
	SetActiveRoom(roomID string)

	// AlertsEnabled reflects the account's chat-alerts preference at
	// connect time.
	AlertsEnabled() bool

	// GetSendChannel returns the channel the hub pushes outbound events
	// into.
	GetSendChannel() chan<- models.RoomEvent

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts the connection down and releases its send channel.
	Close()
}
