package chathub

import "github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"

// Notifier derives unread-badge alerts from the room-event stream the
// hub already consumes. It remembers the last unread count it saw per
// connected user and room; when an event raises the count for a user who
// is connected, has chat alerts enabled, and is not viewing that room,
// it emits a notification event to them.
type Notifier struct {
	// lastUnread[userID][roomID] = unread count at last observation.
	lastUnread map[string]map[string]int
	emit       func(client Client, ev models.RoomEvent)
}

func NewNotifier(emit func(client Client, ev models.RoomEvent)) *Notifier {
	return &Notifier{
		lastUnread: make(map[string]map[string]int),
		emit:       emit,
	}
}

// Observe inspects one room event against the connected clients. Called
// from the hub loop only.
func (n *Notifier) Observe(clients map[string]Client, ev models.RoomEvent) {
	if ev.Room == nil {
		return
	}
	for _, userID := range []string{ev.Room.DoctorID, ev.Room.PatientID} {
		client, connected := clients[userID]
		if !connected {
			continue
		}

		count := ev.Room.UnreadFor(userID)
		prev := n.remember(userID, ev.RoomID, count)

		if count <= prev {
			continue
		}
		if client.ActiveRoomID() == ev.RoomID {
			continue
		}
		if !client.AlertsEnabled() {
			continue
		}
		n.emit(client, models.RoomEvent{
			Type:    models.EventNotification,
			RoomID:  ev.RoomID,
			ActorID: ev.ActorID,
			Room:    ev.Room,
			Message: ev.Message,
		})
	}
}

// remember stores the new count and returns the previous one.
func (n *Notifier) remember(userID, roomID string, count int) int {
	rooms, ok := n.lastUnread[userID]
	if !ok {
		rooms = make(map[string]int)
		n.lastUnread[userID] = rooms
	}
	prev := rooms[roomID]
	rooms[roomID] = count
	return prev
}

// Reset clears the remembered count after the user opened the room.
func (n *Notifier) Reset(userID, roomID string) {
	if rooms, ok := n.lastUnread[userID]; ok {
		delete(rooms, roomID)
	}
}

// Forget drops all state for a disconnected user.
func (n *Notifier) Forget(userID string) {
	delete(n.lastUnread, userID)
}
