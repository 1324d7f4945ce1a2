package chathub

import (
	"context"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/storage"
	"go.uber.org/zap"
)

// Hub owns every live WebSocket connection on this instance and fans
// room events out to their participants. All client-map mutation happens
// on the Run goroutine; the channels are the only way in.
type Hub struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	InboundCh    chan models.ClientFrame

	Store    storage.Storage
	Log      *zap.SugaredLogger
	notifier *Notifier

	// done is closed when Run exits so pump goroutines never block on
	// the hub channels after shutdown.
	done chan struct{}
}

func NewHub(store storage.Storage, log *zap.SugaredLogger) *Hub {
	h := &Hub{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		InboundCh:    make(chan models.ClientFrame),
		Store:        store,
		Log:          log,
		done:         make(chan struct{}),
	}
	h.notifier = NewNotifier(h.deliver)
	return h
}

// Done is closed once the hub loop has exited.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Run is the hub's main loop. It subscribes to the shared room-event
// stream and processes registrations, inbound frames, and fan-out until
// ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	events, err := h.Store.SubscribeRoomEvents(ctx)
	if err != nil {
		h.Log.Errorw("room event subscription failed", "error", err)
		return
	}
	h.Log.Info("chat hub started")

	for {
		select {
		case <-ctx.Done():
			for _, client := range h.Clients {
				client.Close()
			}
			return

		case client := <-h.RegisterCh:
			h.register(client)

		case client := <-h.UnregisterCh:
			h.unregister(client)

		case frame := <-h.InboundCh:
			h.handleFrame(frame)

		case ev, ok := <-events:
			if !ok {
				h.Log.Error("room event stream closed")
				return
			}
			h.handleEvent(ev)
		}
	}
}

func (h *Hub) register(client Client) {
	userID := client.GetUserID()
	// A newer connection replaces any previous one for the same account.
	if old, ok := h.Clients[userID]; ok {
		old.Close()
	}
	h.Clients[userID] = client
	if err := h.Store.SetOnline(userID); err != nil {
		h.Log.Warnw("failed to record presence", "user_id", userID, "error", err)
	}
	h.Log.Infow("client connected", "user_id", userID)
}

func (h *Hub) unregister(client Client) {
	userID := client.GetUserID()
	// Only drop the map entry if this exact connection still owns it.
	if current, ok := h.Clients[userID]; ok && current == client {
		delete(h.Clients, userID)
		client.Close()
		h.notifier.Forget(userID)
		if err := h.Store.SetOffline(userID); err != nil {
			h.Log.Warnw("failed to clear presence", "user_id", userID, "error", err)
		}
		h.Log.Infow("client disconnected", "user_id", userID)
	}
}

// handleFrame processes one inbound client frame.
func (h *Hub) handleFrame(frame models.ClientFrame) {
	switch frame.Type {
	case models.FrameMessage:
		h.handleSend(frame)

	case models.FrameTyping:
		room, err := h.Store.GetRoomByID(frame.RoomID)
		if err != nil || !room.HasParticipant(frame.SenderID) {
			return
		}
		ev := models.RoomEvent{
			Type:    models.EventTyping,
			RoomID:  frame.RoomID,
			ActorID: frame.SenderID,
			Room:    room,
		}
		if err := h.Store.PublishRoomEvent(frame.RoomID, ev); err != nil {
			h.Log.Warnw("failed to publish typing event", "room_id", frame.RoomID, "error", err)
		}

	case models.FrameOpenRoom:
		h.handleOpenRoom(frame)

	case models.FrameCloseRoom:
		if client, ok := h.Clients[frame.SenderID]; ok {
			client.SetActiveRoom("")
		}

	default:
		h.Log.Warnw("unknown frame type", "type", frame.Type, "user_id", frame.SenderID)
	}
}

func (h *Hub) handleSend(frame models.ClientFrame) {
	if frame.Body == "" {
		return
	}
	msg := &models.ChatMessage{
		RoomID:   frame.RoomID,
		SenderID: frame.SenderID,
		Body:     frame.Body,
	}
	room, err := h.Store.SendMessage(msg)
	if err != nil {
		h.Log.Errorw("failed to persist message",
			"room_id", frame.RoomID, "sender_id", frame.SenderID, "error", err)
		h.sendError(frame.SenderID, frame.RoomID, "message could not be sent")
		return
	}

	ev := models.RoomEvent{
		Type:    models.EventMessage,
		RoomID:  room.RoomID,
		ActorID: msg.SenderID,
		Message: msg,
		Room:    room,
	}
	if err := h.Store.PublishRoomEvent(room.RoomID, ev); err != nil {
		h.Log.Errorw("failed to publish message event", "room_id", room.RoomID, "error", err)
	}
}

// handleOpenRoom marks the thread as read and records it as the client's
// active room so the notifier stays quiet about it.
func (h *Hub) handleOpenRoom(frame models.ClientFrame) {
	room, err := h.Store.MarkRoomRead(frame.RoomID, frame.SenderID)
	if err != nil {
		h.Log.Warnw("failed to mark room read",
			"room_id", frame.RoomID, "user_id", frame.SenderID, "error", err)
		return
	}
	if client, ok := h.Clients[frame.SenderID]; ok {
		client.SetActiveRoom(frame.RoomID)
	}
	h.notifier.Reset(frame.SenderID, frame.RoomID)

	ev := models.RoomEvent{
		Type:    models.EventRoomRead,
		RoomID:  frame.RoomID,
		ActorID: frame.SenderID,
		Room:    room,
	}
	if err := h.Store.PublishRoomEvent(frame.RoomID, ev); err != nil {
		h.Log.Warnw("failed to publish room_read event", "room_id", frame.RoomID, "error", err)
	}
}

// handleEvent fans one pub/sub event out to the room's two participants
// and lets the notifier derive badge alerts from the same stream.
func (h *Hub) handleEvent(ev models.RoomEvent) {
	if ev.Room == nil {
		h.Log.Warnw("room event without room snapshot", "type", ev.Type, "room_id", ev.RoomID)
		return
	}
	for _, userID := range []string{ev.Room.DoctorID, ev.Room.PatientID} {
		if client, ok := h.Clients[userID]; ok {
			h.deliver(client, ev)
		}
	}
	h.notifier.Observe(h.Clients, ev)
}

// deliver pushes ev to the client without blocking the hub loop. A
// client that cannot keep up is dropped.
func (h *Hub) deliver(client Client, ev models.RoomEvent) {
	select {
	case client.GetSendChannel() <- ev:
	default:
		h.Log.Warnw("client send buffer full, dropping connection", "user_id", client.GetUserID())
		h.unregister(client)
	}
}

func (h *Hub) sendError(userID, roomID, msg string) {
	client, ok := h.Clients[userID]
	if !ok {
		return
	}
	h.deliver(client, models.RoomEvent{
		Type:   models.EventError,
		RoomID: roomID,
		Error:  msg,
	})
}
