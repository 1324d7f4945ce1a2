package handler

import (
	"net/http"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// ListRooms returns the caller's chat rooms ordered by last activity,
// each carrying its unread counter and last-message summary.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Store.GetRoomsForUser(c.GetString(middleware.CtxUserID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// MarkRoomRead zeroes the caller's unread counter for the room and lets
// other sessions know through a room_read event.
func (h *Handler) MarkRoomRead(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	room, err := h.Store.MarkRoomRead(c.Param("id"), userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	ev := models.RoomEvent{
		Type:    models.EventRoomRead,
		RoomID:  room.RoomID,
		ActorID: userID,
		Room:    room,
	}
	if err := h.Store.PublishRoomEvent(room.RoomID, ev); err != nil {
		h.Log.Warnw("failed to publish room_read event", "room_id", room.RoomID, "error", err)
	}

	c.JSON(http.StatusOK, room)
}
