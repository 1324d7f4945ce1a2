package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/config"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
)

// GetMessages returns the newest page of the room's thread before the
// cursor, oldest first within the page. Query params: before (RFC3339
// cursor, default now) and limit.
func (h *Handler) GetMessages(c *gin.Context) {
	roomID := c.Param("id")
	userID := c.GetString(middleware.CtxUserID)

	room, err := h.Store.GetRoomByID(roomID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !room.HasParticipant(userID) {
		h.fail(c, apperr.ErrNotParticipant)
		return
	}

	before := time.Now()
	if s := c.Query("before"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "before must be RFC3339"})
			return
		}
		before = t
	}

	limit := config.DefaultMessagePageSize
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= config.MaxMessagePageSize {
			limit = n
		}
	}

	messages, err := h.Store.GetMessages(roomID, before, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// SendMessage is the REST send path. It runs the same transactional
// write and publish as the WebSocket path, so both participants' open
// connections converge on the result.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
		return
	}

	msg := &models.ChatMessage{
		RoomID:   c.Param("id"),
		SenderID: c.GetString(middleware.CtxUserID),
		Body:     req.Body,
	}
	room, err := h.Store.SendMessage(msg)
	if err != nil {
		h.fail(c, err)
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

	c.JSON(http.StatusCreated, msg)
}

// DeleteMessage removes one of the caller's own recent messages and
// repairs the room summary.
func (h *Handler) DeleteMessage(c *gin.Context) {
	msgID, err := strconv.ParseUint(c.Param("msgID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	roomID := c.Param("id")
	userID := c.GetString(middleware.CtxUserID)

	room, err := h.Store.DeleteMessage(roomID, uint(msgID), userID, time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}

	ev := models.RoomEvent{
		Type:      models.EventMessageDeleted,
		RoomID:    roomID,
		ActorID:   userID,
		MessageID: uint(msgID),
		Room:      room,
	}
	if err := h.Store.PublishRoomEvent(roomID, ev); err != nil {
		h.Log.Warnw("failed to publish message_deleted event", "room_id", roomID, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "room": room})
}
