package handler

import (
	"net/http"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/chathub"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/config"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict to the portal's origin once the frontend domain is
	// settled.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and hands it to the hub. Runs
// behind RequireAuth, so the identity comes from the request context.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)

	user, err := h.Store.GetUserByID(userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warnw("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := &chathub.WebSocketClient{
		UserID: userID,
		Alerts: user.ChatAlerts,
		Conn:   conn,
		Hub:    h.Hub,
		Send:   make(chan models.RoomEvent, config.SendBufferSize),
		Log:    h.Log,
	}

	select {
	case h.Hub.RegisterCh <- client:
	case <-h.Hub.Done():
		conn.Close()
		return
	}
	client.Run()
}
