package chathub

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	UserID string
	Alerts bool
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.RoomEvent
	Log    *zap.SugaredLogger

	// activeRoom is written from the hub loop and read from pump
	// goroutines, hence the atomic.
	activeRoom atomic.Value
}

func (c *WebSocketClient) GetUserID() string   { return c.UserID }
func (c *WebSocketClient) AlertsEnabled() bool { return c.Alerts }

func (c *WebSocketClient) ActiveRoomID() string {
	if v, ok := c.activeRoom.Load().(string); ok {
		return v
	}
	return ""
}

func (c *WebSocketClient) SetActiveRoom(roomID string) { c.activeRoom.Store(roomID) }

func (c *WebSocketClient) GetSendChannel() chan<- models.RoomEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close releases the send channel, which stops the write pump. The read
// pump stops on its own once the connection closes.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.Hub.UnregisterCh <- c:
		case <-c.Hub.Done():
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Log.Warnw("websocket read failed", "user_id", c.UserID, "error", err)
			}
			break
		}

		var frame models.ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.Log.Warnw("dropping undecodable frame", "user_id", c.UserID, "error", err)
			continue
		}
		// Never trust the wire for identity.
		frame.SenderID = c.UserID

		select {
		case c.Hub.InboundCh <- frame:
		case <-c.Hub.Done():
			return
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				c.Log.Errorw("failed to encode event", "user_id", c.UserID, "error", err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Drain whatever queued up behind this event into the same
			// writer frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				if extra, err := json.Marshal(next); err == nil {
					w.Write([]byte{'\n'})
					w.Write(extra)
				}
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
