package handler_test

import (
	"net/http"
	"testing"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListRooms_ReturnsCallerRooms(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)

	store.On("GetRoomsForUser", "doc-1").Return([]models.ChatRoom{
		{RoomID: "room-2", DoctorID: "doc-1", PatientID: "pat-2", DoctorUnread: 3},
		{RoomID: "room-1", DoctorID: "doc-1", PatientID: "pat-1"},
	}, nil)

	w := perform(t, func(r *gin.Engine) { r.GET("/rooms", h.ListRooms) },
		http.MethodGet, "/rooms", nil, "doc-1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "room-2")
	assert.Contains(t, w.Body.String(), `"doctor_unread":3`)
}

func TestMarkRoomRead_PublishesRoomRead(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)

	room := &models.ChatRoom{RoomID: "room-1", DoctorID: "doc-1", PatientID: "pat-1"}
	store.On("MarkRoomRead", "room-1", "doc-1").Return(room, nil)
	store.On("PublishRoomEvent", "room-1", mock.AnythingOfType("models.RoomEvent")).Return(nil)

	w := perform(t, func(r *gin.Engine) { r.POST("/rooms/:id/read", h.MarkRoomRead) },
		http.MethodPost, "/rooms/room-1/read", nil, "doc-1")

	require.Equal(t, http.StatusOK, w.Code)

	published := store.Calls[1].Arguments.Get(1).(models.RoomEvent)
	assert.Equal(t, models.EventRoomRead, published.Type)
	assert.Equal(t, "doc-1", published.ActorID)
}

func TestMarkRoomRead_OutsiderGetsForbidden(t *testing.T) {
	store := new(MockStorage)
	h := newTestHandler(store)

	store.On("MarkRoomRead", "room-1", "intruder").Return(nil, apperr.ErrNotParticipant)

	w := perform(t, func(r *gin.Engine) { r.POST("/rooms/:id/read", h.MarkRoomRead) },
		http.MethodPost, "/rooms/room-1/read", nil, "intruder")

	assert.Equal(t, http.StatusForbidden, w.Code)
	store.AssertNotCalled(t, "PublishRoomEvent", mock.Anything, mock.Anything)
}
