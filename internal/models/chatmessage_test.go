package models_test

import (
	"testing"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestChatMessageCanBeDeletedBy(t *testing.T) {
	sentAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	msg := &models.ChatMessage{
		Model:    gorm.Model{ID: 7, CreatedAt: sentAt},
		RoomID:   "room-1",
		SenderID: "doc-1",
		Body:     "take the evening dose with food",
	}

	tests := []struct {
		name   string
		userID string
		at     time.Time
		want   bool
	}{
		{"sender right away", "doc-1", sentAt, true},
		{"sender just inside the window", "doc-1", sentAt.Add(models.MessageDeleteWindow), true},
		{"sender just past the window", "doc-1", sentAt.Add(models.MessageDeleteWindow + time.Second), false},
		{"recipient inside the window", "pat-1", sentAt.Add(time.Minute), false},
		{"empty user", "", sentAt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, msg.CanBeDeletedBy(tt.userID, tt.at))
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, models.ValidRole(models.RoleDoctor))
	assert.True(t, models.ValidRole(models.RolePatient))
	assert.False(t, models.ValidRole("admin"))
	assert.False(t, models.ValidRole(""))
}
