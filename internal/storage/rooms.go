package storage

import (
	"errors"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"gorm.io/gorm"
)

// SaveRoom creates or updates a chat room.
func (s *Service) SaveRoom(room *models.ChatRoom) error {
	return s.DB.Save(room).Error
}

func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.First(&room, "room_id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoomsForUser returns every room the user participates in, ordered by
// last activity (updated_at DESC), which is the room-list ordering the
// clients render.
func (s *Service) GetRoomsForUser(userID string) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.DB.Where("doctor_id = ? OR patient_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// MarkRoomRead zeroes the viewer's unread counter. It deliberately skips
// GORM's UpdatedAt bookkeeping: reading a room must not reorder the room
// list.
func (s *Service) MarkRoomRead(roomID, userID string) (*models.ChatRoom, error) {
	room, err := s.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(userID) {
		return nil, apperr.ErrNotParticipant
	}

	column := "doctor_unread"
	if userID == room.PatientID {
		column = "patient_unread"
	}
	err = s.DB.Model(&models.ChatRoom{}).
		Where("room_id = ?", roomID).
		UpdateColumn(column, 0).Error
	if err != nil {
		return nil, err
	}

	room.ClearUnread(userID)
	return room, nil
}
