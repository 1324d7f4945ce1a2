package storage

import (
	"errors"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"gorm.io/gorm"
)

// GetMessages returns one page of the room's thread: the newest limit
// messages created strictly before the cursor. Paging walks backwards
// from the present, so the first call (before=now) yields the tail of
// the conversation and each older page uses the previous page's first
// timestamp as the cursor. The page itself comes back oldest first, the
// order clients render in.
func (s *Service) GetMessages(roomID string, before time.Time, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.DB.Where("room_id = ? AND created_at < ?", roomID, before).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// SendMessage persists msg and maintains the room's denormalized state in
// one transaction: the last-message summary, the activity timestamp, and
// the recipient's unread counter (+1). Either all of it commits or none
// of it does.
func (s *Service) SendMessage(msg *models.ChatMessage) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "room_id = ?", msg.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if !room.HasParticipant(msg.SenderID) {
			return apperr.ErrNotParticipant
		}

		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		counter := "doctor_unread"
		if room.PartnerOf(msg.SenderID) == room.PatientID {
			counter = "patient_unread"
		}
		// The increment is an SQL expression against the row's current
		// value, not this transaction's snapshot: a concurrent send in
		// the same room cannot overwrite it. Updates (not UpdateColumns)
		// so updated_at moves and the room surfaces in the list.
		err := tx.Model(&models.ChatRoom{}).
			Where("room_id = ?", room.RoomID).
			Updates(map[string]any{
				"last_message_body":      msg.Body,
				"last_message_sender_id": msg.SenderID,
				"last_message_at":        msg.CreatedAt,
				counter:                  gorm.Expr(counter + " + 1"),
			}).Error
		if err != nil {
			return err
		}
		return tx.First(&room, "room_id = ?", room.RoomID).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// DeleteMessage removes a message and repairs the room summary. Only the
// sender may delete, and only within models.MessageDeleteWindow of the
// send. When the deleted message was the room's latest, the summary is
// rewritten from the newest remaining message, or cleared when the room
// is now empty. The read-repair runs inside the same transaction as the
// delete, so a message arriving concurrently cannot leave a stale
// summary behind.
func (s *Service) DeleteMessage(roomID string, msgID uint, requesterID string, now time.Time) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "room_id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		var msg models.ChatMessage
		if err := tx.Where("room_id = ?", roomID).First(&msg, msgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}
		if msg.SenderID != requesterID {
			return apperr.ErrForbidden
		}
		if !msg.CanBeDeletedBy(requesterID, now) {
			return apperr.ErrDeleteWindow
		}

		if err := tx.Delete(&models.ChatMessage{}, msg.ID).Error; err != nil {
			return err
		}

		var latest models.ChatMessage
		err := tx.Where("room_id = ?", roomID).
			Order("created_at DESC, id DESC").
			First(&latest).Error

		summary := map[string]any{}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Room emptied out.
			summary["last_message_body"] = ""
			summary["last_message_sender_id"] = ""
			summary["last_message_at"] = nil
		case err != nil:
			return err
		case msg.ID > latest.ID:
			// The deleted message was the latest one: fall back to the
			// previous message.
			summary["last_message_body"] = latest.Body
			summary["last_message_sender_id"] = latest.SenderID
			summary["last_message_at"] = latest.CreatedAt
		default:
			// A newer message already owns the summary.
			return nil
		}
		// Column-scoped write: the unread counters belong to concurrent
		// sends and must not be rewritten from this transaction's
		// snapshot. UpdateColumns also leaves updated_at alone, so a
		// deletion does not reorder the room list.
		err = tx.Model(&models.ChatRoom{}).
			Where("room_id = ?", roomID).
			UpdateColumns(summary).Error
		if err != nil {
			return err
		}
		return tx.First(&room, "room_id = ?", roomID).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}
