package storage

import (
	"context"
	"errors"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Storage is the persistence boundary of the service. PostgreSQL (via
// GORM) holds the durable records; Redis carries pub/sub fan-out,
// presence, and session revocation markers.
type Storage interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)

	ListPatientsForDoctor(doctorID string) ([]models.Patient, error)
	GetPatientByID(id string) (*models.Patient, error)

	SaveRoom(room *models.ChatRoom) error
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	GetRoomsForUser(userID string) ([]models.ChatRoom, error)

	GetMessages(roomID string, before time.Time, limit int) ([]models.ChatMessage, error)
	SendMessage(msg *models.ChatMessage) (*models.ChatRoom, error)
	DeleteMessage(roomID string, msgID uint, requesterID string, now time.Time) (*models.ChatRoom, error)
	MarkRoomRead(roomID, userID string) (*models.ChatRoom, error)

	PublishRoomEvent(roomID string, ev models.RoomEvent) error
	SubscribeRoomEvents(ctx context.Context) (<-chan models.RoomEvent, error)

	SetOnline(userID string) error
	SetOffline(userID string) error

	RevokeSessions(userID string, ttl time.Duration) error
	SessionsRevokedAt(userID string) (time.Time, error)
}

// Service implements Storage on top of GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
	Log   *zap.SugaredLogger
}

var _ Storage = (*Service)(nil)

func NewService(db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
		Log:   log,
	}
}

// AutoMigrate creates or updates the schema for every model the service
// persists.
func (s *Service) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.ChatRoom{},
		&models.ChatMessage{},
	)
}

func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByEmail returns nil without an error when no account matches.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
