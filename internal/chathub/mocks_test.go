package chathub_test

import (
	"context"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListPatientsForDoctor(doctorID string) ([]models.Patient, error) {
	args := m.Called(doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockStorage) GetPatientByID(id string) (*models.Patient, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockStorage) SaveRoom(room *models.ChatRoom) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetRoomsForUser(userID string) ([]models.ChatRoom, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatRoom), args.Error(1)
}

func (m *MockStorage) GetMessages(roomID string, before time.Time, limit int) ([]models.ChatMessage, error) {
	args := m.Called(roomID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) SendMessage(msg *models.ChatMessage) (*models.ChatRoom, error) {
	args := m.Called(msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) DeleteMessage(roomID string, msgID uint, requesterID string, now time.Time) (*models.ChatRoom, error) {
	args := m.Called(roomID, msgID, requesterID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) MarkRoomRead(roomID, userID string) (*models.ChatRoom, error) {
	args := m.Called(roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRoom), args.Error(1)
}

func (m *MockStorage) PublishRoomEvent(roomID string, ev models.RoomEvent) error {
	args := m.Called(roomID, ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeRoomEvents(ctx context.Context) (<-chan models.RoomEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan models.RoomEvent), args.Error(1)
}

func (m *MockStorage) SetOnline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) SetOffline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) RevokeSessions(userID string, ttl time.Duration) error {
	args := m.Called(userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) SessionsRevokedAt(userID string) (time.Time, error) {
	args := m.Called(userID)
	return args.Get(0).(time.Time), args.Error(1)
}

// mockClient is a test double for the chathub.Client interface.
type mockClient struct {
	userID     string
	activeRoom string
	alerts     bool
	// RecvChannel captures everything the hub pushes to this client.
	RecvChannel chan models.RoomEvent
	closed      bool
}

func newMockClient(userID string) *mockClient {
	return &mockClient{
		userID:      userID,
		alerts:      true,
		RecvChannel: make(chan models.RoomEvent, 10),
	}
}

func (c *mockClient) GetUserID() string                       { return c.userID }
func (c *mockClient) ActiveRoomID() string                    { return c.activeRoom }
func (c *mockClient) SetActiveRoom(roomID string)             { c.activeRoom = roomID }
func (c *mockClient) AlertsEnabled() bool                     { return c.alerts }
func (c *mockClient) GetSendChannel() chan<- models.RoomEvent { return c.RecvChannel }
func (c *mockClient) Run()                                    {}
func (c *mockClient) Close()                                  { c.closed = true }

// drain empties the receive channel and returns what was queued.
func (c *mockClient) drain() []models.RoomEvent {
	var events []models.RoomEvent
	for {
		select {
		case ev := <-c.RecvChannel:
			events = append(events, ev)
		default:
			return events
		}
	}
}
