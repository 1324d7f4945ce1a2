package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/handler"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/api/middleware"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/auth"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

// newTestHandler builds a Handler with a mock store, a real token
// manager, and a muted logger. The hub is nil because no HTTP handler
// touches it directly.
func newTestHandler(store *MockStorage) *handler.Handler {
	gin.SetMode(gin.TestMode)
	return handler.NewHandler(store, nil, auth.NewManager("test-secret", time.Hour), zap.NewNop().Sugar())
}

// perform issues a request against a single-route router. When asUserID
// is set the identity is injected into the request context the same way
// RequireAuth does.
func perform(t *testing.T, register func(*gin.Engine), method, target string, body any, asUserID string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	if asUserID != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CtxUserID, asUserID)
			c.Next()
		})
	}
	register(r)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
