package handler_test

import (
	"context"
	"io"
	"time"

	"relaychat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify/mock implementation of the storage.Storage
// interface for exercising handlers without a database.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) FindUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetConversation(userA, userB string) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) RevokeToken(token string, ttl time.Duration) error {
	args := m.Called(token, ttl)
	return args.Error(0)
}

func (m *MockStorage) IsTokenRevoked(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) CachePeople(payload []byte) error {
	args := m.Called(payload)
	return args.Error(0)
}

func (m *MockStorage) CachedPeople() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) InvalidatePeople() error {
	args := m.Called()
	return args.Error(0)
}

// MockFiles is a testify/mock implementation of storage.AttachmentStore.
type MockFiles struct {
	mock.Mock
}

func (m *MockFiles) Write(ctx context.Context, name, contentType string, data []byte) error {
	args := m.Called(ctx, name, contentType, data)
	return args.Error(0)
}

func (m *MockFiles) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}
