package chathub_test

import (
	"context"
	"io"
	"sync"
	"time"

	"relaychat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify/mock implementation of the storage.Storage
// interface for exercising the hub without a database.
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

// fakeClient is a test double for the chathub.Client interface that records
// every frame pushed to it.
type fakeClient struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{}
}

func (c *fakeClient) Send(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.frames = append(c.frames, frame)
	return true
}

func (c *fakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Frames returns a copy of everything sent so far.
func (c *fakeClient) Frames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	copy(out, c.frames)
	return out
}

// Reset discards recorded frames so a test can assert on what follows.
func (c *fakeClient) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
