package chathub_test

import (
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"chatrelay/backend/internal/models"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveMessage(senderID, receiverID, text string) (*models.Message, error) {
	args := m.Called(senderID, receiverID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) GetChatMessages(chatID string, limit int) ([]models.Message, error) {
	args := m.Called(chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) GetUserChats(userID string) ([]models.Chat, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chat), args.Error(1)
}

func (m *MockStorage) PublishMessage(chatID string, msg models.Message) error {
	args := m.Called(chatID, msg)
	return args.Error(0)
}

func (m *MockStorage) SetUserOnline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) SetUserOffline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

var errDeadConnection = errors.New("write to dead connection")

// mockClient is a test double for the chathub.Client interface. It records
// every frame it was asked to send and can be flipped to fail writes, so
// tests can exercise the registry's self-heal path.
type mockClient struct {
	userID string

	// When set, Close announces itself on closeStarted and then blocks
	// until closeRelease is closed, simulating a wedged transport.
	closeStarted chan struct{}
	closeRelease chan struct{}

	mu       sync.Mutex
	frames   []any
	failSend bool
	closed   int
}

func newMockClient(id string) *mockClient {
	return &mockClient{userID: id}
}

func (c *mockClient) GetUserID() string { return c.userID }

func (c *mockClient) Send(frame any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return errDeadConnection
	}
	c.frames = append(c.frames, frame)
	return nil
}

func (c *mockClient) Close() error {
	if c.closeStarted != nil {
		c.closeStarted <- struct{}{}
		<-c.closeRelease
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *mockClient) kill() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failSend = true
}

func (c *mockClient) sentFrames() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *mockClient) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
