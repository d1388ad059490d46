package chathub_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Amirkhan012/Messaging-service/internal/models"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsersExcept(id uint) ([]models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) LinkTelegramID(email string, telegramID int64) (*models.User, error) {
	args := m.Called(email, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetOrCreateChat(user1ID, user2ID uint) (*models.Chat, error) {
	args := m.Called(user1ID, user2ID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) GetChatByID(id uint) (*models.Chat, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockStorage) CreateMessage(chatID, senderID uint, content string) (*models.Message, error) {
	args := m.Called(chatID, senderID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) GetMessages(chatID uint) ([]models.Message, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) DeleteChat(chatID uint) error {
	args := m.Called(chatID)
	return args.Error(0)
}

func (m *MockStorage) AddChatPresence(ctx context.Context, chatID, userID uint, ttl time.Duration) error {
	args := m.Called(ctx, chatID, userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) RemoveChatPresence(ctx context.Context, chatID, userID uint) error {
	args := m.Called(ctx, chatID, userID)
	return args.Error(0)
}

func (m *MockStorage) RefreshChatPresence(ctx context.Context, chatID uint, ttl time.Duration) error {
	args := m.Called(ctx, chatID, ttl)
	return args.Error(0)
}

func (m *MockStorage) PushRecentMessage(ctx context.Context, chatID uint, payload []byte, bound int64) error {
	args := m.Called(ctx, chatID, payload, bound)
	return args.Error(0)
}

func (m *MockStorage) PresenceKeys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) PresenceTTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockStorage) DeleteChatPresence(ctx context.Context, chatID uint) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockStorage) DeleteRecentMessages(ctx context.Context, chatID uint) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockStorage) GetRecentMessages(ctx context.Context, chatID uint) ([]string, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// fakeConn is a scripted chathub.Conn: ReadText replays the queued inbound
// payloads then reports a remote close; WriteText records every frame.
type fakeConn struct {
	mu        sync.Mutex
	inbound   chan []byte
	writes    [][]byte
	failSend  bool
	closed    bool
	closeCode int

	// onWrite, when set, observes every successful write.
	onWrite func(payload []byte)
}

func newFakeConn(payloads ...string) *fakeConn {
	c := &fakeConn{inbound: make(chan []byte, len(payloads))}
	for _, p := range payloads {
		c.inbound <- []byte(p)
	}
	close(c.inbound)
	return c
}

func (c *fakeConn) ReadText() ([]byte, error) {
	payload, ok := <-c.inbound
	if !ok {
		return nil, io.EOF
	}
	return payload, nil
}

func (c *fakeConn) WriteText(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend {
		return io.ErrClosedPipe
	}
	c.writes = append(c.writes, payload)
	if c.onWrite != nil {
		c.onWrite(payload)
	}
	return nil
}

func (c *fakeConn) CloseWithCode(code int, reason string) error {
	c.mu.Lock()
	c.closeCode = code
	c.mu.Unlock()
	return c.Close()
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) Writes() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.writes))
	copy(out, c.writes)
	return out
}

// mockNotifier records every enqueued notification task.
type mockNotifier struct {
	mu    sync.Mutex
	calls []notifiedTask
	err   error
}

type notifiedTask struct {
	recipientID int64
	text        string
}

func (n *mockNotifier) Enqueue(recipientID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifiedTask{recipientID: recipientID, text: text})
	return n.err
}

func (n *mockNotifier) Calls() []notifiedTask {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notifiedTask, len(n.calls))
	copy(out, n.calls)
	return out
}
