// Package storage bundles the durable Postgres gateway and the ephemeral
// Redis state behind one Storage interface. Postgres owns users, chats and
// message history; Redis owns per-chat presence sets with a sliding TTL and
// the bounded recent-message cache.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Amirkhan012/Messaging-service/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// TTLMissing is the go-redis sentinel for "key does not exist or already
// expired". The janitor keys its cache eviction on this value.
const TTLMissing = time.Duration(-2)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsersExcept(id uint) ([]models.User, error)
	UpdateUser(user *models.User) error
	LinkTelegramID(email string, telegramID int64) (*models.User, error)

	// Chats and messages
	GetOrCreateChat(user1ID, user2ID uint) (*models.Chat, error)
	GetChatByID(id uint) (*models.Chat, error)
	CreateMessage(chatID, senderID uint, content string) (*models.Message, error)
	GetMessages(chatID uint) ([]models.Message, error)
	DeleteChat(chatID uint) error

	// Ephemeral chat state
	AddChatPresence(ctx context.Context, chatID, userID uint, ttl time.Duration) error
	RemoveChatPresence(ctx context.Context, chatID, userID uint) error
	RefreshChatPresence(ctx context.Context, chatID uint, ttl time.Duration) error
	PushRecentMessage(ctx context.Context, chatID uint, payload []byte, bound int64) error
	PresenceKeys(ctx context.Context) ([]string, error)
	PresenceTTL(ctx context.Context, key string) (time.Duration, error)
	DeleteChatPresence(ctx context.Context, chatID uint) error
	DeleteRecentMessages(ctx context.Context, chatID uint) error
	GetRecentMessages(ctx context.Context, chatID uint) ([]string, error)
}

// Service implements Storage on top of gorm and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewService constructs the storage service.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{DB: db, Redis: rdb}
}

func presenceKey(chatID uint) string {
	return fmt.Sprintf("chat:%d:users", chatID)
}

func recentKey(chatID uint) string {
	return fmt.Sprintf("chat:%d:messages", chatID)
}
