package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"relaychat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// peopleCacheKey holds the serialized user directory; it expires on its own
// and is dropped eagerly whenever a new account is created.
const (
	peopleCacheKey = "directory:people"
	peopleCacheTTL = time.Minute
)

type Storage interface {
	SaveUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	ListUsers() ([]models.User, error)

	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB string) ([]models.Message, error)

	RevokeToken(token string, ttl time.Duration) error
	IsTokenRevoked(token string) (bool, error)

	CachePeople(payload []byte) error
	CachedPeople() ([]byte, error)
	InvalidatePeople() error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser persists a new user in PostgreSQL. The BeforeCreate hook assigns
// the UUID; a duplicate username surfaces as a constraint error.
func (s *Service) SaveUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		slog.Error("failed to save user", "username", user.Username, "error", err)
		return err
	}
	return nil
}

// FindUserByUsername returns (nil, nil) when no such user exists.
func (s *Service) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every registered user, ordered by username.
func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("username asc").Find(&users).Error; err != nil {
		slog.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// SaveMessage persists a message in PostgreSQL. msg.ID and msg.CreatedAt are
// backfilled by GORM so the caller can relay the assigned ID.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		slog.Error("failed to save message",
			"sender", msg.SenderID, "recipient", msg.RecipientID, "error", err)
		return err
	}
	return nil
}

// GetConversation returns every message exchanged between the two users,
// ascending by creation time.
func (s *Service) GetConversation(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messages, nil
		}
		slog.Error("failed to load conversation", "user_a", userA, "user_b", userB, "error", err)
		return nil, err
	}
	return messages, nil
}

// RevokeToken marks a token as invalid in Redis for the rest of its lifetime.
func (s *Service) RevokeToken(token string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, "revoked:"+token, "1", ttl).Err()
}

// IsTokenRevoked checks the Redis revocation list.
func (s *Service) IsTokenRevoked(token string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, "revoked:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CachePeople stores the serialized user directory in Redis.
func (s *Service) CachePeople(payload []byte) error {
	return s.Redis.Set(s.Ctx, peopleCacheKey, payload, peopleCacheTTL).Err()
}

// CachedPeople returns (nil, nil) on a cache miss.
func (s *Service) CachedPeople() ([]byte, error) {
	payload, err := s.Redis.Get(s.Ctx, peopleCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// InvalidatePeople drops the cached directory (called after registration).
func (s *Service) InvalidatePeople() error {
	return s.Redis.Del(s.Ctx, peopleCacheKey).Err()
}
