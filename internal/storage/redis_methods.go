package storage

import (
	"context"
	"time"
)

// AddChatPresence records the user in the chat's presence set and arms the
// sliding TTL on the key.
func (s *Service) AddChatPresence(ctx context.Context, chatID, userID uint, ttl time.Duration) error {
	key := presenceKey(chatID)
	if err := s.Redis.SAdd(ctx, key, userID).Err(); err != nil {
		return err
	}
	return s.Redis.Expire(ctx, key, ttl).Err()
}

// RemoveChatPresence drops the user from the chat's presence set.
func (s *Service) RemoveChatPresence(ctx context.Context, chatID, userID uint) error {
	return s.Redis.SRem(ctx, presenceKey(chatID), userID).Err()
}

// RefreshChatPresence resets the presence key's TTL to its full duration.
func (s *Service) RefreshChatPresence(ctx context.Context, chatID uint, ttl time.Duration) error {
	return s.Redis.Expire(ctx, presenceKey(chatID), ttl).Err()
}

// PushRecentMessage prepends the payload to the chat's recent-message list
// and trims it to the bound, most recent first.
func (s *Service) PushRecentMessage(ctx context.Context, chatID uint, payload []byte, bound int64) error {
	key := recentKey(chatID)
	if err := s.Redis.LPush(ctx, key, payload).Err(); err != nil {
		return err
	}
	return s.Redis.LTrim(ctx, key, 0, bound-1).Err()
}

// PresenceKeys enumerates every chat presence key currently in Redis.
func (s *Service) PresenceKeys(ctx context.Context) ([]string, error) {
	return s.Redis.Keys(ctx, "chat:*:users").Result()
}

// PresenceTTL reads the remaining TTL of a presence key. A TTLMissing
// result means the key has already expired or never existed.
func (s *Service) PresenceTTL(ctx context.Context, key string) (time.Duration, error) {
	return s.Redis.TTL(ctx, key).Result()
}

// DeleteChatPresence drops the chat's presence key outright. Only
// administrative purges use this; normal reclamation is Redis expiry.
func (s *Service) DeleteChatPresence(ctx context.Context, chatID uint) error {
	return s.Redis.Del(ctx, presenceKey(chatID)).Err()
}

// DeleteRecentMessages drops the chat's cached message list.
func (s *Service) DeleteRecentMessages(ctx context.Context, chatID uint) error {
	return s.Redis.Del(ctx, recentKey(chatID)).Err()
}

// GetRecentMessages returns the cached wire payloads, most recent first.
func (s *Service) GetRecentMessages(ctx context.Context, chatID uint) ([]string, error) {
	return s.Redis.LRange(ctx, recentKey(chatID), 0, -1).Result()
}
