package chathub

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

// Janitor reclaims recent-message caches for chats that went quiet. A chat
// is quiet when its presence key has already expired in Redis; the key
// itself is never deleted here, the store's native expiry owns it.
type Janitor struct {
	store  storage.Storage
	period time.Duration
}

// NewJanitor creates a janitor sweeping at the given period.
func NewJanitor(store storage.Storage, period time.Duration) *Janitor {
	return &Janitor{store: store, period: period}
}

// Run sweeps immediately, then once per period until the context is
// cancelled. Cancellation is only observed at the sleep boundary, so no
// sweep is ever interrupted mid-cycle.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.period)
	defer ticker.Stop()

	for {
		j.Sweep(ctx)
		select {
		case <-ctx.Done():
			log.Println("janitor stopped")
			return
		case <-ticker.C:
		}
	}
}

// Sweep enumerates presence keys and deletes the message cache of every
// chat whose presence has already expired. Durable history is untouched.
func (j *Janitor) Sweep(ctx context.Context) {
	log.Println("janitor sweep started")

	keys, err := j.store.PresenceKeys(ctx)
	if err != nil {
		log.Printf("janitor failed to list presence keys: %v", err)
		return
	}

	for _, key := range keys {
		ttl, err := j.store.PresenceTTL(ctx, key)
		if err != nil {
			log.Printf("janitor failed to read TTL of %s: %v", key, err)
			continue
		}
		if ttl != storage.TTLMissing {
			continue
		}

		chatID, ok := chatIDFromPresenceKey(key)
		if !ok {
			log.Printf("janitor skipping malformed presence key %s", key)
			continue
		}
		if err := j.store.DeleteRecentMessages(ctx, chatID); err != nil {
			log.Printf("janitor failed to evict cache for chat %d: %v", chatID, err)
			continue
		}
		cachesEvicted.Inc()
		log.Printf("evicted message cache for inactive chat %d", chatID)
	}
}

// chatIDFromPresenceKey extracts the chat ID from a "chat:{id}:users" key.
func chatIDFromPresenceKey(key string) (uint, bool) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return 0, false
	}
	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
