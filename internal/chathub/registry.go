package chathub

import (
	"log"
	"sync"
)

// Registry maps chat IDs to the set of live connection handles for that
// chat. One lock guards the whole table; sessions mutate it on join and
// leave, broadcasts iterate a point-in-time snapshot so a concurrent leave
// cannot corrupt the walk.
type Registry struct {
	mu    sync.RWMutex
	chats map[uint]map[Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{chats: make(map[uint]map[Conn]struct{})}
}

// Join adds the handle to the chat's set, creating the set if absent.
func (r *Registry) Join(chatID uint, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.chats[chatID]
	if !ok {
		set = make(map[Conn]struct{})
		r.chats[chatID] = set
	}
	if _, present := set[c]; !present {
		set[c] = struct{}{}
		activeConnections.Inc()
	}
}

// Leave removes the handle; the chat entry itself is deleted once its set
// becomes empty. Safe to call for a handle that already left.
func (r *Registry) Leave(chatID uint, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.chats[chatID]
	if !ok {
		return
	}
	if _, present := set[c]; !present {
		return
	}
	delete(set, c)
	activeConnections.Dec()
	if len(set) == 0 {
		delete(r.chats, chatID)
	}
}

// Broadcast sends the payload to every handle currently in the chat's set.
// A write failure evicts that handle as if it had disconnected; delivery to
// the remaining handles is unaffected.
func (r *Registry) Broadcast(chatID uint, payload []byte) {
	r.mu.RLock()
	snapshot := make([]Conn, 0, len(r.chats[chatID]))
	for c := range r.chats[chatID] {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		if err := c.WriteText(payload); err != nil {
			log.Printf("broadcast to chat %d failed, evicting connection: %v", chatID, err)
			c.Close()
			r.Leave(chatID, c)
			continue
		}
		messagesBroadcast.Inc()
	}
}

// Count reports how many handles are registered for the chat.
func (r *Registry) Count(chatID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.chats[chatID])
}

// HasChat reports whether the chat currently has a registry entry at all.
func (r *Registry) HasChat(chatID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.chats[chatID]
	return ok
}
