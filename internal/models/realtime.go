package models

import (
	"encoding/json"
	"time"
)

// MessageOut is the wire form of a message: what gets pushed to the
// recent-message cache and broadcast to every open connection of a chat.
type MessageOut struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chat_id"`
	SenderID  uint      `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageOut converts a persisted message to its wire form.
func NewMessageOut(m *Message) MessageOut {
	return MessageOut{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}

// MarshalJSON renders the timestamp as RFC 3339 UTC text.
func (m MessageOut) MarshalJSON() ([]byte, error) {
	type alias MessageOut
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{
		alias:     alias(m),
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	})
}
