package models

import "time"

// Message is one persisted chat message. Timestamp is assigned by the
// database layer at creation time.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"not null;index" json:"chat_id"`
	SenderID  uint      `gorm:"not null;index" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	Chat   Chat `gorm:"foreignKey:ChatID" json:"-"`
	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}
