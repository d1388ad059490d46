package models

// User represents a registered account.
// TelegramID is nil until the bot links the account by email.
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
	TelegramID     *int64 `gorm:"index" json:"-"`
}
