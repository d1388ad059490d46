package models

// Chat is a durable pairwise conversation between two users.
// Storage normalizes the pair order on lookup so exactly one chat
// exists per unordered pair; the unique index backs that up.
type Chat struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	User1ID uint `gorm:"not null;uniqueIndex:idx_user_pair" json:"user1_id"`
	User2ID uint `gorm:"not null;uniqueIndex:idx_user_pair" json:"user2_id"`

	User1 User `gorm:"foreignKey:User1ID" json:"-"`
	User2 User `gorm:"foreignKey:User2ID" json:"-"`
}

// Participants returns both member IDs.
func (c *Chat) Participants() []uint {
	return []uint{c.User1ID, c.User2ID}
}

// HasParticipant reports whether userID is one of the two members.
func (c *Chat) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}
