package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/Amirkhan012/Messaging-service/internal/models"
)

// CreateUser inserts a new user row.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// GetUserByID loads one user by primary key.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername loads one user by unique username.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads one user by unique email.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersExcept returns every user other than the given one.
func (s *Service) ListUsersExcept(id uint) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("id <> ?", id).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser persists changes to an existing user.
func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// LinkTelegramID attaches a Telegram chat ID to the user owning the email.
func (s *Service) LinkTelegramID(email string, telegramID int64) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	user.TelegramID = &telegramID
	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreateChat finds the chat between two users or creates it.
// The pair is matched in both orders so only one chat can exist per pair.
func (s *Service) GetOrCreateChat(user1ID, user2ID uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where(
		"(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
		user1ID, user2ID, user2ID, user1ID,
	).First(&chat).Error

	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chat = models.Chat{User1ID: user1ID, User2ID: user2ID}
	if err := s.DB.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChatByID loads one chat by primary key.
func (s *Service) GetChatByID(id uint) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.First(&chat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// CreateMessage inserts a message; the timestamp is assigned at insert.
func (s *Service) CreateMessage(chatID, senderID uint, content string) (*models.Message, error) {
	msg := models.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: failed to save message for chat %d: %v", chatID, err)
		return nil, err
	}
	return &msg, nil
}

// GetMessages returns the full history of a chat ordered by time ascending.
func (s *Service) GetMessages(chatID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("chat_id = ?", chatID).
		Order("timestamp asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteChat removes a chat and everything sent in it.
func (s *Service) DeleteChat(chatID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Chat{}, chatID).Error
	})
}
