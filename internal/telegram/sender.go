// Package telegram integrates with the Telegram Bot API: outbound push
// notification delivery for the worker, and the account-link bot that maps
// Telegram accounts to registered users by email.
package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers push notifications to Telegram chats.
type Sender struct {
	bot *tgbotapi.BotAPI
}

// NewSender authorizes against the Bot API with the given token.
func NewSender(token string) (*Sender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	return &Sender{bot: bot}, nil
}

// Send delivers one notification text to the recipient's Telegram chat.
// Matches notify.DeliverFunc.
func (s *Sender) Send(recipientID int64, text string) error {
	msg := tgbotapi.NewMessage(recipientID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send notification to %d: %w", recipientID, err)
	}
	return nil
}
