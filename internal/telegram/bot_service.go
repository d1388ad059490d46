package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

const (
	greetingText      = "Hi! Send your email to link it to your account."
	linkedTextFmt     = "Your email %s has been linked."
	emailNotFoundText = "Email not found. Please make sure you are registered."
)

// route pairs a match predicate with its handler. Routes are evaluated in
// registration order; the first match wins and no further routes run. A
// handler returns the reply text, empty for no reply.
type route struct {
	match  func(*tgbotapi.Message) bool
	handle func(*tgbotapi.Message) string
}

// BotService long-polls Telegram updates and routes inbound messages. Its
// only job here is linking a Telegram account to a registered user by email;
// notification delivery lives in the worker (see Sender).
type BotService struct {
	BotAPI  *tgbotapi.BotAPI
	Storage storage.Storage

	routes []route
}

// NewBotService authorizes the bot and registers its message routes.
func NewBotService(token string, s storage.Storage) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	svc := &BotService{BotAPI: bot, Storage: s}
	svc.routes = svc.buildRoutes()
	return svc, nil
}

func (s *BotService) buildRoutes() []route {
	return []route{
		{
			match:  func(m *tgbotapi.Message) bool { return m.IsCommand() && m.Command() == "start" },
			handle: s.handleStart,
		},
		{
			match:  func(m *tgbotapi.Message) bool { return strings.Contains(m.Text, "@") },
			handle: s.handleEmailLink,
		},
	}
}

// Run polls for updates until the context is cancelled.
func (s *BotService) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			s.BotAPI.StopReceivingUpdates()
			log.Println("telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			if reply := s.dispatch(update.Message); reply != "" {
				s.reply(update.Message.Chat.ID, reply)
			}
		}
	}
}

// dispatch walks the route table in order and returns the reply of the
// first matching handler, empty when no route matches.
func (s *BotService) dispatch(msg *tgbotapi.Message) string {
	for _, r := range s.routes {
		if r.match(msg) {
			return r.handle(msg)
		}
	}
	return ""
}

func (s *BotService) handleStart(msg *tgbotapi.Message) string {
	return greetingText
}

// handleEmailLink attaches the sender's Telegram chat ID to the user
// registered under the given email.
func (s *BotService) handleEmailLink(msg *tgbotapi.Message) string {
	email := strings.TrimSpace(msg.Text)

	user, err := s.Storage.LinkTelegramID(email, msg.From.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return emailNotFoundText
	}
	if err != nil {
		log.Printf("failed to link telegram account for %s: %v", email, err)
		return emailNotFoundText
	}

	log.Printf("linked telegram account %d to user %d", msg.From.ID, user.ID)
	return fmt.Sprintf(linkedTextFmt, email)
}

func (s *BotService) reply(chatID int64, text string) {
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("failed to send bot reply to %d: %v", chatID, err)
	}
}
