package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amirkhan012/Messaging-service/internal/models"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

type linkCall struct {
	email      string
	telegramID int64
}

// stubStorage implements only the storage methods the bot touches; calling
// anything else panics through the nil embedded interface.
type stubStorage struct {
	storage.Storage

	linkFn func(email string, telegramID int64) (*models.User, error)
	calls  []linkCall
}

func (s *stubStorage) LinkTelegramID(email string, telegramID int64) (*models.User, error) {
	s.calls = append(s.calls, linkCall{email: email, telegramID: telegramID})
	return s.linkFn(email, telegramID)
}

func newTestBot(st *stubStorage) *BotService {
	svc := &BotService{Storage: st}
	svc.routes = svc.buildRoutes()
	return svc
}

func commandMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(text)},
		},
		Chat: &tgbotapi.Chat{ID: 100},
		From: &tgbotapi.User{ID: 777},
	}
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 100},
		From: &tgbotapi.User{ID: 777},
	}
}

func TestDispatchStartCommand(t *testing.T) {
	st := &stubStorage{}
	bot := newTestBot(st)

	reply := bot.dispatch(commandMessage("/start"))

	assert.Equal(t, greetingText, reply)
	assert.Empty(t, st.calls)
}

func TestDispatchStartWinsOverEmailRoute(t *testing.T) {
	st := &stubStorage{}
	bot := newTestBot(st)

	// "/start@MyBot" contains "@" but must hit the command route first.
	reply := bot.dispatch(commandMessage("/start@MyBot"))

	assert.Equal(t, greetingText, reply)
	assert.Empty(t, st.calls)
}

func TestDispatchLinksEmail(t *testing.T) {
	st := &stubStorage{
		linkFn: func(email string, telegramID int64) (*models.User, error) {
			return &models.User{ID: 3, Email: email}, nil
		},
	}
	bot := newTestBot(st)

	reply := bot.dispatch(textMessage("  user@example.com "))

	assert.Equal(t, "Your email user@example.com has been linked.", reply)
	require.Len(t, st.calls, 1)
	assert.Equal(t, linkCall{email: "user@example.com", telegramID: 777}, st.calls[0])
}

func TestDispatchEmailNotRegistered(t *testing.T) {
	st := &stubStorage{
		linkFn: func(email string, telegramID int64) (*models.User, error) {
			return nil, storage.ErrNotFound
		},
	}
	bot := newTestBot(st)

	reply := bot.dispatch(textMessage("stranger@example.com"))

	assert.Equal(t, emailNotFoundText, reply)
}

func TestDispatchLinkFailureRepliesNotFound(t *testing.T) {
	st := &stubStorage{
		linkFn: func(email string, telegramID int64) (*models.User, error) {
			return nil, errors.New("pq: connection refused")
		},
	}
	bot := newTestBot(st)

	reply := bot.dispatch(textMessage("user@example.com"))

	assert.Equal(t, emailNotFoundText, reply)
}

func TestDispatchIgnoresPlainText(t *testing.T) {
	st := &stubStorage{}
	bot := newTestBot(st)

	reply := bot.dispatch(textMessage("hello there"))

	assert.Empty(t, reply)
	assert.Empty(t, st.calls)
}
