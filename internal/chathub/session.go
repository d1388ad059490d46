package chathub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Amirkhan012/Messaging-service/internal/models"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

// ErrAuthentication marks a rejected connection attempt: missing, invalid
// or expired token, or a token for a user that does not exist. The caller
// closes the socket with a policy-violation code; no registry or presence
// state is created.
var ErrAuthentication = errors.New("authentication failed")

// State is the lifecycle phase of a session.
type State int

const (
	StateConnecting State = iota
	StateAuthenticated
	StateActive
	StateClosed
)

// TokenVerifier validates a bearer token and returns the user ID it carries.
type TokenVerifier func(token string) (uint, error)

// Notifier is the outbound edge of the notification dispatcher. Enqueue is
// fire-and-forget: the session never waits on delivery and never fails on a
// dispatch error.
type Notifier interface {
	Enqueue(recipientID int64, text string) error
}

// Session drives one accepted connection through
// Connecting → Authenticated → Active → Closed. It owns the receive loop:
// every inbound payload is persisted, cached, broadcast and dispatched
// strictly in arrival order.
type Session struct {
	ChatID uint

	conn     Conn
	registry *Registry
	store    storage.Storage
	notifier Notifier
	verify   TokenVerifier

	presenceTTL time.Duration
	cacheBound  int64

	sender *models.User
	state  State
}

// NewSession wraps an accepted but not yet validated connection.
func NewSession(chatID uint, conn Conn, registry *Registry, store storage.Storage,
	notifier Notifier, verify TokenVerifier, presenceTTL time.Duration, cacheBound int64) *Session {
	return &Session{
		ChatID:      chatID,
		conn:        conn,
		registry:    registry,
		store:       store,
		notifier:    notifier,
		verify:      verify,
		presenceTTL: presenceTTL,
		cacheBound:  cacheBound,
		state:       StateConnecting,
	}
}

// State returns the session's current lifecycle phase.
func (s *Session) State() State { return s.state }

// Sender returns the authenticated user, nil before authentication.
func (s *Session) Sender() *models.User { return s.sender }

// Authenticate resolves the bearer token to a known user. On any failure
// the session goes straight to Closed without touching the registry.
func (s *Session) Authenticate(token string) error {
	if s.state != StateConnecting {
		return fmt.Errorf("authenticate called in state %d", s.state)
	}
	if token == "" {
		s.state = StateClosed
		return fmt.Errorf("%w: missing token", ErrAuthentication)
	}

	userID, err := s.verify(token)
	if err != nil {
		s.state = StateClosed
		return fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	sender, err := s.store.GetUserByID(userID)
	if err != nil {
		s.state = StateClosed
		return fmt.Errorf("%w: unknown user %d", ErrAuthentication, userID)
	}

	s.sender = sender
	s.state = StateAuthenticated
	return nil
}

// Run registers the connection, records presence and processes inbound
// payloads until the remote side disconnects. It blocks for the lifetime
// of the connection.
func (s *Session) Run(ctx context.Context) {
	if s.state != StateAuthenticated {
		log.Printf("session for chat %d started without authentication", s.ChatID)
		return
	}

	s.registry.Join(s.ChatID, s.conn)
	if err := s.store.AddChatPresence(ctx, s.ChatID, s.sender.ID, s.presenceTTL); err != nil {
		log.Printf("failed to record presence for user %d in chat %d: %v", s.sender.ID, s.ChatID, err)
	}
	s.state = StateActive
	defer s.close(ctx)

	for {
		payload, err := s.conn.ReadText()
		if err != nil {
			// Remote close or transport failure: the expected way out.
			return
		}
		s.handlePayload(ctx, payload)
	}
}

// handlePayload runs the ingest pipeline for one inbound message. Only the
// persistence step can abort it, and then only for this payload.
func (s *Session) handlePayload(ctx context.Context, payload []byte) {
	if err := s.store.RefreshChatPresence(ctx, s.ChatID, s.presenceTTL); err != nil {
		log.Printf("failed to refresh presence TTL for chat %d: %v", s.ChatID, err)
	}

	msg, err := s.store.CreateMessage(s.ChatID, s.sender.ID, string(payload))
	if err != nil {
		messagesDropped.Inc()
		log.Printf("dropping message for chat %d, persistence failed: %v", s.ChatID, err)
		return
	}

	out, err := json.Marshal(models.NewMessageOut(msg))
	if err != nil {
		log.Printf("failed to serialize message %d: %v", msg.ID, err)
		return
	}

	if err := s.store.PushRecentMessage(ctx, s.ChatID, out, s.cacheBound); err != nil {
		log.Printf("failed to cache message %d for chat %d: %v", msg.ID, s.ChatID, err)
	}

	s.registry.Broadcast(s.ChatID, out)
	s.notifyParticipants(string(payload))
}

// notifyParticipants enqueues a push notification for every other chat
// member with a linked Telegram account. Dispatch errors are logged and
// swallowed; they never surface to the sender.
func (s *Session) notifyParticipants(content string) {
	chat, err := s.store.GetChatByID(s.ChatID)
	if err != nil {
		log.Printf("failed to load chat %d for notification: %v", s.ChatID, err)
		return
	}

	for _, participantID := range chat.Participants() {
		if participantID == s.sender.ID {
			continue
		}
		recipient, err := s.store.GetUserByID(participantID)
		if err != nil {
			log.Printf("failed to load participant %d of chat %d: %v", participantID, s.ChatID, err)
			continue
		}
		if recipient.TelegramID == nil {
			continue
		}

		text := fmt.Sprintf("New message from %s: %s", s.sender.Username, content)
		if err := s.notifier.Enqueue(*recipient.TelegramID, text); err != nil {
			log.Printf("failed to enqueue notification for user %d: %v", participantID, err)
			continue
		}
		notificationsEnqueued.Inc()
	}
}

func (s *Session) close(ctx context.Context) {
	if err := s.store.RemoveChatPresence(ctx, s.ChatID, s.sender.ID); err != nil {
		log.Printf("failed to remove presence for user %d in chat %d: %v", s.sender.ID, s.ChatID, err)
	}
	s.registry.Leave(s.ChatID, s.conn)
	s.state = StateClosed
}
