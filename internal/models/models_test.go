package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amirkhan012/Messaging-service/internal/models"
)

func TestChatParticipants(t *testing.T) {
	chat := &models.Chat{ID: 1, User1ID: 10, User2ID: 20}

	assert.Equal(t, []uint{10, 20}, chat.Participants())
	assert.True(t, chat.HasParticipant(10))
	assert.True(t, chat.HasParticipant(20))
	assert.False(t, chat.HasParticipant(30))
}

func TestMessageOutWireFormat(t *testing.T) {
	msg := &models.Message{
		ID:        9,
		ChatID:    42,
		SenderID:  1,
		Content:   "hello",
		Timestamp: time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("EEST", 3*3600)),
	}

	body, err := json.Marshal(models.NewMessageOut(msg))
	require.NoError(t, err)

	// Timestamps always go out as RFC 3339 UTC regardless of stored zone.
	assert.JSONEq(t,
		`{"id":9,"chat_id":42,"sender_id":1,"content":"hello","timestamp":"2024-05-01T11:30:00Z"}`,
		string(body))
}

func TestUserJSONHidesCredentials(t *testing.T) {
	tgID := int64(777)
	user := models.User{
		ID:             1,
		Username:       "alice",
		Email:          "alice@example.com",
		HashedPassword: "$2a$10$abcdef",
		TelegramID:     &tgID,
	}

	body, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "$2a$10$abcdef")
	assert.NotContains(t, string(body), "777")
	assert.Contains(t, string(body), `"username":"alice"`)
}
