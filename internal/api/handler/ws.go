package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Amirkhan012/Messaging-service/internal/chathub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow connections from any origin; tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and runs the chat session state
// machine. The bearer token arrives as a query parameter; a missing or
// invalid token closes the socket with a policy-violation code before any
// registry or presence state is created.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	chatID, err := parseIDParam(c, "chat_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for chat %d: %v", chatID, err)
		return
	}
	conn := chathub.NewWSConn(raw)

	verify := func(token string) (uint, error) {
		return ParseAccessToken(token, h.Settings.SecretKey)
	}
	session := chathub.NewSession(
		chatID,
		conn,
		h.Registry,
		h.Store,
		h.Notifier,
		verify,
		h.Settings.PresenceTTL(),
		h.Settings.RecentCacheSize,
	)

	if err := session.Authenticate(c.Query("token")); err != nil {
		log.Printf("rejecting connection to chat %d: %v", chatID, err)
		conn.CloseWithCode(websocket.ClosePolicyViolation, "invalid token")
		return
	}

	session.Run(c.Request.Context())
}
