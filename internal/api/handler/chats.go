package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Amirkhan012/Messaging-service/internal/models"
	"github.com/Amirkhan012/Messaging-service/internal/storage"
)

// ListUsers returns every registered user except the caller.
func (h *Handler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	users, err := h.Store.ListUsersExcept(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "username": u.Username})
	}
	c.JSON(http.StatusOK, out)
}

// GetChatMessages returns the full history of a chat the caller belongs to,
// ordered by time ascending.
func (h *Handler) GetChatMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	chatID, err := parseIDParam(c, "chat_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	chat, err := h.Store.GetChatByID(chatID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat"})
		return
	}
	if !chat.HasParticipant(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this chat"})
		return
	}

	messages, err := h.Store.GetMessages(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	out := make([]models.MessageOut, 0, len(messages))
	for i := range messages {
		out = append(out, models.NewMessageOut(&messages[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetOrCreateChat returns the chat between the caller and the given user,
// creating it on first contact.
func (h *Handler) GetOrCreateChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	otherID, err := parseIDParam(c, "user_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	chat, err := h.Store.GetOrCreateChat(user.ID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get or create chat"})
		return
	}
	c.JSON(http.StatusOK, chat)
}

// DeleteChat removes a chat and all of its messages.
func (h *Handler) DeleteChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	chatID, err := parseIDParam(c, "chat_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	chat, err := h.Store.GetChatByID(chatID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat"})
		return
	}
	if !chat.HasParticipant(user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this chat"})
		return
	}

	if err := h.Store.DeleteChat(chatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete chat"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
