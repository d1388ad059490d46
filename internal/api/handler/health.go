package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports process liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
