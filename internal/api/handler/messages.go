package handler

import (
	"net/http"

	"relaychat/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Messages returns the conversation between the authenticated caller and the
// user in the path, ascending by creation time.
func (h *Handler) Messages(c *gin.Context) {
	ident, err := h.identityFromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token"})
		return
	}

	otherID := c.Param("userId")
	messages, err := h.Storage.GetConversation(ident.UserID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, messages)
}
