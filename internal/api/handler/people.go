package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// People lists every registered user as {id, username}. The serialized
// directory is cached in Redis and invalidated when someone registers.
func (h *Handler) People(c *gin.Context) {
	if cached, err := h.Storage.CachedPeople(); err == nil && cached != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	} else if err != nil {
		slog.Warn("people cache lookup failed", "error", err)
	}

	users, err := h.Storage.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	payload, err := json.Marshal(users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	if err := h.Storage.CachePeople(payload); err != nil {
		slog.Warn("failed to cache people directory", "error", err)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
