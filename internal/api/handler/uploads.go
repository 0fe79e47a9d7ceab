package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// ServeAttachment streams a stored attachment back by name.
func (h *Handler) ServeAttachment(c *gin.Context) {
	name := c.Param("name")
	if name == "" || name != filepath.Base(name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment name"})
		return
	}

	object, size, err := h.Files.Open(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return
	}
	defer object.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, object, nil)
}
