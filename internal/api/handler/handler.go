package handler

import (
	"relaychat/backend/internal/chathub"
	"relaychat/backend/internal/storage"
	"relaychat/backend/internal/token"

	"github.com/gin-gonic/gin"
)

// cookieName is the credential cookie; it is the transport-level metadata a
// WebSocket upgrade carries, so the same cookie authenticates both the HTTP
// surface and the connection.
const cookieName = "token"

// Handler carries the dependencies shared by all HTTP endpoints.
type Handler struct {
	Hub     *chathub.Hub
	Storage storage.Storage
	Files   storage.AttachmentStore
	Tokens  *token.Service
}

func NewHandler(hub *chathub.Hub, s storage.Storage, files storage.AttachmentStore, tokens *token.Service) *Handler {
	return &Handler{Hub: hub, Storage: s, Files: files, Tokens: tokens}
}

// identityFromRequest verifies the credential cookie on the request.
func (h *Handler) identityFromRequest(c *gin.Context) (token.Identity, error) {
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return token.Identity{}, err
	}
	return h.Tokens.Verify(cookie)
}
