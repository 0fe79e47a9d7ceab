package handler

import (
	"net/http"

	"relaychat/backend/internal/chathub"
	"relaychat/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The credential cookie, not the origin, gates what a connection may
	// do; the browser client runs on a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and hands the connection to the hub.
// The credential cookie is verified before the connection joins; a missing
// or invalid cookie leaves the connection anonymous rather than refusing it,
// matching the HTTP surface where the same request would get a 401.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	var ident token.Identity
	if cookie, err := c.Cookie(cookieName); err == nil {
		if verified, err := h.Tokens.Verify(cookie); err == nil {
			ident = verified
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn)
	h.Hub.Join(client, ident.UserID, ident.Username)
	client.Run()
}
