package handler

import (
	"log/slog"
	"net/http"

	"relaychat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// setTokenCookie attaches the credential cookie the way the browser client
// expects it: cross-site, so SameSite=None and Secure.
func (h *Handler) setTokenCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(cookieName, tok, int(h.Tokens.Expire().Seconds()), "/", "", true, true)
}

// Register creates an account, hashes the password with bcrypt and signs the
// new user in immediately.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	existing, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := &models.User{Username: req.Username, PasswordHash: string(hash)}
	if err := h.Storage.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	if err := h.Storage.InvalidatePeople(); err != nil {
		slog.Warn("failed to invalidate people cache", "error", err)
	}

	tok, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	h.setTokenCookie(c, tok)
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

// Login verifies the password and sets a fresh credential cookie.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}
	h.setTokenCookie(c, tok)
	c.JSON(http.StatusOK, gin.H{"id": user.ID})
}

// Logout clears the cookie and revokes the token server-side so a copied
// credential stops working immediately.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(cookieName); err == nil {
		if err := h.Tokens.Revoke(cookie); err != nil {
			slog.Warn("failed to revoke token", "error", err)
		}
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(cookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, "ok")
}

// Profile returns the identity asserted by the credential cookie.
func (h *Handler) Profile(c *gin.Context) {
	ident, err := h.identityFromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": ident.UserID, "username": ident.Username})
}
