package handler

import (
	"net/http"

	"threadly/internal/session"

	"github.com/gin-gonic/gin"
)

// Logout clears the cookie and nothing else: the token itself cannot be
// revoked and runs out on its own expiry. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	session.ClearCookie(c.Writer, h.cookieOpts)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
