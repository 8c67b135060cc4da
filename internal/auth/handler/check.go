package handler

import (
	"net/http"

	"threadly/internal/session"

	"github.com/gin-gonic/gin"
)

// Check is the single source of truth for "who is the current caller".
// A missing or invalid cookie is the normal unauthenticated path, never
// a server fault.
func (h *Handler) Check(c *gin.Context) {
	tok, ok := session.TokenFromRequest(c.Request)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	claims, err := h.tokens.Verify(tok)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         claims.UserID,
		"name":       claims.Name,
		"email":      claims.Email,
		"created_at": claims.UserCreated,
	})
}
