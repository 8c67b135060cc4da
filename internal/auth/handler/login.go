package handler

import (
	"errors"
	"net/http"

	"threadly/internal/logger"
	"threadly/internal/session"
	"threadly/internal/token"
	"threadly/internal/users"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrInvalidCredentials) {
		// never reveal which factor failed
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		logger.Error("login upstream failure", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	signed, err := h.tokens.Issue(token.Claims{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		UserCreated:  user.CreatedAt,
	})
	if err != nil {
		logger.Error("token issue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	session.SetCookie(c.Writer, signed, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}
