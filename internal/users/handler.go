package users

import (
	"net/http"

	"threadly/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{users: service}
}

type updateRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Update rewrites the caller's profile row. The password is re-hashed
// only when a new one is supplied.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" || req.Name == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	if err := h.users.UpdateProfile(c.Request.Context(), req.ID, req.Name, req.Email, req.Password); err != nil {
		logger.Error("profile update failed", map[string]any{"id": req.ID, "error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
