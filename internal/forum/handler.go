package forum

import (
	"errors"
	"net/http"
	"strconv"

	"threadly/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	forum *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{forum: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/discussions", h.ListDiscussions)
	r.POST("/api/discussions", h.CreateDiscussion)
	r.GET("/api/discussions/user", h.ListUserDiscussions)
	r.GET("/api/discussions/:id", h.GetDiscussion)
	r.POST("/api/comments/create", h.CreateComment)
}

func (h *Handler) ListDiscussions(c *gin.Context) {
	page := intQuery(c, "page", defaultPage)
	limit := intQuery(c, "limit", defaultLimit)

	result, err := h.forum.ListDiscussions(c.Request.Context(), page, limit)
	if err != nil {
		logger.Error("list discussions failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch discussions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Discussions,
		"page":       result.Page,
		"totalPages": result.TotalPages,
	})
}

func (h *Handler) ListUserDiscussions(c *gin.Context) {
	userID := c.Query("id")
	page := intQuery(c, "page", defaultPage)
	limit := intQuery(c, "limit", defaultLimit)

	result, err := h.forum.ListUserDiscussions(c.Request.Context(), userID, page, limit)
	if err != nil {
		logger.Error("list user discussions failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch discussions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result.Discussions,
		"page":       result.Page,
		"totalPages": result.TotalPages,
	})
}

func (h *Handler) GetDiscussion(c *gin.Context) {
	id := c.Param("id")

	discussion, comments, err := h.forum.GetDiscussion(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Discussion not found", "id": id})
		return
	}
	if err != nil {
		logger.Error("get discussion failed", map[string]any{"id": id, "error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"discussion": discussion,
		"comments":   comments,
	})
}

type createDiscussionRequest struct {
	UserID  string `json:"user_id"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) CreateDiscussion(c *gin.Context) {
	var req createDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Title == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	discussion, err := h.forum.CreateDiscussion(c.Request.Context(), req.UserID, req.Author, req.Title, req.Content)
	if err != nil {
		logger.Error("create discussion failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create discussion"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "discussion": discussion})
}

type createCommentRequest struct {
	UserID        string `json:"user_id"`
	PostID        string `json:"post_id"`
	Content       string `json:"content"`
	CommentsCount int    `json:"comments_count"`
}

func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.PostID == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	comment, err := h.forum.CreateComment(c.Request.Context(), req.UserID, req.PostID, req.Content, req.CommentsCount)
	if err != nil {
		logger.Error("create comment failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
