package handler

import (
	"threadly/internal/auth/provider"
	"threadly/internal/auth/resolver"
	"threadly/internal/session"
	"threadly/internal/token"
	"threadly/internal/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	tokens     *token.Service
	users      *users.Service
	providers  *provider.Registry
	resolver   resolver.Resolver
	cookieOpts session.CookieOptions
}

func NewHandler(
	tokens *token.Service,
	userService *users.Service,
	registry *provider.Registry,
	identityResolver resolver.Resolver,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		tokens:     tokens,
		users:      userService,
		providers:  registry,
		resolver:   identityResolver,
		cookieOpts: cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/check", h.Check)

	if h.providers != nil {
		r.GET("/oauth/login/:provider", h.oauthLogin)
		r.GET("/oauth/callback/:provider", h.oauthCallback)
	}
}
