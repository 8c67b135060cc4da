package app

import (
	"context"
	"net/http"
	"time"

	"threadly/internal/auth/handler"
	"threadly/internal/auth/provider"
	"threadly/internal/auth/provider/google"
	"threadly/internal/auth/resolver"
	"threadly/internal/config"
	"threadly/internal/forum"
	"threadly/internal/middleware"
	"threadly/internal/session"
	"threadly/internal/sheets"
	"threadly/internal/token"
	"threadly/internal/users"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	// ----------------------------
	// Dependencies
	// ----------------------------

	upstream := &http.Client{Timeout: 15 * time.Second}
	sheetsClient := sheets.NewClient(cfg.SheetsAPIURL, cfg.SheetID, upstream)

	userService := users.NewService(sheetsClient)
	forumService := forum.NewService(sheetsClient)

	tokenService, err := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, err
	}

	cookieOpts := session.CookieOptions{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Production(),
		SameSite: http.SameSiteStrictMode,
	}

	// OAuth login is optional; without Google credentials the routes
	// are simply not registered.
	var registry *provider.Registry
	var identityResolver resolver.Resolver
	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		registry = provider.NewRegistry(googleProvider)
		identityResolver = resolver.NewSheetResolver(userService)
	}

	authHandler := handler.NewHandler(
		tokenService,
		userService,
		registry,
		identityResolver,
		cookieOpts,
	)
	forumHandler := forum.NewHandler(forumService)
	userHandler := users.NewHandler(userService)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)
	forumHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected Routes
	// ----------------------------

	user := router.Group("/api/user")
	user.Use(middleware.GinRequireAuth(authMiddleware))

	user.POST("/update", userHandler.Update)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		upstream.CloseIdleConnections()
		return nil
	}, nil
}
