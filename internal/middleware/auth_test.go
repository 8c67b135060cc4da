package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"threadly/internal/middleware"
	"threadly/internal/session"
	"threadly/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T) (*gin.Engine, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := token.NewService("test-secret", time.Hour)
	require.NoError(t, err)

	auth := middleware.NewAuthMiddleware(tokens)

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(middleware.GinRequireAuth(auth))
	protected.GET("/me", func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID})
	})

	return router, tokens
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	router, tokens := newProtectedRouter(t)

	signed, err := tokens.Issue(token.Claims{UserID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signed})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"id":"u1"`)
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	t.Parallel()

	router, _ := newProtectedRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "Not authenticated")
}

func TestRequireAuth_BadToken(t *testing.T) {
	t.Parallel()

	router, _ := newProtectedRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "bogus"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ForeignSecret(t *testing.T) {
	t.Parallel()

	router, _ := newProtectedRouter(t)

	other, err := token.NewService("different-secret", time.Hour)
	require.NoError(t, err)
	signed, err := other.Issue(token.Claims{UserID: "u1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signed})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
