package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetCookie_Attributes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SetCookie(rec, "tok-value", CookieOptions{Secure: true})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	require.Equal(t, CookieName, c.Name)
	require.Equal(t, "tok-value", c.Value)
	require.Equal(t, "/", c.Path)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, http.SameSiteStrictMode, c.SameSite)
	// session cookie: no explicit lifetime
	require.Zero(t, c.MaxAge)
	require.True(t, c.Expires.IsZero())
}

func TestClearCookie_ExpiresImmediately(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ClearCookie(rec, CookieOptions{})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	c := cookies[0]
	require.Equal(t, CookieName, c.Name)
	require.Empty(t, c.Value)
	require.Less(t, c.MaxAge, 0)
	require.True(t, c.Expires.Before(time.Now()))
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := TokenFromRequest(r)
	require.False(t, ok)

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	tok, ok := TokenFromRequest(r)
	require.True(t, ok)
	require.Equal(t, "abc", tok)
}

func TestTokenFromRequest_EmptyValue(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: ""})

	_, ok := TokenFromRequest(r)
	require.False(t, ok)
}
