package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T, secret string) *Service {
	t.Helper()
	svc, err := NewService(secret, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewService_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewService("", time.Hour)
	require.Error(t, err)
}

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := testService(t, "super-secret")

	issued := Claims{
		UserID:       "user-123",
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		UserCreated:  "2025-01-01T00:00:00Z",
	}

	tok, err := svc.Issue(issued)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, issued.UserID, got.UserID)
	require.Equal(t, issued.Name, got.Name)
	require.Equal(t, issued.Email, got.Email)
	require.Equal(t, issued.PasswordHash, got.PasswordHash)
	require.Equal(t, issued.UserCreated, got.UserCreated)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	svc := testService(t, secret)

	// Sign an already-expired token with the same secret: the
	// signature is correct, only the validity window has passed.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
		UserID: "u1",
	})
	raw, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := testService(t, "secret")

	tok, err := svc.Issue(Claims{UserID: "u1", Email: "a@x.com"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// flip one byte of the payload segment
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	parts[1] = string(payload)

	_, err = svc.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := testService(t, "right-secret").Issue(Claims{UserID: "u2"})
	require.NoError(t, err)

	_, err = testService(t, "wrong-secret").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := testService(t, "k")

	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
