package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingSecretFailsHard(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.False(t, cfg.Production())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SHEETS_API_URL", "https://sheets.example.com/exec")
	t.Setenv("SHEET_ID", "sheet-42")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.AppPort)
	require.True(t, cfg.Production())
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, "https://sheets.example.com/exec", cfg.SheetsAPIURL)
	require.Equal(t, "sheet-42", cfg.SheetID)
}

func TestLoad_BadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
