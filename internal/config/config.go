package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	AppPort string
	AppEnv  string

	JWTSecret string
	TokenTTL  time.Duration

	SheetsAPIURL string
	SheetID      string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

var ErrMissingSecret = errors.New("config: JWT_SECRET must be set")

func Load() (Config, error) {

	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Hour,

		SheetsAPIURL: os.Getenv("SHEETS_API_URL"),
		SheetID:      os.Getenv("SHEET_ID"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	}

	// An unset secret must never silently degrade to a forgeable
	// empty-string key.
	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingSecret
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.New("config: invalid TOKEN_TTL: " + raw)
		}
		cfg.TokenTTL = ttl
	}

	return cfg, nil
}

// Production reports whether Secure cookie attributes should be applied.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
