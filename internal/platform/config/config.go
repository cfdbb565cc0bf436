package config

import (
	"os"
	"path/filepath"
	"time"
)

// Client captures client-side configuration for the LoanLink portal.
type Client struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	IdleTimeout     time.Duration
	IdleWarning     time.Duration
	TickInterval    time.Duration
	CredentialsFile string
	DefaultRole     string
}

// Stub captures configuration for the development stub backend.
type Stub struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration
}

// Idle policy defaults: 30 minutes of inactivity ends the session, a warning
// fires 5 minutes before that, and the monitor checks once per minute.
const (
	DefaultIdleTimeout  = 30 * time.Minute
	DefaultIdleWarning  = 5 * time.Minute
	DefaultTickInterval = time.Minute
)

// FromEnv builds a Client config from environment variables so callers stay lean.
func FromEnv() Client {
	cfg := Client{
		APIBaseURL:      os.Getenv("LOANLINK_API_URL"),
		RequestTimeout:  15 * time.Second,
		IdleTimeout:     DefaultIdleTimeout,
		IdleWarning:     DefaultIdleWarning,
		TickInterval:    DefaultTickInterval,
		CredentialsFile: os.Getenv("LOANLINK_CREDENTIALS_FILE"),
		DefaultRole:     "borrower",
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000"
	}
	if cfg.CredentialsFile == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.CredentialsFile = filepath.Join(home, ".loanlink", "credentials.json")
		}
	}
	cfg.RequestTimeout = durationFromEnv("LOANLINK_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.IdleTimeout = durationFromEnv("LOANLINK_IDLE_TIMEOUT", cfg.IdleTimeout)
	cfg.IdleWarning = durationFromEnv("LOANLINK_IDLE_WARNING", cfg.IdleWarning)
	cfg.TickInterval = durationFromEnv("LOANLINK_TICK", cfg.TickInterval)
	return cfg
}

// StubFromEnv builds the stub backend config from environment variables.
func StubFromEnv() Stub {
	addr := os.Getenv("LOANLINK_STUB_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	key := os.Getenv("LOANLINK_STUB_JWT_KEY")
	if key == "" {
		// Use a default for development - should be overridden when exposed
		key = "dev-secret-key-change-in-production"
	}
	ttl := durationFromEnv("LOANLINK_STUB_TOKEN_TTL", 24*time.Hour)
	return Stub{Addr: addr, JWTSigningKey: key, TokenTTL: ttl}
}

func durationFromEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}
