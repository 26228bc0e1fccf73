package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the portal reads from the environment.
// The portal itself stores nothing but sessions; all data lives behind APIBaseURL.
type Config struct {
	Addr       string
	APIBaseURL string
	DBDSN      string

	CookieSecret []byte
	SecureCookie bool
	SessionTTL   time.Duration

	RequestTimeout time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		Addr:           getenv("ADDR", ":8080"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		DBDSN:          os.Getenv("DB_DSN"),
		SecureCookie:   getenvBool("SECURE_COOKIE", false),
		SessionTTL:     getenvDuration("SESSION_TTL", 720*time.Hour),
		RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, fmt.Errorf("API_BASE_URL environment variable is required")
	}
	if cfg.DBDSN == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}

	secret := os.Getenv("COOKIE_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("COOKIE_SECRET environment variable is required")
	}
	cfg.CookieSecret = []byte(secret)

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
