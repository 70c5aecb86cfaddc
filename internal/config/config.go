package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Session cookie
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool

	// JSON API
	APIKey string

	// Market quotes
	QuotesBaseURL     string
	QuotesTimeout     time.Duration
	QuotesHistoryDays int
}

// Load loads configuration from the .env file (when present) and the
// environment. Invalid durations and numbers are reported as errors.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Env:           getEnv("ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "fallback-session-secret-for-dev-only"),
		APIKey:        os.Getenv("API_KEY"),
		QuotesBaseURL: getEnv("QUOTES_BASE_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
	}

	var err error
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", "12h"); err != nil {
		return nil, err
	}
	if cfg.QuotesTimeout, err = parseDuration("QUOTES_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	secure, err := parseBool(getEnv("SESSION_COOKIE_SECURE", ""), cfg.Env == "production")
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE value: %w", err)
	}
	cfg.SessionCookieSecure = secure

	days, err := strconv.Atoi(getEnv("QUOTES_HISTORY_DAYS", "7"))
	if err != nil || days < 2 {
		return nil, fmt.Errorf("invalid QUOTES_HISTORY_DAYS %q: must be an integer >= 2", os.Getenv("QUOTES_HISTORY_DAYS"))
	}
	cfg.QuotesHistoryDays = days

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseBool(s string, defaultVal bool) (bool, error) {
	if s == "" {
		return defaultVal, nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}
