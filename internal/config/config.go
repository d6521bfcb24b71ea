// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned by Load when TRACKER_TELEGRAM_TOKEN is unset.
var ErrMissingToken = errors.New("please set the TRACKER_TELEGRAM_TOKEN environment variable")

// Config holds the application configuration loaded from environment variables.
type Config struct {
	TelegramToken string
	PollTimeout   time.Duration
	DBPath        string
	ListenAddr    string
	LogLevel      slog.Level
	AMQPURL       string
	AMQPExchange  string
}

// HasHTTP reports whether the HTTP surface should be started.
func (c *Config) HasHTTP() bool {
	return c.ListenAddr != ""
}

// HasAMQP reports whether ledger events should be published to a broker.
func (c *Config) HasAMQP() bool {
	return c.AMQPURL != ""
}

// LoadDotEnv reads KEY=value pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// TRACKER_TELEGRAM_TOKEN is required. Optional variables with defaults:
// BUDGETBOT_DB_PATH (expense_tracker.db), BUDGETBOT_LISTEN_ADDR (127.0.0.1:8080,
// empty disables HTTP), BUDGETBOT_POLL_TIMEOUT (60s), BUDGETBOT_LOG_LEVEL (info),
// BUDGETBOT_AMQP_URL (unset), BUDGETBOT_AMQP_EXCHANGE (budgetbot).
func Load() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("TRACKER_TELEGRAM_TOKEN"))
	if token == "" {
		return nil, ErrMissingToken
	}

	pollTimeout := 60 * time.Second
	if v, ok := os.LookupEnv("BUDGETBOT_POLL_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("BUDGETBOT_POLL_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed < time.Second || parsed > 10*time.Minute {
			return nil, fmt.Errorf("BUDGETBOT_POLL_TIMEOUT %s must be between 1s and 10m", parsed)
		}
		pollTimeout = parsed.Truncate(time.Second)
	}

	dbPath := "expense_tracker.db"
	if v, ok := os.LookupEnv("BUDGETBOT_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("BUDGETBOT_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("BUDGETBOT_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("BUDGETBOT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	amqpURL := os.Getenv("BUDGETBOT_AMQP_URL")
	if amqpURL != "" {
		parsed, err := url.Parse(amqpURL)
		if err != nil {
			return nil, fmt.Errorf("BUDGETBOT_AMQP_URL is invalid: %w", err)
		}
		if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			return nil, fmt.Errorf("BUDGETBOT_AMQP_URL scheme %q must be amqp or amqps", parsed.Scheme)
		}
	}

	amqpExchange := "budgetbot"
	if v, ok := os.LookupEnv("BUDGETBOT_AMQP_EXCHANGE"); ok && v != "" {
		amqpExchange = v
	}

	return &Config{
		TelegramToken: token,
		PollTimeout:   pollTimeout,
		DBPath:        dbPath,
		ListenAddr:    listenAddr,
		LogLevel:      logLevel,
		AMQPURL:       amqpURL,
		AMQPExchange:  amqpExchange,
	}, nil
}
