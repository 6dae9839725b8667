package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the app.
type Config struct {
	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
	FlushDebounce  time.Duration
	LogLevel       string
}

// Load reads configuration from environment variables with sane defaults.
// The Telegram settings are optional; without them reset notifications are
// disabled.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		TelegramChatID: parseInt64(strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))),
		FlushDebounce:  parseMillis(strings.TrimSpace(os.Getenv("FLUSH_DEBOUNCE_MS"))),
		LogLevel:       strings.TrimSpace(os.Getenv("LOG_LEVEL")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "journeys.db"
	}

	if cfg.FlushDebounce == 0 {
		cfg.FlushDebounce = 500 * time.Millisecond
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func parseInt64(raw string) int64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseMillis(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
