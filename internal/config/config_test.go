package config_test

import (
	"testing"
	"time"

	"journeys/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("FLUSH_DEBOUNCE_MS", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "journeys.db" {
		t.Errorf("DatabaseURL: got %q, want journeys.db", cfg.DatabaseURL)
	}
	if cfg.FlushDebounce != 500*time.Millisecond {
		t.Errorf("FlushDebounce: got %v, want 500ms", cfg.FlushDebounce)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.TelegramToken != "" || cfg.TelegramChatID != 0 {
		t.Errorf("telegram settings should default to empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "data/journeys.db")
	t.Setenv("TELEGRAM_TOKEN", "token123")
	t.Setenv("TELEGRAM_CHAT_ID", "-1009")
	t.Setenv("FLUSH_DEBOUNCE_MS", "250")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "data/journeys.db" {
		t.Errorf("DatabaseURL: got %q", cfg.DatabaseURL)
	}
	if cfg.TelegramToken != "token123" {
		t.Errorf("TelegramToken: got %q", cfg.TelegramToken)
	}
	if cfg.TelegramChatID != -1009 {
		t.Errorf("TelegramChatID: got %d, want -1009", cfg.TelegramChatID)
	}
	if cfg.FlushDebounce != 250*time.Millisecond {
		t.Errorf("FlushDebounce: got %v, want 250ms", cfg.FlushDebounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	t.Setenv("FLUSH_DEBOUNCE_MS", "-5")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramChatID != 0 {
		t.Errorf("TelegramChatID: got %d, want 0", cfg.TelegramChatID)
	}
	if cfg.FlushDebounce != 500*time.Millisecond {
		t.Errorf("FlushDebounce: got %v, want default 500ms", cfg.FlushDebounce)
	}
}
