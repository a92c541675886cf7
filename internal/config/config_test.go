package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Feeds.ClosePriceDays != 15 {
		t.Errorf("close_price_days = %d, want 15", cfg.Feeds.ClosePriceDays)
	}
	want := []float64{1.5, 1.35, 1.2}
	if len(cfg.Leverage.Ratios) != len(want) {
		t.Fatalf("ratios = %v, want %v", cfg.Leverage.Ratios, want)
	}
	for i, r := range want {
		if cfg.Leverage.Ratios[i] != r {
			t.Errorf("ratios[%d] = %v, want %v", i, cfg.Leverage.Ratios[i], r)
		}
	}
	if cfg.Schedule.RefreshCron == "" {
		t.Error("refresh cron default missing")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "telegram:\n  bot_token: from-file\n  chat_id: \"42\"\nfeeds:\n  close_price_days: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("bot token = %q, want env override", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "42" {
		t.Errorf("chat id = %q, want 42", cfg.Telegram.ChatID)
	}
	if cfg.Feeds.ClosePriceDays != 7 {
		t.Errorf("close_price_days = %d, want 7", cfg.Feeds.ClosePriceDays)
	}
}

func TestValidate_RejectsNonPositiveRatio(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "chat"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	cfg.Leverage.Ratios = []float64{1.5, 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected zero ratio to fail validation")
	}
}
