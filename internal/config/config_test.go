package config

import (
	"os"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestLoadAndValidate(t *testing.T) {
	content := `
binance:
  spot_api_url: "https://api.binance.com"
  futures_api_url: "https://fapi.binance.com"
  timeout: 10s

universe:
  refresh_schedule: "0 3 * * *"

telegram:
  bot_token: "test_token"
  chat_id: "12345"
  enabled: true

logging:
  level: "info"
  format: "json"
`
	path := writeTempConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Binance.SpotAPIURL != "https://api.binance.com" {
		t.Errorf("Unexpected spot API URL: %s", cfg.Binance.SpotAPIURL)
	}
	if cfg.Binance.Timeout != 10*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.Binance.Timeout)
	}
	if cfg.Universe.RefreshSchedule != "0 3 * * *" {
		t.Errorf("Unexpected refresh schedule: %s", cfg.Universe.RefreshSchedule)
	}
	if cfg.Telegram.ChatID != "12345" {
		t.Errorf("Unexpected chat ID: %s", cfg.Telegram.ChatID)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed on valid config: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	// A minimal file should fall back to defaults for everything else.
	content := `
telegram:
  enabled: false
`
	path := writeTempConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Binance.SpotAPIURL != "https://api.binance.com" {
		t.Errorf("Expected default spot API URL, got %s", cfg.Binance.SpotAPIURL)
	}
	if cfg.Binance.FuturesAPIURL != "https://fapi.binance.com" {
		t.Errorf("Expected default futures API URL, got %s", cfg.Binance.FuturesAPIURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed on defaulted config: %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Binance: BinanceConfig{
				SpotAPIURL:    "https://api.binance.com",
				FuturesAPIURL: "https://fapi.binance.com",
				Timeout:       10 * time.Second,
			},
			Universe: UniverseConfig{RefreshSchedule: "0 3 * * *"},
			Telegram: TelegramConfig{Enabled: false},
			Logging:  LoggingConfig{Level: "info", Format: "json"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing spot URL", func(c *Config) { c.Binance.SpotAPIURL = "" }},
		{"missing futures URL", func(c *Config) { c.Binance.FuturesAPIURL = "" }},
		{"timeout too small", func(c *Config) { c.Binance.Timeout = 100 * time.Millisecond }},
		{"missing refresh schedule", func(c *Config) { c.Universe.RefreshSchedule = "" }},
		{"telegram enabled without token", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.ChatID = "12345"
		}},
		{"telegram enabled without chat ID", func(c *Config) {
			c.Telegram.Enabled = true
			c.Telegram.BotToken = "token"
		}},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
