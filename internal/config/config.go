package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration. Only operational
// settings live here; the signal thresholds are fixed constants owned by the
// monitor package.
type Config struct {
	Binance  BinanceConfig  `mapstructure:"binance"`
	Universe UniverseConfig `mapstructure:"universe"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// BinanceConfig holds Binance API configuration.
type BinanceConfig struct {
	SpotAPIURL    string        `mapstructure:"spot_api_url"`
	FuturesAPIURL string        `mapstructure:"futures_api_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// UniverseConfig holds the futures symbol universe refresh configuration.
type UniverseConfig struct {
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// TelegramConfig holds Telegram notification configuration.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Enabled  bool   `mapstructure:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	v.SetEnvPrefix("ORDERPULSE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("binance.spot_api_url", "https://api.binance.com")
	v.SetDefault("binance.futures_api_url", "https://fapi.binance.com")
	v.SetDefault("binance.timeout", "10s")

	// Daily refresh of the tradable futures symbol set.
	v.SetDefault("universe.refresh_schedule", "0 3 * * *")

	v.SetDefault("telegram.enabled", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Binance.SpotAPIURL == "" {
		return fmt.Errorf("binance.spot_api_url is required")
	}
	if c.Binance.FuturesAPIURL == "" {
		return fmt.Errorf("binance.futures_api_url is required")
	}
	if c.Binance.Timeout < time.Second {
		return fmt.Errorf("binance.timeout must be at least 1 second")
	}

	if c.Universe.RefreshSchedule == "" {
		return fmt.Errorf("universe.refresh_schedule is required")
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
