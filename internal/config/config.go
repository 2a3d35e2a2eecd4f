package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"StockSentry/internal/model"
)

// Duration is a time.Duration that unmarshals from yaml strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Gateway struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"gateway"`
	AlphaVantage struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"alphavantage"`
	Monitor struct {
		Interval     Duration `yaml:"interval"`
		Cooldown     Duration `yaml:"cooldown"`
		HistoryRange string   `yaml:"history_range"`
	} `yaml:"monitor"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Alerts []model.AlertRule `yaml:"alerts"`
	Proxy  string            `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("GATEWAY_BASE_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("GATEWAY_API_KEY"); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("MONITOR_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Monitor.Interval = Duration(d)
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Monitor.Interval == 0 {
		cfg.Monitor.Interval = Duration(time.Minute)
	}
	if cfg.Monitor.Cooldown == 0 {
		cfg.Monitor.Cooldown = Duration(5 * time.Minute)
	}
	if cfg.Monitor.HistoryRange == "" {
		cfg.Monitor.HistoryRange = "6mo"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stock_sentry.db"
	}

	return cfg, nil
}

// Validate checks that required fields are set and tunables are sane.
// Telegram is optional: without it triggers still reach the process log.
func (c *Config) Validate() error {
	if c.Monitor.Interval.Std() < time.Second {
		return fmt.Errorf("monitor.interval must be at least 1s")
	}
	if c.Monitor.Cooldown.Std() < 0 {
		return fmt.Errorf("monitor.cooldown must not be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	return nil
}
