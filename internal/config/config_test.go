package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentry/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAMLWithAlerts(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: tok
  chat_id: "123"
monitor:
  interval: 30s
  cooldown: 10m
  history_range: 1y
database:
  sqlite_path: /tmp/sentry.db
alerts:
  - id: a1
    symbol: AAPL
    indicator:
      kind: RSI
      period: 14
    condition: BELOW
    targetValue: 30
    hasTarget: true
    active: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", cfg.Telegram.BotToken)
	assert.Equal(t, 30*time.Second, cfg.Monitor.Interval.Std())
	assert.Equal(t, 10*time.Minute, cfg.Monitor.Cooldown.Std())
	assert.Equal(t, "1y", cfg.Monitor.HistoryRange)
	assert.Equal(t, "/tmp/sentry.db", cfg.Database.SQLitePath)

	require.Len(t, cfg.Alerts, 1)
	got := cfg.Alerts[0]
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, model.KindRSI, got.Indicator.Kind)
	assert.Equal(t, 14, got.Indicator.Period)
	assert.Equal(t, model.CondBelow, got.Condition)
	assert.Equal(t, 30.0, got.TargetValue)
	assert.True(t, got.HasTarget)
	assert.True(t, got.Active)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Monitor.Interval.Std())
	assert.Equal(t, 5*time.Minute, cfg.Monitor.Cooldown.Std())
	assert.Equal(t, "6mo", cfg.Monitor.HistoryRange)
	assert.Equal(t, "data/stock_sentry.db", cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-tok")
	t.Setenv("TELEGRAM_CHAT_ID", "env-chat")
	t.Setenv("MONITOR_INTERVAL", "2m")
	t.Setenv("SQLITE_PATH", "/tmp/env.db")

	path := writeConfig(t, `
telegram:
  bot_token: yaml-tok
  chat_id: yaml-chat
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-tok", cfg.Telegram.BotToken)
	assert.Equal(t, "env-chat", cfg.Telegram.ChatID)
	assert.Equal(t, 2*time.Minute, cfg.Monitor.Interval.Std())
	assert.Equal(t, "/tmp/env.db", cfg.Database.SQLitePath)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "monitor: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_Errors(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	cfg.Monitor.Interval = Duration(100 * time.Millisecond)
	assert.Error(t, cfg.Validate())

	cfg.Monitor.Interval = Duration(time.Minute)
	cfg.Telegram.BotToken = "tok"
	cfg.Telegram.ChatID = ""
	assert.Error(t, cfg.Validate())
}
