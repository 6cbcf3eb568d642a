package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLegacyEnv(t *testing.T) {
	t.Setenv("DB_TYPE", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearLegacyEnv(t)
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearLegacyEnv(t)
	path := writeFile(t, "config.yaml", `
database:
  type: postgres
  dsn: postgres://localhost/brainbites
gamification:
  daily_goal: 10
persistence:
  flush_interval: 30s
reminders:
  start_hour: 8
  end_hour: 20
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 10, cfg.Gamification.DailyGoal)
	assert.Equal(t, 30*time.Second, cfg.Persistence.FlushInterval)
	assert.Equal(t, 8, cfg.Reminders.StartHour)
	// Untouched keys keep their defaults
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearLegacyEnv(t)
	path := writeFile(t, "config.yaml", "log:\n  level: warn\n")
	t.Setenv("BRAINBITES_LOG_LEVEL", "debug")
	t.Setenv("BRAINBITES_GAMIFICATION_DAILY_GOAL", "35")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 35, cfg.Gamification.DailyGoal)
}

func TestLoad_DotEnv(t *testing.T) {
	clearLegacyEnv(t)
	// Setenv restores the variable afterwards; godotenv only fills unset ones
	t.Setenv("BRAINBITES_METRICS_ADDR", "")
	os.Unsetenv("BRAINBITES_METRICS_ADDR")
	envFile := writeFile(t, ".env", "BRAINBITES_METRICS_ADDR=:9100\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	clearLegacyEnv(t)
	_, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearLegacyEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}

func TestLoad_LegacyEnv(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Reminders.TelegramToken)
	assert.Equal(t, int64(42), cfg.Reminders.TelegramChatID)
}

func TestLoad_LegacyDatabaseType(t *testing.T) {
	t.Run("fills an unset type", func(t *testing.T) {
		clearLegacyEnv(t)
		t.Setenv("DB_TYPE", "postgres")
		t.Setenv("BRAINBITES_DATABASE_DSN", "postgres://localhost/brainbites")

		cfg, err := Load("", "")
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Type)
	})

	t.Run("yaml type wins", func(t *testing.T) {
		clearLegacyEnv(t)
		t.Setenv("DB_TYPE", "postgres")
		path := writeFile(t, "config.yaml", "database:\n  type: sqlite\n  path: bites.db\n")

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Type)
		assert.Equal(t, "bites.db", cfg.Database.Path)
	})

	t.Run("yaml telegram keys win", func(t *testing.T) {
		clearLegacyEnv(t)
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:legacy")
		t.Setenv("TELEGRAM_CHAT_ID", "42")
		path := writeFile(t, "config.yaml", "reminders:\n  telegram_token: \"456:yaml\"\n  telegram_chat_id: 7\n")

		cfg, err := Load(path, "")
		require.NoError(t, err)
		assert.Equal(t, "456:yaml", cfg.Reminders.TelegramToken)
		assert.Equal(t, int64(7), cfg.Reminders.TelegramChatID)
	})

	t.Run("prefixed env wins", func(t *testing.T) {
		clearLegacyEnv(t)
		t.Setenv("DB_TYPE", "postgres")
		t.Setenv("BRAINBITES_DATABASE_TYPE", "sqlite")

		cfg, err := Load("", "")
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Type)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown db", func(c *Config) { c.Database.Type = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Database.Type = "postgres" }},
		{"zero goal", func(c *Config) { c.Gamification.DailyGoal = 0 }},
		{"inverted hours", func(c *Config) { c.Reminders.StartHour, c.Reminders.EndHour = 20, 8 }},
		{"token without chat", func(c *Config) { c.Reminders.TelegramToken = "x" }},
		{"zero flush", func(c *Config) { c.Persistence.FlushInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.type", envKey("BRAINBITES_DATABASE_TYPE"))
	assert.Equal(t, "reminders.telegram_chat_id", envKey("BRAINBITES_REMINDERS_TELEGRAM_CHAT_ID"))
}
