// Package config loads brainbites settings from defaults, an optional YAML
// file, a .env file and BRAINBITES_* environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration
type Config struct {
	Database     DatabaseConfig     `koanf:"database"`
	Log          LogConfig          `koanf:"log"`
	Gamification GamificationConfig `koanf:"gamification"`
	Reminders    RemindersConfig    `koanf:"reminders"`
	Metrics      MetricsConfig      `koanf:"metrics"`
	Persistence  PersistenceConfig  `koanf:"persistence"`
}

// DatabaseConfig selects the storage backend
type DatabaseConfig struct {
	Type string `koanf:"type"` // sqlite or postgres
	Path string `koanf:"path"` // sqlite file
	DSN  string `koanf:"dsn"`  // postgres connection string
}

type LogConfig struct {
	Mode  string `koanf:"mode"` // development or production
	Level string `koanf:"level"`
}

type GamificationConfig struct {
	DailyGoal int `koanf:"daily_goal"`
}

// RemindersConfig controls streak reminders sent by the daemon
type RemindersConfig struct {
	Enabled        bool   `koanf:"enabled"`
	StartHour      int    `koanf:"start_hour"` // Local hour, inclusive
	EndHour        int    `koanf:"end_hour"`   // Local hour, exclusive
	TelegramToken  string `koanf:"telegram_token"`
	TelegramChatID int64  `koanf:"telegram_chat_id"`
}

type MetricsConfig struct {
	Addr string `koanf:"addr"` // Empty disables the /metrics endpoint
}

type PersistenceConfig struct {
	FlushInterval time.Duration `koanf:"flush_interval"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type: "sqlite",
			Path: "data/brainbites.db",
		},
		Log: LogConfig{
			Mode:  "development",
			Level: "info",
		},
		Gamification: GamificationConfig{
			DailyGoal: 20,
		},
		Reminders: RemindersConfig{
			Enabled:   true,
			StartHour: 9,
			EndHour:   21,
		},
		Persistence: PersistenceConfig{
			FlushInterval: time.Minute,
		},
	}
}

// Validate checks the configuration for values the app cannot run with
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if c.Gamification.DailyGoal <= 0 {
		return fmt.Errorf("gamification.daily_goal must be positive, got %d", c.Gamification.DailyGoal)
	}

	r := c.Reminders
	if r.StartHour < 0 || r.StartHour > 23 || r.EndHour < 1 || r.EndHour > 24 {
		return fmt.Errorf("reminder hours must be within 0-24, got %d-%d", r.StartHour, r.EndHour)
	}
	if r.StartHour >= r.EndHour {
		return fmt.Errorf("reminders.start_hour must be before reminders.end_hour")
	}
	if r.TelegramToken != "" && r.TelegramChatID == 0 {
		return fmt.Errorf("reminders.telegram_chat_id is required with a telegram token")
	}

	if c.Persistence.FlushInterval <= 0 {
		return fmt.Errorf("persistence.flush_interval must be positive")
	}
	return nil
}
