package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shiviagarwalwork/brainbites/internal/config"
)

// MemoryPath opens a private in-memory sqlite database
const MemoryPath = ":memory:"

// Connect opens the configured database and creates the schema
func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch cfg.Type {
	case "postgres":
		db, err = sqlx.Connect("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	case "sqlite", "":
		if cfg.Path != MemoryPath {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		// SQLite doesn't support multiple writers, and an in-memory
		// database only lives as long as its single connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema(db *sqlx.DB) error {
	// One JSON document per persisted store
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			name TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}

	// Card catalog
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cards (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT,
			author_name TEXT,
			payload TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create cards table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_cards_category ON cards (category)`)
	if err != nil {
		return fmt.Errorf("failed to create cards index: %w", err)
	}

	return nil
}
