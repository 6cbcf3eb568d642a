package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// RecordRepository stores named JSON documents
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new repository instance
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Get returns the payload stored under name
func (r *RecordRepository) Get(ctx context.Context, name string) ([]byte, error) {
	var payload string
	err := r.db.GetContext(ctx, &payload, r.db.Rebind("SELECT payload FROM records WHERE name = ?"), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", name, err)
	}
	return []byte(payload), nil
}

// Set inserts or replaces the payload stored under name
func (r *RecordRepository) Set(ctx context.Context, name string, payload []byte) error {
	query := r.db.Rebind(`
		INSERT INTO records (name, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`)
	if _, err := r.db.ExecContext(ctx, query, name, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set record %s: %w", name, err)
	}
	return nil
}

// Remove deletes the record stored under name. Missing records are ignored.
func (r *RecordRepository) Remove(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM records WHERE name = ?"), name); err != nil {
		return fmt.Errorf("failed to remove record %s: %w", name, err)
	}
	return nil
}

// Names lists the stored record names
func (r *RecordRepository) Names(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, "SELECT name FROM records ORDER BY name"); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return names, nil
}
