package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/shiviagarwalwork/brainbites/pkg/models"
)

// cardRow is the stored form of a card. Payload holds the full card as JSON;
// the other columns exist for filtering.
type cardRow struct {
	ID         string    `db:"id"`
	Type       string    `db:"type"`
	Category   string    `db:"category"`
	Difficulty string    `db:"difficulty"`
	Title      string    `db:"title"`
	Body       string    `db:"body"`
	AuthorName string    `db:"author_name"`
	Payload    string    `db:"payload"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r cardRow) card() (models.FeedCard, error) {
	var c models.FeedCard
	if err := json.Unmarshal([]byte(r.Payload), &c); err != nil {
		return c, fmt.Errorf("failed to decode card %s: %w", r.ID, err)
	}
	c.ID = r.ID
	return c, nil
}

// CardFilter narrows a card listing. Zero fields match everything.
type CardFilter struct {
	Category   models.Category
	Type       models.CardType
	Difficulty models.Difficulty
	Limit      int
}

// CardRepository handles database operations for the card catalog
type CardRepository struct {
	db *sqlx.DB
}

// NewCardRepository creates a new repository instance
func NewCardRepository(db *sqlx.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Upsert stores a card, reporting whether it was newly created
func (r *CardRepository) Upsert(ctx context.Context, card models.FeedCard) (bool, error) {
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(card)
	if err != nil {
		return false, fmt.Errorf("failed to encode card %s: %w", card.ID, err)
	}

	exists, err := r.Exists(ctx, card.ID)
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if exists {
		_, err = r.db.ExecContext(ctx, r.db.Rebind(`
			UPDATE cards SET type = ?, category = ?, difficulty = ?, title = ?, body = ?,
				author_name = ?, payload = ?, updated_at = ?
			WHERE id = ?
		`), card.Type, card.Category, card.Difficulty, card.Title, card.Body,
			card.AuthorName, string(payload), now, card.ID)
		if err != nil {
			return false, fmt.Errorf("failed to update card %s: %w", card.ID, err)
		}
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO cards (id, type, category, difficulty, title, body, author_name, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), card.ID, card.Type, card.Category, card.Difficulty, card.Title, card.Body,
		card.AuthorName, string(payload), card.CreatedAt, now)
	if err != nil {
		return false, fmt.Errorf("failed to create card %s: %w", card.ID, err)
	}
	return true, nil
}

// Exists reports whether a card id is stored
func (r *CardRepository) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind("SELECT COUNT(*) FROM cards WHERE id = ?"), id); err != nil {
		return false, fmt.Errorf("failed to check card %s: %w", id, err)
	}
	return n > 0, nil
}

// GetByID returns a card by its id
func (r *CardRepository) GetByID(ctx context.Context, id string) (models.FeedCard, error) {
	var row cardRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind("SELECT * FROM cards WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FeedCard{}, ErrNotFound
	}
	if err != nil {
		return models.FeedCard{}, fmt.Errorf("failed to get card by ID: %w", err)
	}
	return row.card()
}

// List returns cards matching f, oldest first
func (r *CardRepository) List(ctx context.Context, f CardFilter) ([]models.FeedCard, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.Difficulty != "" {
		where = append(where, "difficulty = ?")
		args = append(args, f.Difficulty)
	}

	query := "SELECT * FROM cards"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	var rows []cardRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	cards := make([]models.FeedCard, 0, len(rows))
	for _, row := range rows {
		c, err := row.card()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Count returns the number of stored cards
func (r *CardRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM cards"); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return n, nil
}

// Delete removes a card
func (r *CardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM cards WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
