package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// ErrDuplicateID is returned when an insert collides with an existing FAQ id.
var ErrDuplicateID = errors.New("faq item id already exists")

// FAQItemRow is a stored FAQ entry
type FAQItemRow struct {
	ID        string
	Question  string
	Answer    string
	Category  string
	Tags      []string
	CreatedAt time.Time
}

const faqSchema = `CREATE TABLE IF NOT EXISTS faq_items (
	id          TEXT PRIMARY KEY,
	question    TEXT NOT NULL,
	answer      TEXT NOT NULL,
	category    TEXT NOT NULL,
	tags        TEXT[] NOT NULL DEFAULT '{}',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureFAQSchema creates the faq_items table when missing.
func (db *DB) EnsureFAQSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, faqSchema); err != nil {
		return fmt.Errorf("failed to create faq_items table: %w", err)
	}
	return nil
}

// ListFAQItems returns every FAQ item in insertion order.
func (db *DB) ListFAQItems(ctx context.Context) ([]FAQItemRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, question, answer, category, tags, created_at
		 FROM faq_items ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list faq items: %w", err)
	}
	defer rows.Close()

	var items []FAQItemRow
	for rows.Next() {
		var item FAQItemRow
		if err := rows.Scan(&item.ID, &item.Question, &item.Answer, &item.Category, &item.Tags, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list faq items: %w", err)
	}
	return items, nil
}

// InsertFAQItem stores item. A primary key collision returns ErrDuplicateID so the caller
// can retry with a new id.
func (db *DB) InsertFAQItem(ctx context.Context, item FAQItemRow) (*FAQItemRow, error) {
	tags := item.Tags
	if tags == nil {
		tags = []string{}
	}

	out := item
	out.Tags = tags
	err := db.pool.QueryRow(ctx,
		`INSERT INTO faq_items (id, question, answer, category, tags)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		item.ID, item.Question, item.Answer, item.Category, tags,
	).Scan(&out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("failed to insert faq item: %w", err)
	}
	return &out, nil
}

// DeleteFAQItem removes an item by id.
func (db *DB) DeleteFAQItem(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM faq_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("faq item not found: %s", id)
	}
	return nil
}
