package faq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/vendor-insights/internal/db"
	"github.com/jonathan/vendor-insights/internal/types"
	"go.uber.org/zap"
)

// maxInsertAttempts bounds id-collision retries against the database.
const maxInsertAttempts = 5

// Repository is the subset of *db.DB used by PostgresStore.
type Repository interface {
	ListFAQItems(ctx context.Context) ([]db.FAQItemRow, error)
	InsertFAQItem(ctx context.Context, item db.FAQItemRow) (*db.FAQItemRow, error)
}

// PostgresStore keeps FAQ items in the faq_items table. It follows the CSVStore contract
// and id scheme.
type PostgresStore struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	lastMillis int64
}

// NewPostgresStore creates a store over repo.
func NewPostgresStore(repo Repository, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{repo: repo, logger: logger, now: time.Now}
}

// List returns every stored item in insertion order.
func (s *PostgresStore) List(ctx context.Context) ([]types.FAQItem, error) {
	rows, err := s.repo.ListFAQItems(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read", Cause: err}
	}

	items := make([]types.FAQItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, fromRow(row))
	}
	return items, nil
}

// Create validates req and inserts it, retrying with a later id on collision.
func (s *PostgresStore) Create(ctx context.Context, req types.CreateFAQRequest) (*types.FAQItem, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return nil, err
	}

	row := db.FAQItemRow{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
	}

	for attempt := 0; attempt < maxInsertAttempts; attempt++ {
		row.ID = s.nextID()
		created, err := s.repo.InsertFAQItem(ctx, row)
		if errors.Is(err, db.ErrDuplicateID) {
			s.logger.Debug("faq id collision, retrying", zap.String("id", row.ID))
			continue
		}
		if err != nil {
			return nil, &StorageError{Op: "write", Cause: err}
		}

		item := fromRow(*created)
		s.logger.Info("faq item created", zap.String("id", item.ID), zap.String("category", item.Category))
		return &item, nil
	}

	return nil, &StorageError{Op: "write", Cause: fmt.Errorf("no free id after %d attempts", maxInsertAttempts)}
}

func (s *PostgresStore) nextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastMillis {
		ms = s.lastMillis + 1
	}
	s.lastMillis = ms
	return fmt.Sprintf("%s%d", IDPrefix, ms)
}

func fromRow(row db.FAQItemRow) types.FAQItem {
	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}
	return types.FAQItem{
		ID:       row.ID,
		Question: row.Question,
		Answer:   row.Answer,
		Category: row.Category,
		Tags:     tags,
	}
}
