// Package faq stores the help-center questions and answers shown beside the dashboard.
package faq

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/jonathan/vendor-insights/internal/types"
	"go.uber.org/zap"
)

// IDPrefix starts every generated FAQ id
const IDPrefix = "custom-faq-"

// lockRetryDelay is how often a blocked writer polls the file lock
const lockRetryDelay = 10 * time.Millisecond

var header = []string{"id", "question", "answer", "category", "tags"}

// Store lists and creates FAQ items.
type Store interface {
	List(ctx context.Context) ([]types.FAQItem, error)
	Create(ctx context.Context, req types.CreateFAQRequest) (*types.FAQItem, error)
}

// CSVStore keeps FAQ items in a single CSV file. Writes rewrite the whole file under an
// in-process mutex and a file lock so concurrent writers never drop each other's rows.
type CSVStore struct {
	path   string
	lock   *flock.Flock
	logger *zap.Logger
	now    func() time.Time

	mu         sync.Mutex
	lastMillis int64
}

// NewCSVStore creates a store over path. The file is created on the first write.
func NewCSVStore(path string, logger *zap.Logger) *CSVStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVStore{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logger,
		now:    time.Now,
	}
}

// Path returns the CSV file location.
func (s *CSVStore) Path() string {
	return s.path
}

// List returns every stored item. A missing or header-only file yields an empty list.
func (s *CSVStore) List(_ context.Context) ([]types.FAQItem, error) {
	items, err := s.read()
	if err != nil {
		return nil, &StorageError{Op: "read", Cause: err}
	}
	return items, nil
}

// Create validates req, assigns an id and appends the item.
func (s *CSVStore) Create(ctx context.Context, req types.CreateFAQRequest) (*types.FAQItem, error) {
	req = Normalize(req)
	if err := Validate(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, &StorageError{Op: "write", Cause: err}
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, &StorageError{Op: "lock", Cause: err}
	}
	if !locked {
		return nil, &StorageError{Op: "lock", Cause: fmt.Errorf("could not lock %s", s.lock.Path())}
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release FAQ file lock", zap.String("path", s.lock.Path()), zap.Error(err))
		}
	}()

	items, err := s.read()
	if err != nil {
		return nil, &StorageError{Op: "read", Cause: err}
	}

	item := types.FAQItem{
		ID:       s.nextID(items),
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
		Tags:     req.Tags,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}

	if err := s.write(append(items, item)); err != nil {
		return nil, &StorageError{Op: "write", Cause: err}
	}

	s.logger.Info("faq item created",
		zap.String("id", item.ID),
		zap.String("category", item.Category),
		zap.Int("total", len(items)+1),
	)
	return &item, nil
}

// nextID returns a millisecond id not used by existing or previously issued items.
func (s *CSVStore) nextID(existing []types.FAQItem) string {
	taken := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		taken[it.ID] = struct{}{}
	}

	ms := s.now().UnixMilli()
	if ms <= s.lastMillis {
		ms = s.lastMillis + 1
	}
	for {
		id := fmt.Sprintf("%s%d", IDPrefix, ms)
		if _, dup := taken[id]; !dup {
			s.lastMillis = ms
			return id
		}
		ms++
	}
}

func (s *CSVStore) read() ([]types.FAQItem, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.FAQItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	return decode(f)
}

// write replaces the file atomically through a temp file in the same directory.
func (s *CSVStore) write(items []types.FAQItem) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = encode(tmp, items); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func decode(r io.Reader) ([]types.FAQItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse FAQ csv: %w", err)
	}

	items := make([]types.FAQItem, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && strings.TrimPrefix(rec[0], "\ufeff") == header[0] {
			continue
		}
		if len(rec) < len(header)-1 {
			return nil, fmt.Errorf("FAQ csv line %d: expected %d fields, got %d", i+1, len(header), len(rec))
		}
		item := types.FAQItem{
			ID:       rec[0],
			Question: rec[1],
			Answer:   rec[2],
			Category: rec[3],
			Tags:     []string{},
		}
		if len(rec) > 4 {
			item.Tags = splitTags(rec[4])
		}
		items = append(items, item)
	}
	return items, nil
}

func encode(w io.Writer, items []types.FAQItem) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, it := range items {
		if err := writer.Write([]string{it.ID, it.Question, it.Answer, it.Category, strings.Join(it.Tags, tagSeparator)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, tagSeparator) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
