package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/internal/database"
)

// RawStore persists raw postings in the database.
type RawStore struct {
	db database.Database
}

// NewRawStore creates a RawStore.
func NewRawStore(db database.Database) *RawStore {
	return &RawStore{db: db}
}

// Upsert writes a raw posting keyed by URL. Descriptive fields are always
// refreshed; the processed state of an existing row survives unless
// reprocess is set, so re-scraping a URL does not re-enter the backlog.
func (s *RawStore) Upsert(ctx context.Context, p posting.RawPosting, reprocess bool) error {
	model := rawToModel(p)

	columns := []string{
		"platform", "role_query", "title", "description", "location",
		"salary_raw", "company", "published_at", "updated_at",
	}
	if reprocess {
		model.State = string(posting.StateUnprocessed)
		model.ProcessedAt = nil
		columns = append(columns, "state", "processed_at")
	}

	err := s.db.Session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert raw posting: %w", err)
	}
	return nil
}

// Unprocessed returns up to limit postings awaiting the pipeline, oldest
// first.
func (s *RawStore) Unprocessed(ctx context.Context, limit int) ([]posting.RawPosting, error) {
	var models []RawPostingModel
	err := s.db.Session(ctx).
		Where("state = ?", string(posting.StateUnprocessed)).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list unprocessed postings: %w", err)
	}

	out := make([]posting.RawPosting, len(models))
	for i, m := range models {
		out[i] = rawFromModel(m)
	}
	return out, nil
}

// MarkProcessed flips the given URLs to the processed state.
func (s *RawStore) MarkProcessed(ctx context.Context, urls []string, at time.Time) error {
	if len(urls) == 0 {
		return nil
	}
	err := s.db.Session(ctx).
		Model(&RawPostingModel{}).
		Where("url IN ?", urls).
		Updates(map[string]any{
			"state":        string(posting.StateProcessed),
			"processed_at": at,
		}).Error
	if err != nil {
		return fmt.Errorf("mark postings processed: %w", err)
	}
	return nil
}

// Get returns the raw posting for a URL.
func (s *RawStore) Get(ctx context.Context, url string) (posting.RawPosting, error) {
	var model RawPostingModel
	err := s.db.Session(ctx).Where("url = ?", url).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return posting.RawPosting{}, database.ErrNotFound
	}
	if err != nil {
		return posting.RawPosting{}, fmt.Errorf("get raw posting: %w", err)
	}
	return rawFromModel(model), nil
}

// CountUnprocessed returns the size of the remaining backlog.
func (s *RawStore) CountUnprocessed(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.Session(ctx).
		Model(&RawPostingModel{}).
		Where("state = ?", string(posting.StateUnprocessed)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count unprocessed postings: %w", err)
	}
	return count, nil
}

var _ posting.RawStore = (*RawStore)(nil)
