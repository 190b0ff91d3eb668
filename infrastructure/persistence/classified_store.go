package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/internal/database"
)

// ClassifiedStore persists classified postings in the database.
type ClassifiedStore struct {
	db database.Database
}

// NewClassifiedStore creates a ClassifiedStore.
func NewClassifiedStore(db database.Database) *ClassifiedStore {
	return &ClassifiedStore{db: db}
}

// Upsert writes a classified posting keyed by URL.
func (s *ClassifiedStore) Upsert(ctx context.Context, p posting.ClassifiedPosting) error {
	model := classifiedToModel(p)
	err := s.db.Session(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"platform", "role_query", "published_at", "title", "location",
				"description", "salary", "company", "skills", "seniority",
				"embedding", "updated_at",
			}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("upsert classified posting: %w", err)
	}
	return nil
}

// Get returns the classified posting for a URL.
func (s *ClassifiedStore) Get(ctx context.Context, url string) (posting.ClassifiedPosting, error) {
	var model ClassifiedPostingModel
	err := s.db.Session(ctx).Where("url = ?", url).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return posting.ClassifiedPosting{}, database.ErrNotFound
	}
	if err != nil {
		return posting.ClassifiedPosting{}, fmt.Errorf("get classified posting: %w", err)
	}
	return classifiedFromModel(model), nil
}

// ByURLs returns the classified postings for the given URLs. Order follows
// the input slice; URLs with no stored posting are skipped.
func (s *ClassifiedStore) ByURLs(ctx context.Context, urls []string) ([]posting.ClassifiedPosting, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	var models []ClassifiedPostingModel
	err := s.db.Session(ctx).Where("url IN ?", urls).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("fetch postings by url: %w", err)
	}

	byURL := make(map[string]ClassifiedPostingModel, len(models))
	for _, m := range models {
		byURL[m.URL] = m
	}
	out := make([]posting.ClassifiedPosting, 0, len(models))
	for _, u := range urls {
		if m, ok := byURL[u]; ok {
			out = append(out, classifiedFromModel(m))
		}
	}
	return out, nil
}

// Sample returns up to limit postings, newest first, with no relevance
// ordering.
func (s *ClassifiedStore) Sample(ctx context.Context, limit int) ([]posting.ClassifiedPosting, error) {
	var models []ClassifiedPostingModel
	err := s.db.Session(ctx).Order("id DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("sample classified postings: %w", err)
	}

	out := make([]posting.ClassifiedPosting, len(models))
	for i, m := range models {
		out[i] = classifiedFromModel(m)
	}
	return out, nil
}

// List returns postings matching the filter, newest first, plus the total
// count before pagination.
func (s *ClassifiedStore) List(ctx context.Context, filter posting.ListFilter) ([]posting.ClassifiedPosting, int64, error) {
	query := s.db.Session(ctx).Model(&ClassifiedPostingModel{})

	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}
	if filter.Seniority != "" {
		query = query.Where("seniority = ?", string(filter.Seniority))
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary >= ?", *filter.SalaryMin)
	}
	if filter.SalaryMax != nil {
		query = query.Where("salary <= ?", *filter.SalaryMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count classified postings: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []ClassifiedPostingModel
	if err := query.Order("id DESC").Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("list classified postings: %w", err)
	}

	out := make([]posting.ClassifiedPosting, len(models))
	for i, m := range models {
		out[i] = classifiedFromModel(m)
	}
	return out, total, nil
}

// Embedded returns all postings that carry an embedding vector. It feeds the
// in-application vector search.
func (s *ClassifiedStore) Embedded(ctx context.Context) ([]posting.ClassifiedPosting, error) {
	var models []ClassifiedPostingModel
	err := s.db.Session(ctx).Where("embedding IS NOT NULL").Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list embedded postings: %w", err)
	}

	out := make([]posting.ClassifiedPosting, len(models))
	for i, m := range models {
		out[i] = classifiedFromModel(m)
	}
	return out, nil
}

var _ posting.ClassifiedStore = (*ClassifiedStore)(nil)
