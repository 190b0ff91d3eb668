// Package service implements the application use cases: posting intake, the
// enrichment pipeline, semantic retrieval, and the conversational surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devradar/devradar/domain/posting"
)

// ErrIntakeRejected indicates a submitted posting failed validation.
var ErrIntakeRejected = errors.New("posting rejected at intake")

// unspecifiedField is the placeholder stored when a scraper could not read
// an optional field. Kept in Spanish because downstream normalization and
// the existing corpus both key on it.
const unspecifiedField = "No especificado"

// IntakeService validates scraped postings and admits them into the raw
// store.
type IntakeService struct {
	store  posting.RawStore
	logger *slog.Logger
}

// NewIntakeService creates an IntakeService.
func NewIntakeService(store posting.RawStore, logger *slog.Logger) *IntakeService {
	return &IntakeService{store: store, logger: logger}
}

// Submit validates and upserts one raw posting. Platform, title, and URL are
// required; optional fields default to the unspecified placeholder. When
// reprocess is set an already-processed posting re-enters the backlog.
func (s *IntakeService) Submit(ctx context.Context, p posting.RawPosting, reprocess bool) error {
	if strings.TrimSpace(p.Platform()) == "" {
		return fmt.Errorf("%w: missing platform", ErrIntakeRejected)
	}
	if strings.TrimSpace(p.Title()) == "" {
		return fmt.Errorf("%w: missing title", ErrIntakeRejected)
	}
	if strings.TrimSpace(p.URL()) == "" {
		return fmt.Errorf("%w: missing url", ErrIntakeRejected)
	}

	normalized := posting.NewRawPosting(
		strings.TrimSpace(p.Platform()),
		strings.TrimSpace(p.RoleQuery()),
		strings.TrimSpace(p.Title()),
		strings.TrimSpace(p.Description()),
		defaultIfEmpty(p.Location()),
		defaultIfEmpty(p.SalaryRaw()),
		defaultIfEmpty(p.Company()),
		defaultIfEmpty(p.PublishedAt()),
		strings.TrimSpace(p.URL()),
	)

	if err := s.store.Upsert(ctx, normalized, reprocess); err != nil {
		return fmt.Errorf("admit posting: %w", err)
	}

	s.logger.Debug("posting admitted",
		"platform", normalized.Platform(),
		"url", normalized.URL(),
		"reprocess", reprocess,
	)
	return nil
}

func defaultIfEmpty(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unspecifiedField
	}
	return s
}
