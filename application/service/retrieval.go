package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
	"github.com/devradar/devradar/internal/config"
)

// RetrievalOptions tunes the retrieval gateway. Zero values take the
// defaults.
type RetrievalOptions struct {
	Threshold float64
	Limit     int
}

func (o RetrievalOptions) withDefaults() RetrievalOptions {
	if o.Threshold <= 0 {
		o.Threshold = config.DefaultSimilarityThreshold
	}
	if o.Limit <= 0 {
		o.Limit = config.DefaultSearchLimit
	}
	return o
}

// RetrievalService serves similarity queries through a fallback chain:
// full-record vector search, then ID-only search plus a store fetch, then an
// unranked sample flagged as degraded. An empty result from a healthy path
// is final and never triggers the next step.
type RetrievalService struct {
	embedder QueryEmbedder
	searcher search.VectorSearcher
	store    posting.ClassifiedStore
	opts     RetrievalOptions
	logger   *slog.Logger
}

// NewRetrievalService creates a RetrievalService.
func NewRetrievalService(embedder QueryEmbedder, searcher search.VectorSearcher, store posting.ClassifiedStore, opts RetrievalOptions, logger *slog.Logger) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		searcher: searcher,
		store:    store,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// SearchText embeds a free-form query and resolves it through the chain. A
// non-positive limit takes the default. An embedding failure degrades to the
// sample path instead of erroring.
func (s *RetrievalService) SearchText(ctx context.Context, query string, limit int) (search.Result, error) {
	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed", "error", err)
		vector = nil
	}
	if limit <= 0 {
		limit = s.opts.Limit
	}
	return s.search(ctx, vector, limit)
}

// Search resolves a query vector to ranked postings with the default limit.
func (s *RetrievalService) Search(ctx context.Context, query []float64) (search.Result, error) {
	return s.search(ctx, query, s.opts.Limit)
}

func (s *RetrievalService) search(ctx context.Context, query []float64, limit int) (search.Result, error) {
	records, err := s.searcher.SearchRecords(ctx, query, s.opts.Threshold, limit)
	if err == nil {
		return search.NewResult(records, false), nil
	}
	s.logger.Warn("record search unavailable, trying id search", "error", err)

	matches, err := s.searcher.SearchIDs(ctx, query, s.opts.Threshold, limit)
	if err == nil {
		urls := make([]string, len(matches))
		for i, m := range matches {
			urls[i] = m.URL()
		}
		postings, err := s.store.ByURLs(ctx, urls)
		if err != nil {
			return search.Result{}, fmt.Errorf("fetch matched postings: %w", err)
		}
		return search.NewResult(postings, false), nil
	}
	s.logger.Warn("id search unavailable, serving unranked sample", "error", err)

	sample, err := s.store.Sample(ctx, limit)
	if err != nil {
		return search.Result{}, fmt.Errorf("sample fallback: %w", err)
	}
	return search.NewResult(sample, true), nil
}
