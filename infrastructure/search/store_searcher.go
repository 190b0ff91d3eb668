package search

import (
	"context"
	"fmt"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
)

// EmbeddedLister supplies the postings that carry an embedding.
type EmbeddedLister interface {
	Embedded(ctx context.Context) ([]posting.ClassifiedPosting, error)
}

// StoreSearcher ranks stored embeddings by cosine similarity in the
// application. The corpus is small enough that a full scan per query beats
// operating a dedicated vector index.
type StoreSearcher struct {
	store EmbeddedLister
}

// NewStoreSearcher creates a StoreSearcher.
func NewStoreSearcher(store EmbeddedLister) *StoreSearcher {
	return &StoreSearcher{store: store}
}

// SearchRecords returns full postings ranked by descending similarity.
func (s *StoreSearcher) SearchRecords(ctx context.Context, query []float64, threshold float64, limit int) ([]posting.ClassifiedPosting, error) {
	postings, ranked, err := s.rank(ctx, query, threshold, limit)
	if err != nil {
		return nil, err
	}

	out := make([]posting.ClassifiedPosting, len(ranked))
	for i, r := range ranked {
		out[i] = postings[r.index]
	}
	return out, nil
}

// SearchIDs returns URL and score pairs ranked by descending similarity.
func (s *StoreSearcher) SearchIDs(ctx context.Context, query []float64, threshold float64, limit int) ([]search.Match, error) {
	postings, ranked, err := s.rank(ctx, query, threshold, limit)
	if err != nil {
		return nil, err
	}

	out := make([]search.Match, len(ranked))
	for i, r := range ranked {
		out[i] = search.NewMatch(postings[r.index].URL(), r.score)
	}
	return out, nil
}

func (s *StoreSearcher) rank(ctx context.Context, query []float64, threshold float64, limit int) ([]posting.ClassifiedPosting, []scored, error) {
	if len(query) == 0 {
		return nil, nil, fmt.Errorf("%w: empty query vector", search.ErrUnavailable)
	}

	postings, err := s.store.Embedded(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", search.ErrUnavailable, err)
	}

	scores := make([]float64, len(postings))
	for i, p := range postings {
		scores[i] = CosineSimilarity(query, p.Embedding())
	}
	return postings, topK(scores, threshold, limit), nil
}

var _ search.VectorSearcher = (*StoreSearcher)(nil)
