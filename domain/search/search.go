// Package search provides domain types for semantic retrieval over the
// classified-posting corpus.
package search

import (
	"context"
	"errors"

	"github.com/devradar/devradar/domain/posting"
)

// ErrUnavailable indicates a search path cannot serve requests at all.
// It is distinct from an empty result, which is a valid outcome.
var ErrUnavailable = errors.New("search path unavailable")

// Match pairs a posting URL with its cosine similarity to the query.
type Match struct {
	url        string
	similarity float64
}

// NewMatch creates a Match.
func NewMatch(url string, similarity float64) Match {
	return Match{url: url, similarity: similarity}
}

// URL returns the matched posting URL.
func (m Match) URL() string { return m.url }

// Similarity returns the cosine similarity score.
func (m Match) Similarity() float64 { return m.similarity }

// VectorSearcher answers similarity queries against stored embeddings.
// The two methods mirror the two remote search variants: one that can return
// full records and one that only returns identifiers.
type VectorSearcher interface {
	// SearchRecords returns full postings ranked by descending similarity,
	// filtered to similarity >= threshold, truncated to limit.
	SearchRecords(ctx context.Context, query []float64, threshold float64, limit int) ([]posting.ClassifiedPosting, error)

	// SearchIDs returns matches (URL + score) under the same contract.
	SearchIDs(ctx context.Context, query []float64, threshold float64, limit int) ([]Match, error)
}

// Result is the outcome of a gateway search. Degraded marks results produced
// by the unfiltered-sample fallback, where relevance is not guaranteed.
type Result struct {
	postings []posting.ClassifiedPosting
	degraded bool
}

// NewResult creates a Result.
func NewResult(postings []posting.ClassifiedPosting, degraded bool) Result {
	out := make([]posting.ClassifiedPosting, len(postings))
	copy(out, postings)
	return Result{postings: out, degraded: degraded}
}

// Postings returns the ranked postings.
func (r Result) Postings() []posting.ClassifiedPosting {
	out := make([]posting.ClassifiedPosting, len(r.postings))
	copy(out, r.postings)
	return out
}

// Degraded reports whether the result came from the unranked fallback path.
func (r Result) Degraded() bool { return r.degraded }

// Count returns the number of postings in the result.
func (r Result) Count() int { return len(r.postings) }
