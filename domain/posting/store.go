package posting

import (
	"context"
	"time"
)

// RawStore persists raw postings and their processing state.
type RawStore interface {
	// Upsert writes a raw posting keyed by URL. The processed state of an
	// existing row is preserved unless reprocess is set.
	Upsert(ctx context.Context, p RawPosting, reprocess bool) error

	// Unprocessed returns up to limit postings still awaiting the pipeline.
	Unprocessed(ctx context.Context, limit int) ([]RawPosting, error)

	// MarkProcessed flips the given URLs to the processed state.
	MarkProcessed(ctx context.Context, urls []string, at time.Time) error

	// Get returns the raw posting for a URL.
	Get(ctx context.Context, url string) (RawPosting, error)

	// CountUnprocessed returns the size of the remaining backlog.
	CountUnprocessed(ctx context.Context) (int64, error)
}

// ListFilter narrows a classified-posting listing.
type ListFilter struct {
	Platform  string
	Seniority Seniority
	SalaryMin *float64
	SalaryMax *float64
	Limit     int
	Offset    int
}

// ClassifiedStore persists classified postings.
type ClassifiedStore interface {
	// Upsert writes a classified posting keyed by URL.
	Upsert(ctx context.Context, p ClassifiedPosting) error

	// Get returns the classified posting for a URL.
	Get(ctx context.Context, url string) (ClassifiedPosting, error)

	// ByURLs returns the classified postings for the given URLs.
	ByURLs(ctx context.Context, urls []string) ([]ClassifiedPosting, error)

	// Sample returns up to limit postings with no relevance ordering. It
	// backs the degraded retrieval path when vector search is unavailable.
	Sample(ctx context.Context, limit int) ([]ClassifiedPosting, error)

	// List returns postings matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]ClassifiedPosting, int64, error)
}
