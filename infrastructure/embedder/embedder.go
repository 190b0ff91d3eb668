// Package embedder builds canonical posting text and turns it into
// L2-normalized embedding vectors.
package embedder

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/devradar/devradar/infrastructure/provider"
	"github.com/devradar/devradar/internal/config"
)

// Embedder wraps a provider with the canonical-text and normalization rules
// the corpus depends on. Identical semantic content must always produce the
// same vector, so the text composition here is the single source of truth.
type Embedder struct {
	provider          provider.Embedder
	descriptionBudget int
	dimension         int
	logger            *slog.Logger
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithDimension sets the vector length requested from the provider and
// enforced on its responses. Vectors of any other length would never match
// the stored corpus, so a mismatch is an error rather than a silent miss.
func WithDimension(n int) Option {
	return func(e *Embedder) {
		e.dimension = n
	}
}

// New creates an Embedder with the default description budget.
func New(p provider.Embedder, logger *slog.Logger, opts ...Option) *Embedder {
	e := &Embedder{
		provider:          p,
		descriptionBudget: config.DefaultDescriptionBudget,
		logger:            logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CanonicalText composes the text that represents a posting in vector space:
// title, description capped to the budget, and the skill list. Order and
// composition are stable across runs.
func (e *Embedder) CanonicalText(title, description string, skills []string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(title))
	desc := strings.TrimSpace(description)
	if runes := []rune(desc); len(runes) > e.descriptionBudget {
		desc = string(runes[:e.descriptionBudget])
	}
	if desc != "" {
		b.WriteString("\n")
		b.WriteString(desc)
	}
	if len(skills) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(skills, " "))
	}
	return strings.TrimSpace(b.String())
}

// EmbedPosting returns the normalized vector for a posting, or nil when the
// canonical text is empty. A nil vector marks the posting unsearchable
// rather than failing the whole record.
func (e *Embedder) EmbedPosting(ctx context.Context, title, description string, skills []string) ([]float64, error) {
	return e.embed(ctx, e.CanonicalText(title, description, skills))
}

// EmbedQuery returns the normalized vector for a free-form search query, or
// nil when the query is empty.
func (e *Embedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	return e.embed(ctx, strings.TrimSpace(query))
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, nil
	}
	req := provider.NewEmbeddingRequest([]string{text})
	if e.dimension > 0 {
		req = req.WithDimensions(e.dimension)
	}
	resp, err := e.provider.Embed(ctx, req)
	if err != nil {
		return nil, err
	}
	vectors := resp.Embeddings()
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, nil
	}
	if e.dimension > 0 && len(vectors[0]) != e.dimension {
		return nil, fmt.Errorf("embedding dimension %d, want %d", len(vectors[0]), e.dimension)
	}
	return Normalize(vectors[0]), nil
}

// Normalize scales a vector to unit L2 norm. Providers are not trusted to
// return normalized vectors; cosine similarity downstream assumes they are.
// Zero vectors are returned unchanged.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
