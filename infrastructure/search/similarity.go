// Package search implements similarity ranking over stored embeddings.
package search

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths and zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// scored pairs an index with its similarity score.
type scored struct {
	index int
	score float64
}

// topK returns the indices of the k highest-scoring entries in descending
// score order, keeping only scores >= threshold. Ties break by ascending
// index so ranking is deterministic.
func topK(scores []float64, threshold float64, k int) []scored {
	kept := make([]scored, 0, len(scores))
	for i, s := range scores {
		if s >= threshold {
			kept = append(kept, scored{index: i, score: s})
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if k > 0 && len(kept) > k {
		kept = kept[:k]
	}
	return kept
}
