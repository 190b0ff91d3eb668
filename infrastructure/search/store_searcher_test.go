package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
)

type fakeLister struct {
	postings []posting.ClassifiedPosting
	err      error
}

func (f *fakeLister) Embedded(_ context.Context) ([]posting.ClassifiedPosting, error) {
	return f.postings, f.err
}

func embedded(url string, vec []float64) posting.ClassifiedPosting {
	return posting.NewClassifiedPosting("p", "", "", "t", "", "", nil, "", nil, posting.SeniorityUnspecified, url, vec)
}

func TestStoreSearcher_SearchRecords(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{postings: []posting.ClassifiedPosting{
		embedded("https://x/far", []float64{0, 1}),
		embedded("https://x/near", []float64{1, 0}),
		embedded("https://x/close", []float64{0.9, 0.1}),
	}})

	got, err := s.SearchRecords(context.Background(), []float64{1, 0}, 0.27, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://x/near", got[0].URL())
	assert.Equal(t, "https://x/close", got[1].URL())
}

func TestStoreSearcher_SearchIDs(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{postings: []posting.ClassifiedPosting{
		embedded("https://x/1", []float64{1, 0}),
	}})

	got, err := s.SearchIDs(context.Background(), []float64{1, 0}, 0.27, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://x/1", got[0].URL())
	assert.InDelta(t, 1.0, got[0].Similarity(), 1e-9)
}

func TestStoreSearcher_LimitTruncates(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{postings: []posting.ClassifiedPosting{
		embedded("https://x/1", []float64{1, 0}),
		embedded("https://x/2", []float64{0.9, 0.1}),
		embedded("https://x/3", []float64{0.8, 0.2}),
	}})

	got, err := s.SearchRecords(context.Background(), []float64{1, 0}, 0, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStoreSearcher_EmptyQueryUnavailable(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{})

	_, err := s.SearchRecords(context.Background(), nil, 0.27, 10)
	assert.ErrorIs(t, err, search.ErrUnavailable)
}

func TestStoreSearcher_StoreErrorUnavailable(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{err: errors.New("db down")})

	_, err := s.SearchIDs(context.Background(), []float64{1}, 0.27, 10)
	assert.ErrorIs(t, err, search.ErrUnavailable)
}

func TestStoreSearcher_EmptyCorpusIsEmptyNotError(t *testing.T) {
	s := NewStoreSearcher(&fakeLister{})

	got, err := s.SearchRecords(context.Background(), []float64{1}, 0.27, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
