package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
)

func classifiedPosting(url string) posting.ClassifiedPosting {
	return posting.NewClassifiedPosting("p", "", "", "T "+url, "", "", nil, "", nil, posting.SeniorityUnspecified, url, nil)
}

func newTestRetrieval(searcher *fakeSearcher, store *fakeClassifiedStore) *RetrievalService {
	return NewRetrievalService(&fakePostingEmbedder{vector: []float64{1, 0}}, searcher, store, RetrievalOptions{}, discardLogger())
}

func TestRetrieval_PrimaryPath(t *testing.T) {
	searcher := &fakeSearcher{records: []posting.ClassifiedPosting{classifiedPosting("u1")}}
	svc := newTestRetrieval(searcher, newFakeClassifiedStore())

	result, err := svc.Search(context.Background(), []float64{1, 0})
	require.NoError(t, err)
	assert.False(t, result.Degraded())
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "u1", result.Postings()[0].URL())
}

func TestRetrieval_EmptyPrimaryIsFinal(t *testing.T) {
	searcher := &fakeSearcher{records: nil, matches: []search.Match{search.NewMatch("u1", 0.9)}}
	svc := newTestRetrieval(searcher, newFakeClassifiedStore())

	result, err := svc.Search(context.Background(), []float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count(), "empty from a healthy path must not fall through")
	assert.False(t, result.Degraded())
}

func TestRetrieval_SecondStepFetchesByID(t *testing.T) {
	store := newFakeClassifiedStore()
	store.postings["u1"] = classifiedPosting("u1")
	store.postings["u2"] = classifiedPosting("u2")
	searcher := &fakeSearcher{
		recordsErr: fmt.Errorf("%w: rpc missing", search.ErrUnavailable),
		matches:    []search.Match{search.NewMatch("u2", 0.9), search.NewMatch("u1", 0.5)},
	}

	result, err := newTestRetrieval(searcher, store).Search(context.Background(), []float64{1, 0})
	require.NoError(t, err)
	assert.False(t, result.Degraded())
	require.Equal(t, 2, result.Count())
	assert.Equal(t, "u2", result.Postings()[0].URL(), "ranking order must survive the fetch")
}

func TestRetrieval_DegradedSample(t *testing.T) {
	store := newFakeClassifiedStore()
	store.sample = []posting.ClassifiedPosting{classifiedPosting("u9")}
	searcher := &fakeSearcher{
		recordsErr: fmt.Errorf("%w: down", search.ErrUnavailable),
		idsErr:     fmt.Errorf("%w: down", search.ErrUnavailable),
	}

	result, err := newTestRetrieval(searcher, store).Search(context.Background(), []float64{1, 0})
	require.NoError(t, err)
	assert.True(t, result.Degraded())
	require.Equal(t, 1, result.Count())
	assert.Equal(t, "u9", result.Postings()[0].URL())
}

func TestRetrieval_AllPathsDownIsError(t *testing.T) {
	store := newFakeClassifiedStore()
	store.sampleErr = fmt.Errorf("db down")
	searcher := &fakeSearcher{
		recordsErr: fmt.Errorf("%w: down", search.ErrUnavailable),
		idsErr:     fmt.Errorf("%w: down", search.ErrUnavailable),
	}

	_, err := newTestRetrieval(searcher, store).Search(context.Background(), []float64{1, 0})
	assert.Error(t, err)
}

func TestRetrieval_SearchTextEmbedFailureDegrades(t *testing.T) {
	store := newFakeClassifiedStore()
	store.sample = []posting.ClassifiedPosting{classifiedPosting("u1")}
	searcher := &fakeSearcher{
		recordsErr: fmt.Errorf("%w: empty query", search.ErrUnavailable),
		idsErr:     fmt.Errorf("%w: empty query", search.ErrUnavailable),
	}
	svc := NewRetrievalService(&fakePostingEmbedder{err: fmt.Errorf("embed down")}, searcher, store, RetrievalOptions{}, discardLogger())

	result, err := svc.SearchText(context.Background(), "golang jobs", 0)
	require.NoError(t, err)
	assert.True(t, result.Degraded())
}
