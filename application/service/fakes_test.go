package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/devradar/devradar/domain/chat"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
	"github.com/devradar/devradar/infrastructure/provider"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRawStore serves queued batches and records processed marks.
type fakeRawStore struct {
	batches  [][]posting.RawPosting
	upserted []posting.RawPosting
	marked   [][]string
	err      error
}

func (f *fakeRawStore) Upsert(_ context.Context, p posting.RawPosting, _ bool) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, p)
	return nil
}

func (f *fakeRawStore) Unprocessed(_ context.Context, _ int) ([]posting.RawPosting, error) {
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeRawStore) MarkProcessed(_ context.Context, urls []string, _ time.Time) error {
	f.marked = append(f.marked, urls)
	return nil
}

func (f *fakeRawStore) Get(_ context.Context, _ string) (posting.RawPosting, error) {
	return posting.RawPosting{}, nil
}

func (f *fakeRawStore) CountUnprocessed(_ context.Context) (int64, error) {
	var n int64
	for _, b := range f.batches {
		n += int64(len(b))
	}
	return n, nil
}

// fakeClassifiedStore keeps published postings in memory.
type fakeClassifiedStore struct {
	postings  map[string]posting.ClassifiedPosting
	upsertErr error
	byURLsErr error
	sample    []posting.ClassifiedPosting
	sampleErr error
}

func newFakeClassifiedStore() *fakeClassifiedStore {
	return &fakeClassifiedStore{postings: make(map[string]posting.ClassifiedPosting)}
}

func (f *fakeClassifiedStore) Upsert(_ context.Context, p posting.ClassifiedPosting) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.postings[p.URL()] = p
	return nil
}

func (f *fakeClassifiedStore) Get(_ context.Context, url string) (posting.ClassifiedPosting, error) {
	return f.postings[url], nil
}

func (f *fakeClassifiedStore) ByURLs(_ context.Context, urls []string) ([]posting.ClassifiedPosting, error) {
	if f.byURLsErr != nil {
		return nil, f.byURLsErr
	}
	out := make([]posting.ClassifiedPosting, 0, len(urls))
	for _, u := range urls {
		if p, ok := f.postings[u]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClassifiedStore) Sample(_ context.Context, limit int) ([]posting.ClassifiedPosting, error) {
	if f.sampleErr != nil {
		return nil, f.sampleErr
	}
	if len(f.sample) > limit {
		return f.sample[:limit], nil
	}
	return f.sample, nil
}

func (f *fakeClassifiedStore) List(_ context.Context, _ posting.ListFilter) ([]posting.ClassifiedPosting, int64, error) {
	out := make([]posting.ClassifiedPosting, 0, len(f.postings))
	for _, p := range f.postings {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// fakeClassifier answers with a fixed function per call.
type fakeClassifier struct {
	fn    func(title string) (posting.Classification, error)
	calls int
}

func (f *fakeClassifier) Classify(_ context.Context, title, _ string) (posting.Classification, error) {
	f.calls++
	return f.fn(title)
}

// fakePostingEmbedder returns a fixed vector or error.
type fakePostingEmbedder struct {
	vector []float64
	err    error
}

func (f *fakePostingEmbedder) EmbedPosting(_ context.Context, _, _ string, _ []string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakePostingEmbedder) EmbedQuery(_ context.Context, _ string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeSearcher scripts the two vector search paths.
type fakeSearcher struct {
	records    []posting.ClassifiedPosting
	recordsErr error
	matches    []search.Match
	idsErr     error
}

func (f *fakeSearcher) SearchRecords(_ context.Context, _ []float64, _ float64, _ int) ([]posting.ClassifiedPosting, error) {
	return f.records, f.recordsErr
}

func (f *fakeSearcher) SearchIDs(_ context.Context, _ []float64, _ float64, _ int) ([]search.Match, error) {
	return f.matches, f.idsErr
}

// fakeGate answers the intent check with a fixed verdict.
type fakeGate struct {
	allow bool
}

func (f *fakeGate) Allow(_ context.Context, _ string) bool { return f.allow }

// fakeRetriever returns a scripted result.
type fakeRetriever struct {
	result search.Result
	err    error
}

func (f *fakeRetriever) Search(_ context.Context, _ []float64) (search.Result, error) {
	return f.result, f.err
}

// fakeGenerator records the request and returns fixed content.
type fakeGenerator struct {
	content string
	err     error
	lastReq provider.ChatCompletionRequest
}

func (f *fakeGenerator) ChatCompletion(_ context.Context, req provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return provider.ChatCompletionResponse{}, f.err
	}
	return provider.NewChatCompletionResponse(f.content, "stop"), nil
}

// fakeHistory keeps exchanges in memory.
type fakeHistory struct {
	exchanges map[string][]chat.Exchange
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{exchanges: make(map[string][]chat.Exchange)}
}

func (f *fakeHistory) Append(_ context.Context, sessionID string, ex chat.Exchange) error {
	f.exchanges[sessionID] = append(f.exchanges[sessionID], ex)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, sessionID string, n int) ([]chat.Exchange, error) {
	exs := f.exchanges[sessionID]
	if len(exs) > n {
		exs = exs[len(exs)-n:]
	}
	return exs, nil
}

func (f *fakeHistory) Clear(_ context.Context, sessionID string) error {
	delete(f.exchanges, sessionID)
	return nil
}
