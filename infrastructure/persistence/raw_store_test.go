package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/persistence"
	"github.com/devradar/devradar/internal/database"
	"github.com/devradar/devradar/internal/testdb"
)

func newRaw(url string) posting.RawPosting {
	return posting.NewRawPosting("linkedin", "backend", "Go Developer", "desc", "Remote", "1500", "Acme", "2025-01-15", url)
}

func TestRawStore_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRawStore(testdb.New(t))

	require.NoError(t, store.Upsert(ctx, newRaw("https://x/1"), false))

	got, err := store.Get(ctx, "https://x/1")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", got.Title())
	assert.Equal(t, posting.StateUnprocessed, got.State())

	_, err = store.Get(ctx, "https://x/missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRawStore_UpsertConvergesOnURL(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRawStore(testdb.New(t))

	require.NoError(t, store.Upsert(ctx, newRaw("https://x/1"), false))
	updated := posting.NewRawPosting("linkedin", "backend", "Senior Go Developer", "new desc", "Remote", "2000", "Acme", "2025-01-16", "https://x/1")
	require.NoError(t, store.Upsert(ctx, updated, false))

	count, err := store.CountUnprocessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.Get(ctx, "https://x/1")
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Developer", got.Title())
}

func TestRawStore_UpsertPreservesProcessedState(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRawStore(testdb.New(t))

	require.NoError(t, store.Upsert(ctx, newRaw("https://x/1"), false))
	require.NoError(t, store.MarkProcessed(ctx, []string{"https://x/1"}, time.Now()))

	// Re-scrape without reprocess: stays processed.
	require.NoError(t, store.Upsert(ctx, newRaw("https://x/1"), false))
	got, err := store.Get(ctx, "https://x/1")
	require.NoError(t, err)
	assert.Equal(t, posting.StateProcessed, got.State())

	// Re-scrape with reprocess: re-enters the backlog.
	require.NoError(t, store.Upsert(ctx, newRaw("https://x/1"), true))
	got, err = store.Get(ctx, "https://x/1")
	require.NoError(t, err)
	assert.Equal(t, posting.StateUnprocessed, got.State())
	assert.Nil(t, got.ProcessedAt())
}

func TestRawStore_UnprocessedAndMarkProcessed(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRawStore(testdb.New(t))

	for _, url := range []string{"https://x/1", "https://x/2", "https://x/3"} {
		require.NoError(t, store.Upsert(ctx, newRaw(url), false))
	}

	batch, err := store.Unprocessed(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "https://x/1", batch[0].URL())

	require.NoError(t, store.MarkProcessed(ctx, []string{"https://x/1", "https://x/2"}, time.Now()))

	remaining, err := store.Unprocessed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "https://x/3", remaining[0].URL())

	count, err := store.CountUnprocessed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRawStore_MarkProcessedEmptyIsNoop(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewRawStore(testdb.New(t))
	assert.NoError(t, store.MarkProcessed(ctx, nil, time.Now()))
}
