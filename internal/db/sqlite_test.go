package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nav.db")
	store, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func testRecord(gen int64, createdAt time.Time) SnapshotRecord {
	return SnapshotRecord{
		ID:             uuid.New(),
		MinX:           -10,
		MaxX:           10,
		MinZ:           -8,
		MaxZ:           8,
		CellSize:       2,
		HeightDelta:    1.2,
		Width:          12,
		Depth:          8,
		RegionCount:    3,
		Leftover:       1,
		MissingCells:   2,
		GridGeneration: gen,
		Grids:          []byte{0x01, 0x02, byte(gen)},
		CreatedAt:      createdAt.UTC(),
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	store, _ := openTestSQLite(t)

	_, err := store.LatestSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)

	n, err := store.CountSnapshots(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteStoreSaveAndLatest(t *testing.T) {
	store, _ := openTestSQLite(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for gen := int64(1); gen <= 3; gen++ {
		require.NoError(t, store.SaveSnapshot(ctx, testRecord(gen, base.Add(time.Duration(gen)*time.Minute))))
	}

	latest, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest.GridGeneration)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, latest.Grids)
	assert.Equal(t, 12, latest.Width)
	assert.Equal(t, 1.2, latest.HeightDelta)
	assert.True(t, latest.CreatedAt.Equal(base.Add(3*time.Minute)))
}

func TestSQLiteStoreDuplicateID(t *testing.T) {
	store, _ := openTestSQLite(t)
	ctx := context.Background()

	rec := testRecord(1, time.Now())
	require.NoError(t, store.SaveSnapshot(ctx, rec))
	assert.Error(t, store.SaveSnapshot(ctx, rec))
}

func TestSQLiteStorePrune(t *testing.T) {
	store, _ := openTestSQLite(t)
	ctx := context.Background()
	base := time.Now()

	for gen := int64(1); gen <= 5; gen++ {
		require.NoError(t, store.SaveSnapshot(ctx, testRecord(gen, base.Add(time.Duration(gen)*time.Second))))
	}

	deleted, err := store.PruneSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err := store.CountSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	latest, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), latest.GridGeneration)
}

func TestSQLiteStoreReopen(t *testing.T) {
	store, path := openTestSQLite(t)
	ctx := context.Background()
	rec := testRecord(7, time.Now())
	require.NoError(t, store.SaveSnapshot(ctx, rec))
	require.NoError(t, store.Close())

	// Migrations are idempotent on an existing file.
	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	latest, err := reopened.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, latest.ID)
}
