package db_test

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexnav/internal/db"
	"github.com/udisondev/hexnav/internal/nav"
	"github.com/udisondev/hexnav/internal/testutil"
)

func TestSnapshotRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := db.NewSnapshotRepository(pool)
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	_, err := repo.LatestSnapshot(ctx)
	require.ErrorIs(t, err, db.ErrNoSnapshot)

	opts := nav.DefaultOptions()
	svc := nav.NewService(testutil.TerraceSampler(1.5, 5, 0, 0, 3), nav.StaticPosition{}, opts)

	var last db.SnapshotRecord
	for i := range 4 {
		require.NoError(t, svc.RebuildGrid(nav.BoundsAround(mgl64.Vec3{float64(i), 0, 0}, 16)))
		rec, err := db.NewSnapshotRecord(svc.Snapshot(), opts.HeightDelta)
		require.NoError(t, err)
		rec.CreatedAt = time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC)
		require.NoError(t, repo.SaveSnapshot(ctx, rec))
		last = rec
	}

	latest, err := repo.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, last.ID, latest.ID)
	assert.Equal(t, last.Grids, latest.Grids)
	assert.Equal(t, last.MinX, latest.MinX)
	assert.True(t, latest.CreatedAt.Equal(last.CreatedAt))

	snap, err := latest.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, svc.Snapshot().Regions.Cells(), snap.Regions.Cells())

	deleted, err := repo.PruneSnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	n, err := repo.CountSnapshots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var _ db.SnapshotStore = repo
}
