package db

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hexnav/internal/nav"
)

func builtSnapshot(t *testing.T) (*nav.Snapshot, nav.Options) {
	t.Helper()
	opts := nav.DefaultOptions()
	sampler := nav.SamplerFunc(func(x, z float64) (float64, bool) {
		if x > 4 && x < 8 && z > 4 && z < 8 {
			return 0, false
		}
		return float64(int(x+100)/6) * 1.5, true
	})
	svc := nav.NewService(sampler, nav.StaticPosition{}, opts)
	require.NoError(t, svc.RebuildGrid(nav.BoundsAround(mgl64.Vec3{}, 20)))
	return svc.Snapshot(), opts
}

func TestSnapshotRecordRoundTrip(t *testing.T) {
	snap, opts := builtSnapshot(t)
	require.NotEmpty(t, snap.Missing)

	rec, err := NewSnapshotRecord(snap, opts.HeightDelta)
	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, [16]byte(rec.ID))
	assert.Equal(t, len(snap.Missing), rec.MissingCells)
	assert.Equal(t, snap.RegionCount, rec.RegionCount)
	assert.True(t, rec.Compatible(opts))

	got, err := rec.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.Layout, got.Layout)
	assert.Equal(t, snap.Heights.Cells(), got.Heights.Cells())
	assert.Equal(t, snap.Regions.Cells(), got.Regions.Cells())
	assert.Equal(t, snap.Missing, got.Missing)
	assert.Equal(t, snap.GridGeneration, got.GridGeneration)
	assert.Nil(t, got.Distance)
}

func TestSnapshotRecordLayoutMismatch(t *testing.T) {
	snap, opts := builtSnapshot(t)
	rec, err := NewSnapshotRecord(snap, opts.HeightDelta)
	require.NoError(t, err)

	rec.Width++
	_, err = rec.Snapshot()
	assert.Error(t, err)

	rec.Width--
	rec.CellSize = 0
	_, err = rec.Snapshot()
	assert.ErrorIs(t, err, nav.ErrEmptyLayout)
}

func TestSnapshotRecordCompatible(t *testing.T) {
	rec := SnapshotRecord{CellSize: 2, HeightDelta: 1.2}

	opts := nav.DefaultOptions()
	opts.CellSize, opts.HeightDelta = 2, 1.2
	assert.True(t, rec.Compatible(opts))

	opts.HeightDelta = 1.0
	assert.False(t, rec.Compatible(opts))

	opts.HeightDelta, opts.CellSize = 1.2, 3
	assert.False(t, rec.Compatible(opts))
}
