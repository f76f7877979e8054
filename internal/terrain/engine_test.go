package terrain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatTile(h int16) *Tile {
	t := &Tile{}
	for i := range t.blocks {
		t.blocks[i] = NewFlatBlock(h)
	}
	return t
}

func TestEngineNoTiles(t *testing.T) {
	e := NewEngine()
	assert.False(t, e.IsLoaded())

	_, ok := e.SampleHeight(0, 0)
	assert.False(t, ok)
}

func TestEngineStoreTile(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.StoreTile(8, 8, flatTile(Quantize(3.5))))
	assert.True(t, e.IsLoaded())

	h, ok := e.SampleHeight(10, 20)
	require.True(t, ok)
	assert.InDelta(t, 3.5, h, 1e-9)

	// Tile (7, 8) is not loaded.
	_, ok = e.SampleHeight(-10, 20)
	assert.False(t, ok)

	// Outside the world.
	_, ok = e.SampleHeight(WorldMinX-1, 0)
	assert.False(t, ok)
	_, ok = e.SampleHeight(-WorldMinX+1, 0)
	assert.False(t, ok)

	assert.Error(t, e.StoreTile(MaxTilesX, 0, flatTile(0)))
	assert.Error(t, e.StoreTile(-1, 0, flatTile(0)))
}

func TestEngineLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTile(dir, 8, 8, flatTile(Quantize(2))))
	require.NoError(t, WriteTile(dir, 7, 8, flatTile(Quantize(-1))))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bogus.hmap"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "99_0.hmap"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	e := NewEngine()
	require.NoError(t, e.LoadDir(dir))
	assert.True(t, e.IsLoaded())

	h, ok := e.SampleHeight(5, 5)
	require.True(t, ok)
	assert.InDelta(t, 2.0, h, 1e-9)

	h, ok = e.SampleHeight(-5, 5)
	require.True(t, ok)
	assert.InDelta(t, -1.0, h, 1e-9)
}

func TestEngineLoadDirErrors(t *testing.T) {
	e := NewEngine()
	assert.Error(t, e.LoadDir(filepath.Join(t.TempDir(), "missing")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TileFileName(1, 1)), []byte("HMAP"), 0o644))
	err := e.LoadDir(dir)
	assert.ErrorIs(t, err, ErrBadTile)
}

func TestTileFileName(t *testing.T) {
	assert.Equal(t, "3_12.hmap", TileFileName(3, 12))
}
