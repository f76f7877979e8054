package terrain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Engine serves heights from loaded .hmap tiles. It implements
// nav.HeightSampler. Safe for concurrent use: tiles are swapped atomically
// and never modified once stored.
type Engine struct {
	tiles  [MaxTilesX * MaxTilesZ]atomic.Pointer[Tile]
	loaded atomic.Int32
}

// NewEngine creates an empty Engine (no tiles loaded).
func NewEngine() *Engine {
	return &Engine{}
}

// LoadDir loads all .hmap files from the given directory.
// File naming convention: "<tileX>_<tileZ>.hmap"
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading heightmap dir %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != TileExt {
			continue
		}

		var tx, tz int
		base := name[:len(name)-len(ext)]
		if _, err := fmt.Sscanf(base, "%d_%d", &tx, &tz); err != nil {
			slog.Warn("skip heightmap file (bad name)", "file", name)
			continue
		}
		if !tileInRange(tx, tz) {
			slog.Warn("skip heightmap file (out of range)", "file", name, "tx", tx, "tz", tz)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading heightmap %s: %w", name, err)
		}
		tile, err := LoadTile(data)
		if err != nil {
			return fmt.Errorf("parsing heightmap %s: %w", name, err)
		}

		e.tiles[tx*MaxTilesZ+tz].Store(tile)
		loaded++
	}

	e.loaded.Store(int32(loaded))
	slog.Info("heightmap loaded", "tiles", loaded, "dir", dir)
	return nil
}

// StoreTile installs tile at (tileX, tileZ), replacing any previous one.
func (e *Engine) StoreTile(tileX, tileZ int, tile *Tile) error {
	if !tileInRange(tileX, tileZ) {
		return fmt.Errorf("storing tile %d_%d: out of range", tileX, tileZ)
	}
	if e.tiles[tileX*MaxTilesZ+tileZ].Swap(tile) == nil {
		e.loaded.Add(1)
	}
	return nil
}

// IsLoaded returns true if any tiles are loaded.
func (e *Engine) IsLoaded() bool {
	return e.loaded.Load() > 0
}

// SampleHeight returns the highest surface under world (x, z).
// Positions outside loaded tiles report no terrain.
func (e *Engine) SampleHeight(x, z float64) (float64, bool) {
	cx, cz := CellX(x), CellZ(z)
	if cx < 0 || cz < 0 {
		return 0, false
	}
	tx, tz := TileXZ(cx, cz)
	if !tileInRange(tx, tz) {
		return 0, false
	}
	tile := e.tiles[tx*MaxTilesZ+tz].Load()
	if tile == nil {
		return 0, false
	}
	return tile.Top(cx, cz)
}

// WriteTile encodes tile into dir as "<tileX>_<tileZ>.hmap".
func WriteTile(dir string, tileX, tileZ int, tile *Tile) error {
	name := TileFileName(tileX, tileZ)
	if err := os.WriteFile(filepath.Join(dir, name), tile.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing heightmap %s: %w", name, err)
	}
	return nil
}

// TileFileName returns the file name of tile (tileX, tileZ).
func TileFileName(tileX, tileZ int) string {
	return fmt.Sprintf("%d_%d%s", tileX, tileZ, TileExt)
}

func tileInRange(tx, tz int) bool {
	return tx >= 0 && tx < MaxTilesX && tz >= 0 && tz < MaxTilesZ
}
