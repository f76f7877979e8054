package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/hexnav/internal/nav"
)

// ErrNoSnapshot is returned when a store holds no snapshot.
var ErrNoSnapshot = errors.New("no navigation snapshot stored")

// SnapshotRecord is one persisted navigation grid. Only the static grids
// (heights and regions) are stored; the distance field depends on the
// target and is recomputed on restore.
type SnapshotRecord struct {
	ID             uuid.UUID `db:"id"`
	MinX           float64   `db:"min_x"`
	MaxX           float64   `db:"max_x"`
	MinZ           float64   `db:"min_z"`
	MaxZ           float64   `db:"max_z"`
	CellSize       float64   `db:"cell_size"`
	HeightDelta    float64   `db:"height_delta"`
	Width          int       `db:"width"`
	Depth          int       `db:"depth"`
	RegionCount    int       `db:"region_count"`
	Leftover       int       `db:"leftover"`
	MissingCells   int       `db:"missing_cells"`
	GridGeneration int64     `db:"grid_generation"`
	Grids          []byte    `db:"grids"`
	CreatedAt      time.Time `db:"-"`
}

// SnapshotStore persists navigation snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, rec SnapshotRecord) error
	// LatestSnapshot returns ErrNoSnapshot when the store is empty.
	LatestSnapshot(ctx context.Context) (SnapshotRecord, error)
	// PruneSnapshots deletes all but the newest keep snapshots.
	PruneSnapshots(ctx context.Context, keep int) (int64, error)
}

// NewSnapshotRecord encodes snap, built with heightDelta, for storage.
func NewSnapshotRecord(snap *nav.Snapshot, heightDelta float64) (SnapshotRecord, error) {
	grids, err := EncodeGrids(snap.Heights, snap.Regions)
	if err != nil {
		return SnapshotRecord{}, err
	}
	b := snap.Layout.Bounds
	createdAt := snap.BuiltAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return SnapshotRecord{
		ID:             uuid.New(),
		MinX:           b.MinX,
		MaxX:           b.MaxX,
		MinZ:           b.MinZ,
		MaxZ:           b.MaxZ,
		CellSize:       snap.Layout.CellSize,
		HeightDelta:    heightDelta,
		Width:          snap.Layout.Width,
		Depth:          snap.Layout.Depth,
		RegionCount:    snap.RegionCount,
		Leftover:       snap.Leftover,
		MissingCells:   len(snap.Missing),
		GridGeneration: int64(snap.GridGeneration),
		Grids:          grids,
		CreatedAt:      createdAt.UTC(),
	}, nil
}

// Snapshot decodes the record into a snapshot without a distance field,
// ready for nav.Service.Restore.
func (r SnapshotRecord) Snapshot() (*nav.Snapshot, error) {
	layout, err := nav.NewLayout(nav.Bounds{MinX: r.MinX, MaxX: r.MaxX, MinZ: r.MinZ, MaxZ: r.MaxZ}, r.CellSize)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", r.ID, err)
	}
	if layout.Width != r.Width || layout.Depth != r.Depth {
		return nil, fmt.Errorf("snapshot %s: stored %dx%d, layout gives %dx%d",
			r.ID, r.Width, r.Depth, layout.Width, layout.Depth)
	}

	heights, regions, err := DecodeGrids(r.Grids)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", r.ID, err)
	}

	var missing []nav.Hex
	for col := range heights.Width() {
		for row := range heights.Depth() {
			h := nav.Hex{Col: col, Row: row}
			if !nav.HasTerrain(heights.At(h)) {
				missing = append(missing, h)
			}
		}
	}

	return &nav.Snapshot{
		Layout:         layout,
		Heights:        heights,
		Regions:        regions,
		RegionCount:    r.RegionCount,
		Leftover:       r.Leftover,
		Missing:        missing,
		GridGeneration: uint64(r.GridGeneration),
		BuiltAt:        r.CreatedAt,
	}, nil
}

// Compatible reports whether the record was built with the grid parameters
// of opts. Regions depend on both the cell size and the height delta.
func (r SnapshotRecord) Compatible(opts nav.Options) bool {
	return r.CellSize == opts.CellSize && r.HeightDelta == opts.HeightDelta
}
