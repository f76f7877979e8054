package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository stores navigation snapshots in PostgreSQL.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// SaveSnapshot inserts rec.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, rec SnapshotRecord) error {
	query := `
		INSERT INTO nav_snapshots (
			id, min_x, max_x, min_z, max_z, cell_size, height_delta,
			width, depth, region_count, leftover, missing_cells,
			grid_generation, grids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.MinX, rec.MaxX, rec.MinZ, rec.MaxZ, rec.CellSize, rec.HeightDelta,
		rec.Width, rec.Depth, rec.RegionCount, rec.Leftover, rec.MissingCells,
		rec.GridGeneration, rec.Grids, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", rec.ID, err)
	}
	return nil
}

// LatestSnapshot loads the most recently created snapshot.
func (r *SnapshotRepository) LatestSnapshot(ctx context.Context) (SnapshotRecord, error) {
	query := `
		SELECT id, min_x, max_x, min_z, max_z, cell_size, height_delta,
		       width, depth, region_count, leftover, missing_cells,
		       grid_generation, grids, created_at
		FROM nav_snapshots
		ORDER BY created_at DESC, grid_generation DESC
		LIMIT 1
	`

	var rec SnapshotRecord
	err := r.pool.QueryRow(ctx, query).Scan(
		&rec.ID, &rec.MinX, &rec.MaxX, &rec.MinZ, &rec.MaxZ, &rec.CellSize, &rec.HeightDelta,
		&rec.Width, &rec.Depth, &rec.RegionCount, &rec.Leftover, &rec.MissingCells,
		&rec.GridGeneration, &rec.Grids, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SnapshotRecord{}, ErrNoSnapshot
		}
		return SnapshotRecord{}, fmt.Errorf("loading latest snapshot: %w", err)
	}
	return rec, nil
}

// PruneSnapshots deletes all but the newest keep snapshots.
func (r *SnapshotRepository) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	query := `
		DELETE FROM nav_snapshots
		WHERE id NOT IN (
			SELECT id FROM nav_snapshots
			ORDER BY created_at DESC, grid_generation DESC
			LIMIT $1
		)
	`

	tag, err := r.pool.Exec(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountSnapshots returns the number of stored snapshots.
func (r *SnapshotRepository) CountSnapshots(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM nav_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}
