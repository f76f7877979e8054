package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/udisondev/hexnav/internal/db/migrations"
)

// SQLiteStore stores navigation snapshots in a local SQLite file.
type SQLiteStore struct {
	conn *sqlx.DB
}

// sqliteRow stores created_at as unix nanoseconds.
type sqliteRow struct {
	SnapshotRecord
	CreatedAtNanos int64 `db:"created_at"`
}

// OpenSQLite opens or creates the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	if err := migrate(ctx, conn.DB, "sqlite3", migrations.SQLiteDir); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating sqlite %s: %w", path, err)
	}
	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// SaveSnapshot inserts rec.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, rec SnapshotRecord) error {
	row := sqliteRow{SnapshotRecord: rec, CreatedAtNanos: rec.CreatedAt.UnixNano()}
	_, err := s.conn.NamedExecContext(ctx, `
		INSERT INTO nav_snapshots (
			id, min_x, max_x, min_z, max_z, cell_size, height_delta,
			width, depth, region_count, leftover, missing_cells,
			grid_generation, grids, created_at
		) VALUES (
			:id, :min_x, :max_x, :min_z, :max_z, :cell_size, :height_delta,
			:width, :depth, :region_count, :leftover, :missing_cells,
			:grid_generation, :grids, :created_at
		)`, row)
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", rec.ID, err)
	}
	return nil
}

// LatestSnapshot loads the most recently created snapshot.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (SnapshotRecord, error) {
	var row sqliteRow
	err := s.conn.GetContext(ctx, &row, `
		SELECT id, min_x, max_x, min_z, max_z, cell_size, height_delta,
		       width, depth, region_count, leftover, missing_cells,
		       grid_generation, grids, created_at
		FROM nav_snapshots
		ORDER BY created_at DESC, grid_generation DESC
		LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SnapshotRecord{}, ErrNoSnapshot
		}
		return SnapshotRecord{}, fmt.Errorf("loading latest snapshot: %w", err)
	}
	rec := row.SnapshotRecord
	rec.CreatedAt = time.Unix(0, row.CreatedAtNanos).UTC()
	return rec, nil
}

// PruneSnapshots deletes all but the newest keep snapshots.
func (s *SQLiteStore) PruneSnapshots(ctx context.Context, keep int) (int64, error) {
	res, err := s.conn.ExecContext(ctx, `
		DELETE FROM nav_snapshots
		WHERE id NOT IN (
			SELECT id FROM nav_snapshots
			ORDER BY created_at DESC, grid_generation DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning snapshots: %w", err)
	}
	return n, nil
}

// CountSnapshots returns the number of stored snapshots.
func (s *SQLiteStore) CountSnapshots(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM nav_snapshots`); err != nil {
		return 0, fmt.Errorf("counting snapshots: %w", err)
	}
	return n, nil
}
