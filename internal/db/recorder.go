package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/hexnav/internal/nav"
)

// DefaultKeepSnapshots is how many snapshots the recorder retains.
const DefaultKeepSnapshots = 5

// Recorder persists rebuilt grids off the simulation goroutine.
type Recorder struct {
	store       SnapshotStore
	heightDelta float64
	keep        int
	queue       chan *nav.Snapshot
}

// NewRecorder creates a recorder saving into store and retaining the newest
// keep snapshots (keep <= 0 disables pruning).
func NewRecorder(store SnapshotStore, heightDelta float64, keep int) *Recorder {
	return &Recorder{
		store:       store,
		heightDelta: heightDelta,
		keep:        keep,
		queue:       make(chan *nav.Snapshot, 4),
	}
}

// Offer queues snap for saving without blocking. A full queue drops it.
func (r *Recorder) Offer(snap *nav.Snapshot) {
	if snap == nil {
		return
	}
	select {
	case r.queue <- snap:
	default:
		slog.Warn("snapshot recorder busy, dropping snapshot", "generation", snap.GridGeneration)
	}
}

// Run saves queued snapshots until ctx is canceled.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-r.queue:
			if err := r.Save(ctx, snap); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Error("saving navigation snapshot", "generation", snap.GridGeneration, "err", err)
			}
		}
	}
}

// Save stores snap and prunes old snapshots.
func (r *Recorder) Save(ctx context.Context, snap *nav.Snapshot) error {
	rec, err := NewSnapshotRecord(snap, r.heightDelta)
	if err != nil {
		return err
	}
	if err := r.store.SaveSnapshot(ctx, rec); err != nil {
		return err
	}
	slog.Info("navigation snapshot saved",
		"id", rec.ID,
		"generation", rec.GridGeneration,
		"bytes", len(rec.Grids))

	if r.keep > 0 {
		n, err := r.store.PruneSnapshots(ctx, r.keep)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Debug("old navigation snapshots pruned", "deleted", n)
		}
	}
	return nil
}

// LoadWarmStart returns the latest stored snapshot if it was built with the
// grid parameters of opts. It returns nil without error when the store is
// empty or holds an incompatible grid.
func LoadWarmStart(ctx context.Context, store SnapshotStore, opts nav.Options) (*nav.Snapshot, error) {
	rec, err := store.LatestSnapshot(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading warm start: %w", err)
	}
	if !rec.Compatible(opts) {
		slog.Info("stored navigation snapshot ignored, grid parameters changed",
			"id", rec.ID,
			"cell_size", rec.CellSize,
			"height_delta", rec.HeightDelta)
		return nil, nil
	}
	snap, err := rec.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("loading warm start: %w", err)
	}
	return snap, nil
}
