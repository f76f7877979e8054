package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/udisondev/hexnav/internal/db"
)

// MemoryStore is an in-memory db.SnapshotStore for unit tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []db.SnapshotRecord
	saved   chan struct{}

	// SaveErr, when set, fails every save.
	SaveErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saved: make(chan struct{}, 64)}
}

func (m *MemoryStore) SaveSnapshot(_ context.Context, rec db.SnapshotRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.records = append(m.records, rec)
	select {
	case m.saved <- struct{}{}:
	default:
	}
	return nil
}

func (m *MemoryStore) LatestSnapshot(context.Context) (db.SnapshotRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) == 0 {
		return db.SnapshotRecord{}, db.ErrNoSnapshot
	}
	return m.sorted()[0], nil
}

func (m *MemoryStore) PruneSnapshots(_ context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.records) <= keep {
		return 0, nil
	}
	sorted := m.sorted()
	deleted := len(sorted) - keep
	m.records = sorted[:keep]
	return int64(deleted), nil
}

// Records returns a copy of the stored records, newest first.
func (m *MemoryStore) Records() []db.SnapshotRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted()
}

// Saved signals after each successful save.
func (m *MemoryStore) Saved() <-chan struct{} {
	return m.saved
}

func (m *MemoryStore) sorted() []db.SnapshotRecord {
	out := append([]db.SnapshotRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].GridGeneration > out[j].GridGeneration
	})
	return out
}
