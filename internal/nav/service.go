package nav

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Options configures a Service.
type Options struct {
	CellSize    float64
	HeightDelta float64
	MaxRegions  int

	// HalfExtent is half the side of the square grid kept around the target.
	HalfExtent float64
	// RecenterThreshold is how far the target may pull the desired grid
	// centre away from the current one before a rebuild.
	RecenterThreshold float64

	RebuildEvery uint64 // ticks between periodic rebuilds, 0 disables
	RefreshEvery uint64 // ticks between distance field refreshes
}

// DefaultOptions returns Options with the package defaults.
func DefaultOptions() Options {
	return Options{
		CellSize:          DefaultCellSize,
		HeightDelta:       DefaultHeightDelta,
		MaxRegions:        DefaultMaxRegions,
		HalfExtent:        DefaultHalfExtent,
		RecenterThreshold: DefaultRecenterThreshold,
		RebuildEvery:      DefaultRebuildEvery,
		RefreshEvery:      DefaultRefreshEvery,
	}
}

// Snapshot is one published navigation state. It is immutable once
// published; readers may hold it for as long as they like.
type Snapshot struct {
	Layout   Layout
	Heights  *Grid[float64]
	Regions  *Grid[int32]
	Distance *Grid[int32]

	Target    Hex
	TargetPos mgl64.Vec3

	RegionCount int
	Leftover    int   // terrain cells left unassigned by the region cap
	Missing     []Hex // cells where no probe hit terrain

	GridGeneration  uint64
	FieldGeneration uint64
	BuiltAt         time.Time
}

// TickResult reports what a Tick did.
type TickResult struct {
	Rebuilt       bool
	RebuildReason string
	Refreshed     bool
}

// Service owns the navigation grids. Writers (RebuildGrid,
// RefreshDistanceField, Restore, Tick) are serialized; each builds fresh
// arrays and publishes a new Snapshot atomically, so readers never observe a
// grid mid-update and never block.
type Service struct {
	sampler HeightSampler
	target  PositionProvider
	opts    Options

	mu          sync.Mutex // serializes writers
	current     atomic.Pointer[Snapshot]
	lastTarget  mgl64.Vec3
	lastRebuild uint64
	gridGen     uint64
	fieldGen    uint64
}

// NewService creates a Service with no grid. target may be nil, in which case
// queries steer towards the position of the last refresh.
func NewService(sampler HeightSampler, target PositionProvider, opts Options) *Service {
	return &Service{
		sampler: sampler,
		target:  target,
		opts:    opts,
	}
}

// Options returns the service configuration.
func (s *Service) Options() Options {
	return s.opts
}

// Snapshot returns the current published state, or nil before the first
// rebuild.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// RebuildGrid resamples terrain inside bounds, repartitions regions and
// recomputes the distance field for the last known target.
// Missing terrain never fails a rebuild; only an empty layout does.
func (s *Service) RebuildGrid(bounds Bounds) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(bounds)
}

func (s *Service) rebuildLocked(bounds Bounds) error {
	layout, err := NewLayout(bounds, s.opts.CellSize)
	if err != nil {
		return fmt.Errorf("rebuilding grid: %w", err)
	}

	start := time.Now()
	heights, missing := BuildHeights(layout, s.sampler)
	part := PartitionRegions(heights, s.opts.HeightDelta, s.opts.MaxRegions)

	targetPos := s.currentTarget()
	target := layout.WorldToHex(targetPos.X(), targetPos.Z())
	dist := BuildDistanceField(heights, target, s.opts.HeightDelta)

	s.gridGen++
	s.fieldGen++
	s.lastTarget = targetPos
	snap := &Snapshot{
		Layout:          layout,
		Heights:         heights,
		Regions:         part.Regions,
		Distance:        dist,
		Target:          target,
		TargetPos:       targetPos,
		RegionCount:     part.Count,
		Leftover:        part.Leftover,
		Missing:         missing,
		GridGeneration:  s.gridGen,
		FieldGeneration: s.fieldGen,
		BuiltAt:         time.Now(),
	}
	s.current.Store(snap)

	slog.Info("navigation grid rebuilt",
		"bounds", bounds.String(),
		"width", layout.Width,
		"depth", layout.Depth,
		"regions", part.Count,
		"generation", s.gridGen,
		"elapsed", time.Since(start))
	if len(missing) > 0 {
		slog.Warn("no terrain under grid cells", "cells", len(missing), "generation", s.gridGen)
	}
	if part.Leftover > 0 {
		slog.Warn("region cap reached, cells left unassigned",
			"cap", s.opts.MaxRegions,
			"unassigned", part.Leftover)
	}
	return nil
}

// RefreshDistanceField reseeds the distance field at the cell nearest to
// targetPos. It is a no-op before the first rebuild.
func (s *Service) RefreshDistanceField(targetPos mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(targetPos)
}

func (s *Service) refreshLocked(targetPos mgl64.Vec3) {
	s.lastTarget = targetPos
	prev := s.current.Load()
	if prev == nil {
		return
	}

	target := prev.Layout.WorldToHex(targetPos.X(), targetPos.Z())
	dist := BuildDistanceField(prev.Heights, target, s.opts.HeightDelta)

	s.fieldGen++
	next := *prev
	next.Distance = dist
	next.Target = target
	next.TargetPos = targetPos
	next.FieldGeneration = s.fieldGen
	s.current.Store(&next)

	if IsDebugEnabled() {
		slog.Debug("distance field refreshed", "target", target.String(), "generation", s.fieldGen)
	}
}

// Restore publishes a previously built grid (heights and regions) and
// computes a fresh distance field for the current target.
func (s *Service) Restore(snap *Snapshot) error {
	if snap == nil || snap.Heights == nil || snap.Regions == nil {
		return fmt.Errorf("restoring snapshot: incomplete grids")
	}
	l := snap.Layout
	if snap.Heights.Width() != l.Width || snap.Heights.Depth() != l.Depth ||
		snap.Regions.Width() != l.Width || snap.Regions.Depth() != l.Depth {
		return fmt.Errorf("restoring snapshot: grids do not match layout %dx%d", l.Width, l.Depth)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	targetPos := s.currentTarget()
	target := l.WorldToHex(targetPos.X(), targetPos.Z())

	s.gridGen++
	s.fieldGen++
	s.lastTarget = targetPos
	next := *snap
	next.Distance = BuildDistanceField(snap.Heights, target, s.opts.HeightDelta)
	next.Target = target
	next.TargetPos = targetPos
	next.GridGeneration = s.gridGen
	next.FieldGeneration = s.fieldGen
	s.current.Store(&next)

	slog.Info("navigation grid restored",
		"bounds", l.Bounds.String(),
		"width", l.Width,
		"depth", l.Depth,
		"regions", snap.RegionCount)
	return nil
}

// QueryDirection returns the steering vector from the mover position from
// towards the tracked target. Before the first rebuild it is the straight
// line to the target.
func (s *Service) QueryDirection(from mgl64.Vec3) mgl64.Vec3 {
	snap := s.current.Load()
	if snap == nil {
		return s.queryTarget(nil).Sub(from)
	}
	return snap.PathDirection(from, s.queryTarget(snap))
}

// Tick runs the rebuild and refresh cadence for simulation tick number tick.
// The grid is rebuilt, recentred on the target, when none exists yet, when
// the target drifted more than RecenterThreshold from the grid centre, or
// every RebuildEvery ticks. Otherwise the distance field is refreshed every
// RefreshEvery ticks if the target changed cell.
func (s *Service) Tick(tick uint64) (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.currentTarget()
	desired := BoundsAround(pos, s.opts.HalfExtent)
	snap := s.current.Load()

	var reason string
	switch {
	case snap == nil:
		reason = "initial"
	case snap.Layout.Bounds.Drift(desired) > s.opts.RecenterThreshold:
		reason = "recenter"
	case s.opts.RebuildEvery > 0 && tick-s.lastRebuild >= s.opts.RebuildEvery:
		reason = "periodic"
	}
	if reason != "" {
		if err := s.rebuildLocked(desired); err != nil {
			return TickResult{}, err
		}
		s.lastRebuild = tick
		return TickResult{Rebuilt: true, RebuildReason: reason, Refreshed: true}, nil
	}

	if s.opts.RefreshEvery == 0 || tick%s.opts.RefreshEvery != 0 {
		return TickResult{}, nil
	}
	if snap.Layout.WorldToHex(pos.X(), pos.Z()) == snap.Target {
		return TickResult{}, nil
	}
	s.refreshLocked(pos)
	return TickResult{Refreshed: true}, nil
}

// currentTarget reads the provider, falling back to the last known position.
func (s *Service) currentTarget() mgl64.Vec3 {
	if s.target == nil {
		return s.lastTarget
	}
	return s.target.CurrentTargetPosition()
}

func (s *Service) queryTarget(snap *Snapshot) mgl64.Vec3 {
	if s.target != nil {
		return s.target.CurrentTargetPosition()
	}
	if snap != nil {
		return snap.TargetPos
	}
	return mgl64.Vec3{}
}
