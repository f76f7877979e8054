package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/hexnav/internal/nav"
)

// DefaultTickInterval is the simulation tick period.
const DefaultTickInterval = 50 * time.Millisecond

// NavTicker runs the navigation rebuild cadence. *nav.Service implements it.
type NavTicker interface {
	Tick(tick uint64) (nav.TickResult, error)
	Snapshot() *nav.Snapshot
}

// Stepper advances a scripted target by one tick.
type Stepper interface {
	Step()
}

// Stats summarizes controller intentions after a tick.
type Stats struct {
	Tick     uint64
	Chasing  int
	Idle     int
	Arrived  int
	Rebuilds uint64
}

// TickManager drives the simulation: the target, the navigation cadence and
// then every registered controller, in that order, once per tick.
type TickManager struct {
	interval time.Duration
	nav      NavTicker
	target   Stepper

	onRebuild func(*nav.Snapshot)

	controllers     sync.Map // map[uint32]Controller, keyed by object id
	controllerCount atomic.Int32
	tick            atomic.Uint64
	rebuilds        atomic.Uint64
	stopOnce        sync.Once
	stopCh          chan struct{}
}

// NewTickManager creates a tick manager. target may be nil.
func NewTickManager(interval time.Duration, navigation NavTicker, target Stepper) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickManager{
		interval: interval,
		nav:      navigation,
		target:   target,
		stopCh:   make(chan struct{}),
	}
}

// OnRebuild registers fn to receive every snapshot produced by a grid
// rebuild. fn runs on the tick goroutine and must not block.
// Must be called before Start.
func (m *TickManager) OnRebuild(fn func(*nav.Snapshot)) {
	m.onRebuild = fn
}

// Register registers a controller under objectID and starts it.
func (m *TickManager) Register(objectID uint32, controller Controller) {
	if _, loaded := m.controllers.Swap(objectID, controller); !loaded {
		m.controllerCount.Add(1)
	}
	controller.Start()

	slog.Debug("controller registered",
		"objectID", objectID,
		"intention", controller.CurrentIntention())
}

// Unregister stops and removes the controller for objectID.
func (m *TickManager) Unregister(objectID uint32) {
	value, ok := m.controllers.LoadAndDelete(objectID)
	if !ok {
		return
	}
	m.controllerCount.Add(-1)

	controller := value.(Controller)
	controller.Stop()

	slog.Debug("controller unregistered", "objectID", objectID)
}

// Start runs the tick loop (blocks until context is canceled or Stop).
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping", "ticks", m.tick.Load())
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "ticks", m.tick.Load())
			return nil

		case <-ticker.C:
			m.tickAll()
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// tickAll runs one simulation tick.
func (m *TickManager) tickAll() {
	tick := m.tick.Add(1) - 1

	if m.target != nil {
		m.target.Step()
	}

	if m.nav != nil {
		res, err := m.nav.Tick(tick)
		if err != nil {
			slog.Error("navigation tick failed", "tick", tick, "err", err)
		} else if res.Rebuilt {
			m.rebuilds.Add(1)
			if m.onRebuild != nil {
				m.onRebuild(m.nav.Snapshot())
			}
		}
	}

	count := 0
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick(tick)
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("tick completed", "tick", tick, "controllers", count)
	}
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Ticks returns the number of ticks run so far.
func (m *TickManager) Ticks() uint64 {
	return m.tick.Load()
}

// GetController returns the controller registered under objectID.
func (m *TickManager) GetController(objectID uint32) (Controller, error) {
	value, ok := m.controllers.Load(objectID)
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return value.(Controller), nil
}

// Stats counts controllers by intention.
func (m *TickManager) Stats() Stats {
	s := Stats{Tick: m.tick.Load(), Rebuilds: m.rebuilds.Load()}
	m.controllers.Range(func(_, value any) bool {
		switch value.(Controller).CurrentIntention() {
		case IntentionChase:
			s.Chasing++
		case IntentionArrived:
			s.Arrived++
		default:
			s.Idle++
		}
		return true
	})
	return s
}
