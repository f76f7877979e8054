package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/hexnav/internal/ai"
	"github.com/udisondev/hexnav/internal/config"
	"github.com/udisondev/hexnav/internal/db"
	"github.com/udisondev/hexnav/internal/nav"
	"github.com/udisondev/hexnav/internal/terrain"
)

// newSampler builds the height sampler selected by cfg.
func newSampler(cfg config.Terrain) (nav.HeightSampler, error) {
	switch cfg.Source {
	case config.SourceHeightmap:
		engine := terrain.NewEngine()
		if err := engine.LoadDir(cfg.HeightmapDir); err != nil {
			return nil, fmt.Errorf("loading heightmap: %w", err)
		}
		if !engine.IsLoaded() {
			return nil, fmt.Errorf("loading heightmap: no tiles in %s", cfg.HeightmapDir)
		}
		return engine, nil
	case config.SourceNoise:
		return terrain.NewNoise(cfg.Noise.NoiseConfig()), nil
	default:
		return nil, fmt.Errorf("unknown terrain source %q", cfg.Source)
	}
}

// openStore opens the configured snapshot store. The store is nil when
// persistence is disabled; the returned close func is always safe to call.
func openStore(ctx context.Context, cfg config.Storage) (db.SnapshotStore, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		return db.NewSnapshotRepository(database.Pool()), database.Close, nil

	case config.DriverSQLite:
		store, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("sqlite store opened", "path", cfg.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing sqlite store", "err", err)
			}
		}, nil

	default:
		return nil, func() {}, nil
	}
}

// spawnChasers registers cfg.Enemies chasers scattered around the patrol's
// start and returns how many were registered.
func spawnChasers(mgr *ai.TickManager, navigator ai.Navigator, ground nav.HeightSampler, target nav.PositionProvider, cfg config.Simulation) int {
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0))
	origin := target.CurrentTargetPosition()

	for i := range cfg.Enemies {
		angle := rng.Float64() * 2 * math.Pi
		dist := cfg.SpawnRadius * math.Sqrt(rng.Float64())
		pos := origin.Add(mgl64.Vec3{math.Cos(angle) * dist, 0, math.Sin(angle) * dist})
		if h, ok := ground.SampleHeight(pos.X(), pos.Z()); ok {
			pos[1] = h
		}

		id := uint32(i + 1)
		mgr.Register(id, ai.NewChaserAI(id, pos, navigator, ground, target, cfg.EnemySpeed, cfg.ArriveRadius))
	}
	return cfg.Enemies
}
