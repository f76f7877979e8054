package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexnav/internal/ai"
	"github.com/udisondev/hexnav/internal/config"
	"github.com/udisondev/hexnav/internal/db"
	"github.com/udisondev/hexnav/internal/nav"
)

const DefaultConfigPath = "config/navsim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := config.ResolvePath(DefaultConfigPath)
	cfg, err := config.LoadNavSim(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)
	nav.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("navsim starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"terrain", cfg.Terrain.Source,
		"storage", cfg.Storage.Driver)

	sampler, err := newSampler(cfg.Terrain)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := cfg.Navigation.Options()
	patrol := ai.NewPatrolTarget(cfg.Simulation.PatrolRoute(), cfg.Simulation.PatrolSpeed, sampler)
	svc := nav.NewService(sampler, patrol, opts)

	if store != nil && cfg.Storage.WarmStart {
		if err := warmStart(ctx, store, svc); err != nil {
			return err
		}
	}

	mgr := ai.NewTickManager(cfg.Simulation.TickInterval, svc, patrol)
	spawned := spawnChasers(mgr, svc, sampler, patrol, cfg.Simulation)
	slog.Info("chasers spawned", "count", spawned)

	if cfg.Simulation.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Simulation.Duration)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)

	if store != nil {
		recorder := db.NewRecorder(store, opts.HeightDelta, db.DefaultKeepSnapshots)
		mgr.OnRebuild(recorder.Offer)
		g.Go(func() error {
			slog.Info("starting snapshot recorder", "keep", db.DefaultKeepSnapshots)
			if err := recorder.Run(gctx); err != nil {
				return fmt.Errorf("snapshot recorder: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		if err := mgr.Start(gctx); err != nil {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		reportStats(gctx, mgr, svc, cfg.Simulation.StatsEvery)
		return nil
	})

	if err := g.Wait(); err != nil && !isShutdown(err) {
		return fmt.Errorf("simulation error: %w", err)
	}

	reportOnce(mgr, svc)
	slog.Info("navsim stopped")
	return nil
}

// warmStart restores the latest compatible stored grid into svc.
func warmStart(ctx context.Context, store db.SnapshotStore, svc *nav.Service) error {
	snap, err := db.LoadWarmStart(ctx, store, svc.Options())
	if err != nil {
		return err
	}
	if snap == nil {
		slog.Info("no stored navigation grid, cold start")
		return nil
	}
	if err := svc.Restore(snap); err != nil {
		return fmt.Errorf("restoring navigation grid: %w", err)
	}
	return nil
}

func reportStats(ctx context.Context, mgr *ai.TickManager, svc *nav.Service, every time.Duration) {
	if every <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reportOnce(mgr, svc)
		}
	}
}

func reportOnce(mgr *ai.TickManager, svc *nav.Service) {
	stats := mgr.Stats()
	args := []any{
		"tick", stats.Tick,
		"chasing", stats.Chasing,
		"idle", stats.Idle,
		"arrived", stats.Arrived,
		"rebuilds", stats.Rebuilds,
	}
	if snap := svc.Snapshot(); snap != nil {
		args = append(args,
			"regions", snap.RegionCount,
			"missing", len(snap.Missing),
			"target", snap.Target.String(),
			"grid_generation", snap.GridGeneration)
	}
	slog.Info("simulation stats", args...)
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
