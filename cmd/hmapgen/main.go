package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexnav/internal/config"
	"github.com/udisondev/hexnav/internal/terrain"
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

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// tileRange is the square of tiles [min, max) on both axes.
type tileRange struct {
	min, max int
}

func (r tileRange) count() int {
	n := r.max - r.min
	return n * n
}

// centredRange returns the tiles within radius tiles of the world origin.
func centredRange(radius int) (tileRange, error) {
	if radius < 1 || radius > terrain.MaxTilesX/2 {
		return tileRange{}, fmt.Errorf("radius %d out of range [1, %d]", radius, terrain.MaxTilesX/2)
	}
	mid := terrain.MaxTilesX / 2
	return tileRange{min: mid - radius, max: mid + radius}, nil
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hmapgen", flag.ContinueOnError)
	cfgPath := fs.String("config", config.ResolvePath(DefaultConfigPath), "navsim config providing terrain.noise")
	out := fs.String("out", "", "output directory (default: terrain.heightmap_dir)")
	radius := fs.Int("radius", 1, "tiles to bake on each side of the world origin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadNavSim(*cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	dir := *out
	if dir == "" {
		dir = cfg.Terrain.HeightmapDir
	}
	tiles, err := centredRange(*radius)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	start := time.Now()
	written, err := bake(ctx, dir, tiles, terrain.NewNoise(cfg.Terrain.Noise.NoiseConfig()))
	if err != nil {
		return err
	}
	slog.Info("heightmap baked",
		"dir", dir,
		"tiles", written,
		"seed", cfg.Terrain.Noise.Seed,
		"elapsed", time.Since(start))
	return nil
}

// bake writes every tile of r into dir, one tile per worker.
func bake(ctx context.Context, dir string, r tileRange, noise *terrain.Noise) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var written atomic.Int32
	for tx := r.min; tx < r.max; tx++ {
		for tz := r.min; tz < r.max; tz++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := terrain.WriteTile(dir, tx, tz, terrain.BakeTile(tx, tz, noise)); err != nil {
					return err
				}
				written.Add(1)
				slog.Debug("tile baked", "file", terrain.TileFileName(tx, tz))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), fmt.Errorf("baking tiles: %w", err)
	}
	return int(written.Load()), nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
