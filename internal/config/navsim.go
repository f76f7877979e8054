package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/udisondev/hexnav/internal/nav"
	"github.com/udisondev/hexnav/internal/terrain"
)

// Terrain sources.
const (
	SourceNoise     = "noise"
	SourceHeightmap = "heightmap"
)

// Navigation holds grid and cadence parameters.
type Navigation struct {
	CellSize          float64 `yaml:"cell_size"`
	HeightDelta       float64 `yaml:"height_delta"`
	MaxRegions        int     `yaml:"max_regions"`
	HalfExtent        float64 `yaml:"half_extent"`
	RecenterThreshold float64 `yaml:"recenter_threshold"`
	RebuildEvery      uint64  `yaml:"rebuild_every"` // ticks
	RefreshEvery      uint64  `yaml:"refresh_every"` // ticks
}

// Options converts the section to service options.
func (n Navigation) Options() nav.Options {
	return nav.Options{
		CellSize:          n.CellSize,
		HeightDelta:       n.HeightDelta,
		MaxRegions:        n.MaxRegions,
		HalfExtent:        n.HalfExtent,
		RecenterThreshold: n.RecenterThreshold,
		RebuildEvery:      n.RebuildEvery,
		RefreshEvery:      n.RefreshEvery,
	}
}

// Noise mirrors terrain.NoiseConfig.
type Noise struct {
	Seed          int64   `yaml:"seed"`
	Octaves       int     `yaml:"octaves"`
	Frequency     float64 `yaml:"frequency"`
	Persistence   float64 `yaml:"persistence"`
	Amplitude     float64 `yaml:"amplitude"`
	Terrace       float64 `yaml:"terrace"`
	HoleThreshold float64 `yaml:"hole_threshold"`
	HoleFrequency float64 `yaml:"hole_frequency"`
}

// NoiseConfig converts the section to a terrain noise config.
func (n Noise) NoiseConfig() terrain.NoiseConfig {
	return terrain.NoiseConfig(n)
}

// Terrain selects the height sampler.
type Terrain struct {
	Source       string `yaml:"source"` // noise or heightmap
	HeightmapDir string `yaml:"heightmap_dir"`
	Noise        Noise  `yaml:"noise"`
}

// Simulation holds headless simulation parameters.
type Simulation struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Duration     time.Duration `yaml:"duration"` // 0 runs until interrupted
	StatsEvery   time.Duration `yaml:"stats_every"`

	Enemies      int     `yaml:"enemies"`
	EnemySpeed   float64 `yaml:"enemy_speed"` // world units per tick
	ArriveRadius float64 `yaml:"arrive_radius"`
	SpawnRadius  float64 `yaml:"spawn_radius"`
	Seed         int64   `yaml:"seed"`

	Patrol      [][3]float64 `yaml:"patrol"`
	PatrolSpeed float64      `yaml:"patrol_speed"`
}

// PatrolRoute returns the patrol waypoints as vectors.
func (s Simulation) PatrolRoute() []mgl64.Vec3 {
	route := make([]mgl64.Vec3, len(s.Patrol))
	for i, p := range s.Patrol {
		route[i] = mgl64.Vec3(p)
	}
	return route
}

// NavSim holds all configuration for the navigation simulator.
type NavSim struct {
	LogLevel   string     `yaml:"log_level"`
	Navigation Navigation `yaml:"navigation"`
	Terrain    Terrain    `yaml:"terrain"`
	Simulation Simulation `yaml:"simulation"`
	Storage    Storage    `yaml:"storage"`
}

// DefaultNavSim returns NavSim config with sensible defaults.
func DefaultNavSim() NavSim {
	opts := nav.DefaultOptions()
	noise := terrain.DefaultNoiseConfig()
	return NavSim{
		LogLevel: "info",
		Navigation: Navigation{
			CellSize:          opts.CellSize,
			HeightDelta:       opts.HeightDelta,
			MaxRegions:        opts.MaxRegions,
			HalfExtent:        opts.HalfExtent,
			RecenterThreshold: opts.RecenterThreshold,
			RebuildEvery:      opts.RebuildEvery,
			RefreshEvery:      opts.RefreshEvery,
		},
		Terrain: Terrain{
			Source:       SourceNoise,
			HeightmapDir: "data/heightmap",
			Noise:        Noise(noise),
		},
		Simulation: Simulation{
			TickInterval: 50 * time.Millisecond,
			StatsEvery:   5 * time.Second,
			Enemies:      8,
			EnemySpeed:   0.4,
			ArriveRadius: 1.5,
			SpawnRadius:  40,
			Seed:         1,
			Patrol: [][3]float64{
				{-30, 0, -30},
				{30, 0, -30},
				{30, 0, 30},
				{-30, 0, 30},
			},
			PatrolSpeed: 0.25,
		},
		Storage: DefaultStorage(),
	}
}

// LoadNavSim loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadNavSim(path string) (NavSim, error) {
	cfg := DefaultNavSim()
	if err := load(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings the simulator cannot run with.
func (c NavSim) Validate() error {
	var errs []error
	if c.Navigation.CellSize <= 0 {
		errs = append(errs, errors.New("navigation.cell_size must be positive"))
	}
	if c.Navigation.HeightDelta <= 0 {
		errs = append(errs, errors.New("navigation.height_delta must be positive"))
	}
	if c.Navigation.HalfExtent < c.Navigation.CellSize {
		errs = append(errs, errors.New("navigation.half_extent must be at least one cell"))
	}
	switch c.Terrain.Source {
	case SourceNoise, SourceHeightmap:
	default:
		errs = append(errs, fmt.Errorf("terrain.source %q unknown", c.Terrain.Source))
	}
	switch c.Storage.Driver {
	case DriverNone, DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q unknown", c.Storage.Driver))
	}
	if len(c.Simulation.Patrol) == 0 {
		errs = append(errs, errors.New("simulation.patrol needs at least one waypoint"))
	}
	return errors.Join(errs...)
}
