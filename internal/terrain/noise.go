package terrain

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// NoiseConfig shapes procedural terrain.
type NoiseConfig struct {
	Seed        int64
	Octaves     int
	Frequency   float64
	Persistence float64
	Amplitude   float64 // height of the noise peak in world units

	// Terrace rounds heights down to multiples of this step, 0 keeps them
	// smooth. Terraces give cliffs that split regions.
	Terrace float64

	// HoleThreshold cuts holes where the hole noise exceeds it.
	// Values outside (0, 1) disable holes.
	HoleThreshold float64
	HoleFrequency float64
}

// DefaultNoiseConfig returns rolling terraced hills without holes.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Seed:          1,
		Octaves:       4,
		Frequency:     0.01,
		Persistence:   0.5,
		Amplitude:     24,
		Terrace:       1.5,
		HoleFrequency: 0.05,
	}
}

// Noise is a procedural height field built from layered simplex noise.
// It implements nav.HeightSampler.
type Noise struct {
	cfg   NoiseConfig
	elev  opensimplex.Noise
	holes opensimplex.Noise
}

// NewNoise creates a noise sampler. Equal configs give equal terrain.
func NewNoise(cfg NoiseConfig) *Noise {
	if cfg.Octaves < 1 {
		cfg.Octaves = 1
	}
	return &Noise{
		cfg:   cfg,
		elev:  opensimplex.NewNormalized(cfg.Seed),
		holes: opensimplex.NewNormalized(cfg.Seed + 1),
	}
}

// SampleHeight returns the terrain height at world (x, z).
func (n *Noise) SampleHeight(x, z float64) (float64, bool) {
	if n.cfg.HoleThreshold > 0 && n.cfg.HoleThreshold < 1 {
		if n.holes.Eval2(x*n.cfg.HoleFrequency, z*n.cfg.HoleFrequency) > n.cfg.HoleThreshold {
			return 0, false
		}
	}

	h := octaveNoise(n.elev, x, z, n.cfg.Octaves, n.cfg.Frequency, n.cfg.Persistence) * n.cfg.Amplitude
	if n.cfg.Terrace > 0 {
		h = math.Floor(h/n.cfg.Terrace) * n.cfg.Terrace
	}
	return h, true
}

// octaveNoise layers octaves of doubling frequency; result is in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, z float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for range octaves {
		total += noise.Eval2(x*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
