package testutil

import (
	"math"

	"github.com/udisondev/hexnav/internal/nav"
)

// FlatSampler returns terrain at height h everywhere.
func FlatSampler(h float64) nav.HeightSampler {
	return nav.SamplerFunc(func(float64, float64) (float64, bool) { return h, true })
}

// TerraceSampler rises by step every width world units along X and has no
// terrain inside the disc of radius hole around (holeX, holeZ).
func TerraceSampler(step, width, holeX, holeZ, hole float64) nav.HeightSampler {
	return nav.SamplerFunc(func(x, z float64) (float64, bool) {
		if math.Hypot(x-holeX, z-holeZ) < hole {
			return 0, false
		}
		return math.Floor(x/width) * step, true
	})
}
