package nav

import "math"

// Grid sentinels.
const (
	// NoHeight marks a cell where none of the six probes hit terrain.
	NoHeight = -math.MaxFloat64

	// Unassigned is the region id of a cell that belongs to no region.
	Unassigned int32 = -1

	// Unreached is the distance of a cell the distance field never reached.
	Unreached int32 = -1
)

// Height probing.
const (
	SampleCount        = 6
	SampleRadiusFactor = 0.2 // probe radius as a fraction of the cell size
)

// Navigation defaults.
const (
	DefaultCellSize          = 2.0
	DefaultHeightDelta       = 1.2
	DefaultMaxRegions        = 1024
	DefaultHalfExtent        = 64.0
	DefaultRecenterThreshold = 16.0
	DefaultRebuildEvery      = 600 // ticks
	DefaultRefreshEvery      = 10  // ticks

	// MaxDescentSteps caps stepwise descent in a single direction query.
	MaxDescentSteps = 50
)

const sqrt3 = 1.7320508075688772
