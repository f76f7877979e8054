package nav

import (
	"fmt"
	"math"
)

// Grid is a dense Width x Depth array addressed by Hex, stored column-major.
type Grid[T any] struct {
	width int
	depth int
	cells []T
}

// NewGrid allocates a grid with every cell set to fill.
func NewGrid[T any](width, depth int, fill T) *Grid[T] {
	cells := make([]T, width*depth)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{width: width, depth: depth, cells: cells}
}

// GridFrom wraps cells (column-major, len width*depth) without copying.
func GridFrom[T any](width, depth int, cells []T) (*Grid[T], error) {
	if width < 0 || depth < 0 || len(cells) != width*depth {
		return nil, fmt.Errorf("grid %dx%d with %d cells: shape mismatch", width, depth, len(cells))
	}
	return &Grid[T]{width: width, depth: depth, cells: cells}, nil
}

func (g *Grid[T]) Width() int { return g.width }
func (g *Grid[T]) Depth() int { return g.depth }

// InBounds reports whether h addresses a cell of g.
func (g *Grid[T]) InBounds(h Hex) bool {
	return h.Col >= 0 && h.Col < g.width && h.Row >= 0 && h.Row < g.depth
}

// At returns the value at h. h must be in bounds.
func (g *Grid[T]) At(h Hex) T {
	return g.cells[h.Col*g.depth+h.Row]
}

// Set stores v at h. h must be in bounds.
func (g *Grid[T]) Set(h Hex, v T) {
	g.cells[h.Col*g.depth+h.Row] = v
}

// Cells exposes the backing array. Callers must not mutate a published grid.
func (g *Grid[T]) Cells() []T {
	return g.cells
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	cells := make([]T, len(g.cells))
	copy(cells, g.cells)
	return &Grid[T]{width: g.width, depth: g.depth, cells: cells}
}

// probeOffsets holds the six probe points around a unit cell centre.
var probeOffsets = func() [SampleCount][2]float64 {
	var out [SampleCount][2]float64
	for k := range SampleCount {
		a := float64(k) * math.Pi / 3
		out[k] = [2]float64{math.Cos(a), math.Sin(a)}
	}
	return out
}()

// BuildHeights samples terrain under every cell of layout. A cell's height is
// the highest of six probes taken at radius SampleRadiusFactor*CellSize around
// its centre, so overhangs resolve to the top walkable surface. Cells where
// every probe misses get NoHeight and are returned in missing.
func BuildHeights(layout Layout, sampler HeightSampler) (heights *Grid[float64], missing []Hex) {
	heights = NewGrid(layout.Width, layout.Depth, NoHeight)
	radius := SampleRadiusFactor * layout.CellSize

	for col := range layout.Width {
		for row := range layout.Depth {
			h := Hex{Col: col, Row: row}
			cx, cz := layout.Center(h)

			best := NoHeight
			hit := false
			for _, o := range probeOffsets {
				y, ok := sampler.SampleHeight(cx+o[0]*radius, cz+o[1]*radius)
				if !ok {
					continue
				}
				if !hit || y > best {
					best = y
					hit = true
				}
			}
			if !hit {
				missing = append(missing, h)
				continue
			}
			heights.Set(h, best)
		}
	}
	return heights, missing
}

// HasTerrain reports whether a sampled height is real terrain.
func HasTerrain(height float64) bool {
	return height != NoHeight
}
