package nav

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyLayout is returned when bounds and cell size produce no cells.
var ErrEmptyLayout = errors.New("nav: empty layout")

// Bounds is an axis-aligned rectangle on the XZ plane.
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// BoundsAround returns the square of half side halfExtent centred on center.
func BoundsAround(center mgl64.Vec3, halfExtent float64) Bounds {
	return Bounds{
		MinX: center.X() - halfExtent,
		MaxX: center.X() + halfExtent,
		MinZ: center.Z() - halfExtent,
		MaxZ: center.Z() + halfExtent,
	}
}

// Center returns the rectangle midpoint.
func (b Bounds) Center() (x, z float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinZ + b.MaxZ) / 2
}

// Drift returns the planar distance between the centres of b and o.
func (b Bounds) Drift(o Bounds) float64 {
	bx, bz := b.Center()
	ox, oz := o.Center()
	return math.Hypot(bx-ox, bz-oz)
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.2f..%.2f]x[%.2f..%.2f]", b.MinX, b.MaxX, b.MinZ, b.MaxZ)
}

// Layout maps a bounding rectangle and cell size onto grid dimensions.
type Layout struct {
	Bounds   Bounds
	CellSize float64
	Width    int // columns along X
	Depth    int // rows along Z
}

// NewLayout derives grid dimensions for bounds and cell size.
func NewLayout(b Bounds, cellSize float64) (Layout, error) {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		return Layout{}, fmt.Errorf("cell size %v: %w", cellSize, ErrEmptyLayout)
	}
	l := Layout{Bounds: b, CellSize: cellSize}
	l.Width = int(math.Ceil((b.MaxX - b.MinX) / l.ColumnStep()))
	l.Depth = int(math.Ceil((b.MaxZ - b.MinZ) / cellSize))
	if l.Width <= 0 || l.Depth <= 0 {
		return Layout{}, fmt.Errorf("bounds %s: %w", b, ErrEmptyLayout)
	}
	return l, nil
}

// ColumnStep is the X distance between adjacent column centres.
func (l Layout) ColumnStep() float64 {
	return l.CellSize * sqrt3 / 2
}

// Cells returns Width*Depth.
func (l Layout) Cells() int {
	return l.Width * l.Depth
}

// InBounds reports whether h addresses a cell of this layout.
func (l Layout) InBounds(h Hex) bool {
	return h.Col >= 0 && h.Col < l.Width && h.Row >= 0 && h.Row < l.Depth
}

// Center returns the world XZ centre of h.
func (l Layout) Center(h Hex) (x, z float64) {
	x = l.Bounds.MinX + float64(h.Col)*l.ColumnStep()
	z = l.Bounds.MinZ + (float64(h.Row)+0.5*float64(h.Col&1))*l.CellSize
	return x, z
}

// WorldToHex returns the cell whose centre is nearest to (x, z).
// The result may be out of bounds.
func (l Layout) WorldToHex(x, z float64) Hex {
	col := int(math.Floor((x - l.Bounds.MinX) / l.ColumnStep()))

	best := Hex{}
	bestDist := math.Inf(1)
	for dc := 0; dc <= 1; dc++ {
		c := col + dc
		rf := (z-l.Bounds.MinZ)/l.CellSize - 0.5*float64(c&1)
		row := int(math.Floor(rf))
		for dr := 0; dr <= 1; dr++ {
			h := Hex{Col: c, Row: row + dr}
			cx, cz := l.Center(h)
			d := (cx-x)*(cx-x) + (cz-z)*(cz-z)
			if d < bestDist {
				bestDist = d
				best = h
			}
		}
	}
	return best
}
