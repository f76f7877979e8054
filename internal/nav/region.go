package nav

import "math"

// Partition is the result of grouping grid cells into regions.
type Partition struct {
	Regions *Grid[int32]
	Count   int

	// Leftover counts terrain cells still unassigned because the region
	// cap was reached. Zero when the sweep ran to completion.
	Leftover int
}

// PartitionRegions groups terrain cells into locally convex regions in which
// every pair of adjacent cells differs in height by less than delta.
//
// The sweep advances one column at a time; inside a column a region owns a
// contiguous run of rows (its span). Moving to the next column the span first
// shrinks by one row on the side given by the column parity, then may grow by
// one row on each side. A side that fails to grow once never grows again,
// which keeps the outline convex. At most maxRegions regions are created when
// maxRegions > 0.
//
// The step order (shrink, grow left, grow right) decides region shapes and
// must not be rearranged.
func PartitionRegions(heights *Grid[float64], delta float64, maxRegions int) Partition {
	p := &partitioner{
		heights: heights,
		regions: NewGrid(heights.Width(), heights.Depth(), Unassigned),
		delta:   delta,
	}

	count := 0
	col := 0
	for {
		col = p.firstOpenColumn(col)
		if col >= heights.Width() {
			break
		}
		if maxRegions > 0 && count >= maxRegions {
			return Partition{Regions: p.regions, Count: count, Leftover: p.openCells(col)}
		}
		p.sweep(int32(count), col)
		count++
	}
	return Partition{Regions: p.regions, Count: count}
}

type partitioner struct {
	heights *Grid[float64]
	regions *Grid[int32]
	delta   float64
}

// open reports whether h is an in-bounds terrain cell without a region.
func (p *partitioner) open(h Hex) bool {
	return p.heights.InBounds(h) &&
		p.regions.At(h) == Unassigned &&
		HasTerrain(p.heights.At(h))
}

// coherent reports whether a and b differ in height by less than delta.
func (p *partitioner) coherent(a, b Hex) bool {
	return math.Abs(p.heights.At(a)-p.heights.At(b)) < p.delta
}

func (p *partitioner) firstOpenColumn(from int) int {
	for col := from; col < p.heights.Width(); col++ {
		for row := range p.heights.Depth() {
			if p.open(Hex{Col: col, Row: row}) {
				return col
			}
		}
	}
	return p.heights.Width()
}

func (p *partitioner) openCells(from int) int {
	n := 0
	for col := from; col < p.heights.Width(); col++ {
		for row := range p.heights.Depth() {
			if p.open(Hex{Col: col, Row: row}) {
				n++
			}
		}
	}
	return n
}

func (p *partitioner) claim(id int32, col, lo, hi int) {
	for row := lo; row <= hi; row++ {
		p.regions.Set(Hex{Col: col, Row: row}, id)
	}
}

// sweep seeds region id in col and extends it column by column.
func (p *partitioner) sweep(id int32, col int) {
	lo := 0
	for !p.open(Hex{Col: col, Row: lo}) {
		lo++
	}
	hi := lo
	for {
		next := Hex{Col: col, Row: hi + 1}
		if !p.open(next) || !p.coherent(Hex{Col: col, Row: hi}, next) {
			break
		}
		hi++
	}
	p.claim(id, col, lo, hi)

	var stopLeft, stopRight bool
	for c := col; c+1 < p.heights.Width(); c++ {
		next := c + 1

		// Shrink: a cell of the next column qualifies only if both cells it
		// overlaps in column c belong to the span.
		newLo, newHi := lo, hi-1
		if isOdd(c) {
			newLo, newHi = lo+1, hi
		}
		if !p.shrinkValid(c, newLo, newHi) {
			return
		}

		// Grow left.
		left := Hex{Col: next, Row: newLo - 1}
		leftOK := p.canGrow(left, Hex{Col: c, Row: lo}, Hex{Col: next, Row: newLo}, newLo <= newHi)
		if leftOK && (!stopLeft || newLo > newHi) {
			// A zero-width span may take the left cell even after left growth
			// stopped; otherwise single-cell necks would split the region.
			newLo--
		} else {
			stopLeft = true
		}

		// Grow right.
		right := Hex{Col: next, Row: newHi + 1}
		rightOK := p.canGrow(right, Hex{Col: c, Row: hi}, Hex{Col: next, Row: newHi}, newLo <= newHi)
		if rightOK && !stopRight {
			newHi++
		} else {
			stopRight = true
		}

		if newLo > newHi {
			return
		}
		p.claim(id, next, newLo, newHi)
		lo, hi = newLo, newHi
	}
}

// shrinkValid checks rows [lo, hi] of column c+1 against the span in column c.
func (p *partitioner) shrinkValid(c, lo, hi int) bool {
	for row := lo; row <= hi; row++ {
		cell := Hex{Col: c + 1, Row: row}
		if !p.open(cell) {
			return false
		}
		for _, n := range Neighbors(cell) {
			if n.Col == c && !p.coherent(cell, n) {
				return false
			}
		}
		if row > lo && !p.coherent(cell, Hex{Col: c + 1, Row: row - 1}) {
			return false
		}
	}
	return true
}

// canGrow checks a growth cell against its diagonal predecessor in the
// previous column and, when the span is non-empty, its row neighbor.
func (p *partitioner) canGrow(cell, pred, rowNeighbor Hex, hasRowNeighbor bool) bool {
	if !p.open(cell) || !p.coherent(cell, pred) {
		return false
	}
	return !hasRowNeighbor || p.coherent(cell, rowNeighbor)
}
