package nav

import "fmt"

// Hex addresses one cell of the offset-column hex grid.
// Odd columns sit half a cell further along Z than even columns.
type Hex struct {
	Col int
	Row int
}

func (h Hex) String() string {
	return fmt.Sprintf("(%d,%d)", h.Col, h.Row)
}

// Neighbor offsets per column parity. Order: same column (row-1, row+1),
// left column (upper, lower), right column (upper, lower).
var (
	evenColumnOffsets = [6]Hex{
		{Col: 0, Row: -1},
		{Col: 0, Row: 1},
		{Col: -1, Row: -1},
		{Col: -1, Row: 0},
		{Col: 1, Row: -1},
		{Col: 1, Row: 0},
	}
	oddColumnOffsets = [6]Hex{
		{Col: 0, Row: -1},
		{Col: 0, Row: 1},
		{Col: -1, Row: 0},
		{Col: -1, Row: 1},
		{Col: 1, Row: 0},
		{Col: 1, Row: 1},
	}
)

// Neighbors returns the six cells adjacent to h. Results may lie outside
// any particular grid; callers check bounds.
func Neighbors(h Hex) [6]Hex {
	offsets := &evenColumnOffsets
	if isOdd(h.Col) {
		offsets = &oddColumnOffsets
	}
	var result [6]Hex
	for i, o := range offsets {
		result[i] = Hex{Col: h.Col + o.Col, Row: h.Row + o.Row}
	}
	return result
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Hex) bool {
	for _, n := range Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

func isOdd(col int) bool {
	return col&1 == 1
}
