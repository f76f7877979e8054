package nav

// BuildDistanceField runs a breadth-first search over heights from target and
// returns the hop count of every reached cell (Unreached elsewhere).
//
// Expansion is directional: the search steps from a reached cell f to a
// neighbor n only when height(f) > height(n) - delta. Cells without terrain
// are never entered. A target outside the grid is replaced by (0,0).
func BuildDistanceField(heights *Grid[float64], target Hex, delta float64) *Grid[int32] {
	dist := NewGrid(heights.Width(), heights.Depth(), Unreached)
	if heights.Width() == 0 || heights.Depth() == 0 {
		return dist
	}
	if !heights.InBounds(target) {
		target = Hex{}
	}

	queue := make([]Hex, 0, heights.Width()*heights.Depth())
	dist.Set(target, 0)
	queue = append(queue, target)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		hc := heights.At(cur)
		dc := dist.At(cur)
		for _, n := range Neighbors(cur) {
			if !heights.InBounds(n) || dist.At(n) != Unreached {
				continue
			}
			hn := heights.At(n)
			if !HasTerrain(hn) {
				continue
			}
			if hc > hn-delta {
				dist.Set(n, dc+1)
				queue = append(queue, n)
			}
		}
	}
	return dist
}
