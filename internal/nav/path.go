package nav

import "github.com/go-gl/mathgl/mgl64"

// PathDirection returns the steering vector for a mover at from heading to
// target. It is the straight line to target when both share a region (or
// either lies off the grid); otherwise it descends the distance field and
// returns the vector to the first way-point where the descent leaves the
// current region. The zero vector means no path exists.
func (s *Snapshot) PathDirection(from, target mgl64.Vec3) mgl64.Vec3 {
	src := s.Layout.WorldToHex(from.X(), from.Z())
	dst := s.Layout.WorldToHex(target.X(), target.Z())

	if !s.Layout.InBounds(src) || !s.Layout.InBounds(dst) {
		return target.Sub(from)
	}
	if src == dst || sameRegion(s.Regions.At(src), s.Regions.At(dst)) {
		return target.Sub(from)
	}

	cur := src
	for hop := 0; ; hop++ {
		next, ok := s.descend(cur)
		if !ok {
			return mgl64.Vec3{}
		}
		if !sameRegion(s.Regions.At(cur), s.Regions.At(next)) {
			if hop == 0 {
				return s.Waypoint(next).Sub(from)
			}
			// Pull the way-point back towards the current cell to round the
			// corner at the region boundary.
			blended := s.Waypoint(cur).Add(s.Waypoint(next).Mul(3)).Mul(0.25)
			return blended.Sub(from)
		}
		if s.Distance.At(next) == 0 || hop >= MaxDescentSteps {
			return s.Waypoint(next).Sub(from)
		}
		cur = next
	}
}

// Waypoint returns the world centre of h at its sampled height.
func (s *Snapshot) Waypoint(h Hex) mgl64.Vec3 {
	x, z := s.Layout.Center(h)
	y := s.Heights.At(h)
	if !HasTerrain(y) {
		y = 0
	}
	return mgl64.Vec3{x, y, z}
}

// descend picks the neighbor of h with the smallest reached distance.
// Ties go to the earlier neighbor in Neighbors order.
func (s *Snapshot) descend(h Hex) (Hex, bool) {
	var best Hex
	bestDist := Unreached
	for _, n := range Neighbors(h) {
		if !s.Distance.InBounds(n) {
			continue
		}
		d := s.Distance.At(n)
		if d < 0 {
			continue
		}
		if bestDist == Unreached || d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best, bestDist != Unreached
}

// sameRegion treats unassigned cells as belonging to no region at all.
func sameRegion(a, b int32) bool {
	return a >= 0 && a == b
}
