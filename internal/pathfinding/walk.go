package pathfinding

import "github.com/udisondev/tilepath/internal/geo"

// CanWalkLine reports whether an agent can walk the straight Bresenham
// line from one tile to another on a level, taking each step under policy.
// It is the cheap check to run before a full search when the target is in
// plain view.
func CanWalkLine(r geo.Reader, level int, from, to Point, fp Footprint, policy Policy) bool {
	if fp.Validate() != nil || policy == nil {
		return false
	}
	if !geo.InWorld(from.X, from.Z, level) || !geo.InWorld(to.X, to.Z, level) {
		return false
	}

	flags := LevelReader(r, level)
	it := newLineIterator(from.X, from.Z, to.X, to.Z)
	it.Next() // start tile

	prevX, prevZ := from.X, from.Z
	for it.Next() {
		x, z := it.X(), it.Z()
		d, ok := DirectionOf(x-prevX, z-prevZ)
		if !ok {
			return false
		}
		if !geo.InWorld(x, z, level) || !geo.InWorld(x+fp.Width-1, z+fp.Depth-1, level) {
			return false
		}
		if !policy.CanStep(flags, prevX, prevZ, d, fp) {
			return false
		}
		prevX, prevZ = x, z
	}
	return true
}
