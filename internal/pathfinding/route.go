package pathfinding

import "github.com/udisondev/tilepath/internal/geo"

// Route is the result of a successful search. Tiles lists every tile
// stepped on, in order, excluding the source. The caller owns it.
type Route struct {
	From  geo.Tile
	Tiles []geo.Tile

	// Alternative is set when the route ends at the closest reachable tile
	// instead of the destination.
	Alternative bool

	// Visited is the number of tiles the search admitted.
	Visited int
}

// Len returns the number of steps.
func (r Route) Len() int {
	return len(r.Tiles)
}

// Empty reports whether the agent was already at the destination.
func (r Route) Empty() bool {
	return len(r.Tiles) == 0
}

// Last returns the tile the route ends on.
func (r Route) Last() (geo.Tile, bool) {
	if len(r.Tiles) == 0 {
		return geo.Tile{}, false
	}
	return r.Tiles[len(r.Tiles)-1], true
}

// Waypoints compresses the route to the tiles where the step direction
// changes, plus the final tile. At most limit waypoints are returned;
// limit <= 0 means no limit.
func (r Route) Waypoints(limit int) []geo.Tile {
	if len(r.Tiles) == 0 {
		return nil
	}

	out := make([]geo.Tile, 0, 8)
	prev := r.From
	for i := range len(r.Tiles) - 1 {
		cur, next := r.Tiles[i], r.Tiles[i+1]
		if cur.X-prev.X != next.X-cur.X || cur.Z-prev.Z != next.Z-cur.Z {
			out = append(out, cur)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
		prev = cur
	}
	return append(out, r.Tiles[len(r.Tiles)-1])
}
