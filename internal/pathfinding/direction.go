package pathfinding

// Direction is one of the eight king-move steps. North is +Z, east is +X.
// The zero value means "no direction".
type Direction uint8

const (
	West Direction = iota + 1
	East
	South
	North
	SouthWest
	SouthEast
	NorthWest
	NorthEast
)

// directions is the neighbour expansion order of the search: orthogonal
// steps first, then diagonals. Routes depend on it.
var directions = [8]Direction{West, East, South, North, SouthWest, SouthEast, NorthWest, NorthEast}

var deltas = [...][2]int{
	West:      {-1, 0},
	East:      {1, 0},
	South:     {0, -1},
	North:     {0, 1},
	SouthWest: {-1, -1},
	SouthEast: {1, -1},
	NorthWest: {-1, 1},
	NorthEast: {1, 1},
}

var directionNames = [...]string{
	0:         "none",
	West:      "west",
	East:      "east",
	South:     "south",
	North:     "north",
	SouthWest: "south-west",
	SouthEast: "south-east",
	NorthWest: "north-west",
	NorthEast: "north-east",
}

// Delta returns the (dx, dz) step of the direction.
func (d Direction) Delta() (dx, dz int) {
	if int(d) >= len(deltas) {
		return 0, 0
	}
	v := deltas[d]
	return v[0], v[1]
}

// Diagonal reports whether the step changes both coordinates.
func (d Direction) Diagonal() bool {
	return d >= SouthWest && d <= NorthEast
}

// Opposite returns the reverse step.
func (d Direction) Opposite() Direction {
	dx, dz := d.Delta()
	o, _ := DirectionOf(-dx, -dz)
	return o
}

func (d Direction) String() string {
	if int(d) >= len(directionNames) {
		return "invalid"
	}
	return directionNames[d]
}

// DirectionOf maps a unit step to its direction. ok is false for (0, 0)
// and for steps longer than one tile.
func DirectionOf(dx, dz int) (d Direction, ok bool) {
	for _, dir := range directions {
		if deltas[dir][0] == dx && deltas[dir][1] == dz {
			return dir, true
		}
	}
	return 0, false
}

// split returns the horizontal and vertical parts of a diagonal.
func (d Direction) split() (h, v Direction) {
	dx, dz := d.Delta()
	h, v = West, South
	if dx > 0 {
		h = East
	}
	if dz > 0 {
		v = North
	}
	return h, v
}
