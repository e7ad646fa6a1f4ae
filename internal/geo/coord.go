package geo

import "fmt"

// Tile is an absolute tile coordinate on one level.
type Tile struct {
	X, Z  int
	Level int
}

// NewTile is a shorthand for Tile{X: x, Z: z, Level: level}.
func NewTile(x, z, level int) Tile {
	return Tile{X: x, Z: z, Level: level}
}

func (t Tile) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.X, t.Z, t.Level)
}

// Translate returns the tile offset by (dx, dz) on the same level.
func (t Tile) Translate(dx, dz int) Tile {
	return Tile{X: t.X + dx, Z: t.Z + dz, Level: t.Level}
}

// ValidLevel reports whether level is one of the supported levels.
func ValidLevel(level int) bool {
	return level >= 0 && level < Levels
}

// InWorld reports whether (x, z) lies inside the world on a valid level.
func InWorld(x, z, level int) bool {
	return ValidLevel(level) && x >= 0 && z >= 0 && x < WorldSize && z < WorldSize
}

// ZoneKey identifies a 64x64 zone on one level.
type ZoneKey struct {
	X, Z  int // zone coordinates, tile >> 6
	Level int
}

// ZoneOf returns the key of the zone containing (x, z, level).
func ZoneOf(x, z, level int) ZoneKey {
	return ZoneKey{X: x / ZoneSize, Z: z / ZoneSize, Level: level}
}

// Origin returns the south-west tile of the zone.
func (k ZoneKey) Origin() Tile {
	return Tile{X: k.X * ZoneSize, Z: k.Z * ZoneSize, Level: k.Level}
}

func (k ZoneKey) String() string {
	return fmt.Sprintf("zone(%d, %d, %d)", k.X, k.Z, k.Level)
}

// ChunkIndex returns the index of the 8x8 chunk inside its zone.
// Coordinates must be in the world.
func ChunkIndex(x, z int) int {
	cx := (x % ZoneSize) / ChunkSize
	cz := (z % ZoneSize) / ChunkSize
	return cz*ZoneChunks + cx
}

// TileIndex returns the index of the tile inside its chunk.
func TileIndex(x, z int) int {
	return (z%ChunkSize)*ChunkSize + x%ChunkSize
}

// ZoneTileIndex returns the z-major index of the tile inside its zone.
func ZoneTileIndex(x, z int) int {
	return (z%ZoneSize)*ZoneSize + x%ZoneSize
}

// Chebyshev returns the king-move distance between two tiles, ignoring level.
func Chebyshev(a, b Tile) int {
	return max(abs(a.X-b.X), abs(a.Z-b.Z))
}

// DistanceSquared returns the squared Euclidean distance, ignoring level.
func DistanceSquared(a, b Tile) int {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
