package pathfinding

import (
	"fmt"

	"github.com/udisondev/tilepath/internal/geo"
)

// Footprint is the area an agent occupies, in tiles. The agent's position is
// its south-west tile; the footprint extends Width tiles east and Depth tiles
// north of it.
type Footprint struct {
	Width, Depth int
}

// Unit is the 1x1 footprint.
var Unit = Footprint{Width: 1, Depth: 1}

// Square returns a size x size footprint.
func Square(size int) Footprint {
	return Footprint{Width: size, Depth: size}
}

// Validate rejects footprints smaller than one tile.
func (fp Footprint) Validate() error {
	if fp.Width < 1 || fp.Depth < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFootprint, fp.Width, fp.Depth)
	}
	return nil
}

// FlagReader reads collision flags on a single level.
type FlagReader interface {
	Flags(x, z int) uint32
}

type levelReader struct {
	r     geo.Reader
	level int
}

func (l levelReader) Flags(x, z int) uint32 {
	return l.r.Get(x, z, l.level)
}

// LevelReader binds a collision reader to one level.
func LevelReader(r geo.Reader, level int) FlagReader {
	return levelReader{r: r, level: level}
}

// Policy decides whether an agent with footprint fp standing at (x, z) may
// take one step in direction d. Implementations must be pure functions of
// the flags they read.
type Policy interface {
	Name() string
	CanStep(r FlagReader, x, z int, d Direction, fp Footprint) bool
}

// Rule tests one tile's flags against a blocking mask.
type Rule func(tile, mask uint32) bool

// Clear is the plain rule: none of the mask bits may be set.
func Clear(tile, mask uint32) bool {
	return tile&mask == 0
}

// StepPolicy is a footprint-aware Policy assembled from two tile rules.
// Enter is applied to every tile the footprint newly covers, with the entry
// mask for that tile's edge position. Exit is applied to the leading edge of
// the departing footprint with the wall bits facing the move. A diagonal
// step must also pass both of its orthogonal partial steps, so no footprint
// cuts a blocked corner.
type StepPolicy struct {
	Label string
	Enter Rule
	Exit  Rule
}

// Movement policies.
var (
	// Normal is standard ground movement.
	Normal Policy = StepPolicy{Label: "normal", Enter: Clear, Exit: Clear}

	// Amphibious walks like Normal but also over tiles without a floor.
	Amphibious Policy = StepPolicy{
		Label: "amphibious",
		Enter: func(tile, mask uint32) bool { return tile&(mask&^geo.Floor) == 0 },
		Exit:  Clear,
	}

	// Indoors only enters roofed tiles.
	Indoors Policy = StepPolicy{
		Label: "indoors",
		Enter: func(tile, mask uint32) bool { return tile&mask == 0 && tile&geo.Roof != 0 },
		Exit:  Clear,
	}

	// Outdoors never enters roofed tiles.
	Outdoors Policy = StepPolicy{
		Label: "outdoors",
		Enter: func(tile, mask uint32) bool { return tile&(mask|geo.Roof) == 0 },
		Exit:  Clear,
	}

	// NoClip ignores collision entirely.
	NoClip Policy = noClip{}
)

var policies = map[string]Policy{
	Normal.Name():     Normal,
	Amphibious.Name(): Amphibious,
	Indoors.Name():    Indoors,
	Outdoors.Name():   Outdoors,
	NoClip.Name():     NoClip,
}

// PolicyByName resolves one of the built-in policies.
func PolicyByName(name string) (Policy, error) {
	p, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown movement policy %q", name)
	}
	return p, nil
}

type noClip struct{}

func (noClip) Name() string { return "noclip" }

func (noClip) CanStep(FlagReader, int, int, Direction, Footprint) bool { return true }

func (p StepPolicy) Name() string { return p.Label }

func (p StepPolicy) CanStep(r FlagReader, x, z int, d Direction, fp Footprint) bool {
	if !d.Diagonal() {
		return p.orthogonal(r, x, z, d, fp)
	}

	h, v := d.split()
	if !p.orthogonal(r, x, z, h, fp) || !p.orthogonal(r, x, z, v, fp) {
		return false
	}

	// Leading corners of the departing and the arriving footprint.
	dx, dz := d.Delta()
	fromX, fromZ := x, z
	if dx > 0 {
		fromX += fp.Width - 1
	}
	if dz > 0 {
		fromZ += fp.Depth - 1
	}
	return p.Exit(r.Flags(fromX, fromZ), cornerWall[d]) &&
		p.Enter(r.Flags(fromX+dx, fromZ+dz), cornerBlock[d])
}

// orthogonal checks a single W/E/S/N step of the whole footprint.
func (p StepPolicy) orthogonal(r FlagReader, x, z int, d Direction, fp Footprint) bool {
	switch d {
	case West:
		for k := range fp.Depth {
			if !p.Exit(r.Flags(x, z+k), geo.WallWest) ||
				!p.Enter(r.Flags(x-1, z+k), edgeMask(d, k, fp.Depth)) {
				return false
			}
		}
	case East:
		ex := x + fp.Width - 1
		for k := range fp.Depth {
			if !p.Exit(r.Flags(ex, z+k), geo.WallEast) ||
				!p.Enter(r.Flags(ex+1, z+k), edgeMask(d, k, fp.Depth)) {
				return false
			}
		}
	case South:
		for k := range fp.Width {
			if !p.Exit(r.Flags(x+k, z), geo.WallSouth) ||
				!p.Enter(r.Flags(x+k, z-1), edgeMask(d, k, fp.Width)) {
				return false
			}
		}
	case North:
		ez := z + fp.Depth - 1
		for k := range fp.Width {
			if !p.Exit(r.Flags(x+k, ez), geo.WallNorth) ||
				!p.Enter(r.Flags(x+k, ez+1), edgeMask(d, k, fp.Width)) {
				return false
			}
		}
	default:
		return false
	}
	return true
}

// Entry masks per orthogonal direction and position along the leading edge,
// which runs south to north for W/E steps and west to east for S/N steps.
var (
	singleBlock = [...]uint32{West: geo.BlockWest, East: geo.BlockEast, South: geo.BlockSouth, North: geo.BlockNorth}
	firstBlock  = [...]uint32{West: geo.BlockSouthWest, East: geo.BlockSouthEast, South: geo.BlockSouthWest, North: geo.BlockNorthWest}
	lastBlock   = [...]uint32{West: geo.BlockNorthWest, East: geo.BlockNorthEast, South: geo.BlockSouthEast, North: geo.BlockNorthEast}
	middleBlock = [...]uint32{
		West:  geo.BlockNorthAndSouthEast,
		East:  geo.BlockNorthAndSouthWest,
		South: geo.BlockNorthEastAndWest,
		North: geo.BlockSouthEastAndWest,
	}
)

var (
	cornerBlock = [...]uint32{
		SouthWest: geo.BlockSouthWest,
		SouthEast: geo.BlockSouthEast,
		NorthWest: geo.BlockNorthWest,
		NorthEast: geo.BlockNorthEast,
	}
	cornerWall = [...]uint32{
		SouthWest: geo.WallSouthWest,
		SouthEast: geo.WallSouthEast,
		NorthWest: geo.WallNorthWest,
		NorthEast: geo.WallNorthEast,
	}
)

func edgeMask(d Direction, k, n int) uint32 {
	switch {
	case n == 1:
		return singleBlock[d]
	case k == 0:
		return firstBlock[d]
	case k == n-1:
		return lastBlock[d]
	default:
		return middleBlock[d]
	}
}
