package pathfinding

import (
	"errors"

	"github.com/udisondev/tilepath/internal/geo"
)

// Errors. Callers branch with errors.Is; returned errors wrap these with
// query details.
var (
	// ErrOutOfBounds: the destination is outside the finder's window, a tile
	// is outside the world, or the level is unsupported.
	ErrOutOfBounds = geo.ErrOutOfBounds

	ErrInvalidConfig    = errors.New("invalid pathfinder configuration")
	ErrInvalidFootprint = errors.New("invalid footprint")
	ErrInvalidQuery     = errors.New("invalid query")

	// ErrUnreachable: the search ended without reaching the destination and
	// nearest approach was not requested or made no progress.
	ErrUnreachable = errors.New("destination unreachable")
)
