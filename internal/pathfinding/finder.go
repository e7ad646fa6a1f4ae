package pathfinding

import (
	"fmt"

	"github.com/udisondev/tilepath/internal/geo"
)

// Finder sizing.
const (
	DefaultWindow     = 128
	DefaultNodeBudget = 4096

	MinWindow     = 3
	MaxWindow     = 2048
	MinNodeBudget = 2 // the source plus one neighbour
)

// dirSource marks the source cell in the back-pointer grid.
const dirSource Direction = 0xFF

// Mode selects when the search counts the destination as reached.
type Mode uint8

const (
	// ModeExact: the agent's south-west tile lands on the destination.
	ModeExact Mode = iota
	// ModeOverlap: the agent's footprint covers the destination tile.
	ModeOverlap
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeOverlap:
		return "overlap"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Point is a tile position on the query's level.
type Point struct {
	X, Z int
}

// Query describes one search.
type Query struct {
	Level       int
	Source      Point
	Destination Point
	Footprint   Footprint
	Policy      Policy

	// MoveNear returns a route to the visited tile closest to the
	// destination when the destination itself cannot be reached.
	MoveNear bool
	Mode     Mode

	// MaxDistance is the largest route length, in steps, the search may
	// produce. Required.
	MaxDistance int
}

func (q Query) validate() error {
	if err := q.Footprint.Validate(); err != nil {
		return err
	}
	if q.Policy == nil {
		return fmt.Errorf("%w: nil policy", ErrInvalidQuery)
	}
	if q.MaxDistance <= 0 {
		return fmt.Errorf("%w: max distance %d", ErrInvalidQuery, q.MaxDistance)
	}
	if q.Mode != ModeExact && q.Mode != ModeOverlap {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, q.Mode)
	}
	if !geo.ValidLevel(q.Level) {
		return fmt.Errorf("level %d: %w", q.Level, ErrOutOfBounds)
	}
	if !geo.InWorld(q.Source.X, q.Source.Z, q.Level) {
		return fmt.Errorf("source (%d, %d): %w", q.Source.X, q.Source.Z, ErrOutOfBounds)
	}
	if !geo.InWorld(q.Destination.X, q.Destination.Z, q.Level) {
		return fmt.Errorf("destination (%d, %d): %w", q.Destination.X, q.Destination.Z, ErrOutOfBounds)
	}
	return nil
}

// Finder runs breadth-first searches over a square working grid centred on
// the source. The grid is allocated once; a Finder must not be used by two
// goroutines at the same time. Use one Finder per worker, or a Pool.
type Finder struct {
	window int

	// Working grid, indexed z*window + x in local coordinates.
	dirs []Direction // back-pointer: step that entered the cell, 0 = unvisited
	dist []int32     // route length from the source, valid where dirs != 0

	// queue is a ring buffer holding the frontier. Its length is the node
	// budget: how many tiles may wait for expansion at once.
	queue      []int32
	head, size int

	// touched lists the cells the last search visited, in discovery order.
	touched []int32
}

// New creates a Finder with a 128x128 window and a 4096 node budget.
func New() *Finder {
	return newFinder(DefaultWindow, DefaultNodeBudget)
}

// WithSize creates a Finder with a window x window grid whose frontier holds
// at most budget tiles.
func WithSize(window, budget int) (*Finder, error) {
	if err := validateSize(window, budget); err != nil {
		return nil, err
	}
	return newFinder(window, budget), nil
}

func validateSize(window, budget int) error {
	if window < MinWindow || window > MaxWindow {
		return fmt.Errorf("%w: window %d not in [%d, %d]", ErrInvalidConfig, window, MinWindow, MaxWindow)
	}
	if budget < MinNodeBudget || budget > window*window {
		return fmt.Errorf("%w: node budget %d not in [%d, %d]", ErrInvalidConfig, budget, MinNodeBudget, window*window)
	}
	return nil
}

func newFinder(window, budget int) *Finder {
	cells := window * window
	return &Finder{
		window:  window,
		dirs:    make([]Direction, cells),
		dist:    make([]int32, cells),
		queue:   make([]int32, budget),
		touched: make([]int32, 0, cells),
	}
}

// Window returns the grid extent per axis.
func (f *Finder) Window() int { return f.window }

// NodeBudget returns how many tiles the frontier of one search may hold.
func (f *Finder) NodeBudget() int { return len(f.queue) }

// Clone returns a pristine Finder of the same size.
func (f *Finder) Clone() *Finder {
	return newFinder(f.window, len(f.queue))
}

// Dirty reports whether the grid holds state from a previous search.
func (f *Finder) Dirty() bool { return len(f.touched) > 0 }

// Reset reverts the cells touched by the last search. Its cost is
// proportional to the tiles visited, not to the window.
func (f *Finder) Reset() {
	for _, idx := range f.touched {
		f.dirs[idx] = 0
	}
	f.touched = f.touched[:0]
	f.head, f.size = 0, 0
}

// FindPath searches for a route from q.Source to q.Destination over the
// collision flags of r. Pass a geo.Snapshot for a consistent view.
//
// On success the route excludes the source and ends at the destination, or,
// with q.MoveNear, at the closest tile found (Route.Alternative is set).
// Failures wrap ErrInvalidFootprint, ErrInvalidQuery, ErrOutOfBounds or
// ErrUnreachable.
func (f *Finder) FindPath(r geo.Reader, q Query) (Route, error) {
	if err := q.validate(); err != nil {
		return Route{}, err
	}
	f.Reset()

	s := f.newSearch(q)
	if !s.fits(s.srcX, s.srcZ) {
		return Route{}, fmt.Errorf("footprint %dx%d at source (%d, %d) exceeds window %d: %w",
			q.Footprint.Width, q.Footprint.Depth, q.Source.X, q.Source.Z, f.window, ErrOutOfBounds)
	}
	if !s.destinationInWindow() {
		return Route{}, fmt.Errorf("destination (%d, %d) outside %dx%d window around (%d, %d): %w",
			q.Destination.X, q.Destination.Z, f.window, f.window, q.Source.X, q.Source.Z, ErrOutOfBounds)
	}

	from := geo.Tile{X: q.Source.X, Z: q.Source.Z, Level: q.Level}
	end, exhausted := f.flood(s, LevelReader(r, q.Level))
	if end >= 0 {
		return Route{From: from, Tiles: f.trace(s, end), Visited: len(f.touched)}, nil
	}

	if q.MoveNear {
		if best := f.nearest(s); best >= 0 {
			return Route{From: from, Tiles: f.trace(s, best), Alternative: true, Visited: len(f.touched)}, nil
		}
	}

	reason := "frontier exhausted"
	if exhausted {
		reason = "node budget exhausted"
	}
	return Route{}, fmt.Errorf("%w: (%d, %d) -> (%d, %d) on level %d, %s after %d tiles",
		ErrUnreachable, q.Source.X, q.Source.Z, q.Destination.X, q.Destination.Z, q.Level, reason, len(f.touched))
}

// search holds the per-query local frame.
type search struct {
	q            Query
	baseX, baseZ int // absolute tile of local (0, 0)
	srcX, srcZ   int // local source
	dstX, dstZ   int // local destination

	// Inclusive bounds for the footprint anchor, clipped to the world.
	minX, maxX int
	minZ, maxZ int
}

func (f *Finder) newSearch(q Query) search {
	half := f.window / 2
	s := search{
		q:     q,
		baseX: q.Source.X - half,
		baseZ: q.Source.Z - half,
		srcX:  half,
		srcZ:  half,
	}
	s.dstX = q.Destination.X - s.baseX
	s.dstZ = q.Destination.Z - s.baseZ

	s.minX = max(0, -s.baseX)
	s.minZ = max(0, -s.baseZ)
	s.maxX = min(f.window-q.Footprint.Width, geo.WorldSize-q.Footprint.Width-s.baseX)
	s.maxZ = min(f.window-q.Footprint.Depth, geo.WorldSize-q.Footprint.Depth-s.baseZ)
	return s
}

// fits reports whether the footprint anchored at local (x, z) stays inside
// both the window and the world.
func (s *search) fits(x, z int) bool {
	return x >= s.minX && x <= s.maxX && z >= s.minZ && z <= s.maxZ
}

func (s *search) destinationInWindow() bool {
	if s.q.Mode == ModeOverlap {
		return s.dstX >= s.minX && s.dstX <= s.maxX+s.q.Footprint.Width-1 &&
			s.dstZ >= s.minZ && s.dstZ <= s.maxZ+s.q.Footprint.Depth-1
	}
	return s.fits(s.dstX, s.dstZ)
}

func (s *search) reached(x, z int) bool {
	if s.q.Mode == ModeOverlap {
		return s.dstX >= x && s.dstX < x+s.q.Footprint.Width &&
			s.dstZ >= z && s.dstZ < z+s.q.Footprint.Depth
	}
	return x == s.dstX && z == s.dstZ
}

// flood runs the breadth-first expansion. It returns the index of the cell
// that reached the destination, or -1, and whether the frontier outgrew
// the node budget.
func (f *Finder) flood(s search, r FlagReader) (end int32, exhausted bool) {
	w := f.window
	src := int32(s.srcZ*w + s.srcX)
	f.visit(src, dirSource, 0)
	if s.reached(s.srcX, s.srcZ) {
		return src, false
	}

	maxCost := int32(s.q.MaxDistance)
	policy := s.q.Policy
	fp := s.q.Footprint

	for f.size > 0 {
		cur := f.pop()
		cost := f.dist[cur]
		if cost >= maxCost {
			continue
		}
		lx, lz := int(cur)%w, int(cur)/w
		x, z := s.baseX+lx, s.baseZ+lz

		for _, d := range directions {
			dx, dz := d.Delta()
			nx, nz := lx+dx, lz+dz
			if !s.fits(nx, nz) {
				continue
			}
			next := int32(nz*w + nx)
			if f.dirs[next] != 0 {
				continue
			}
			if !policy.CanStep(r, x, z, d, fp) {
				continue
			}
			if f.size == len(f.queue) {
				return -1, true
			}
			f.visit(next, d, cost+1)
			if s.reached(nx, nz) {
				return next, false
			}
		}
	}
	return -1, false
}

func (f *Finder) visit(idx int32, d Direction, cost int32) {
	f.dirs[idx] = d
	f.dist[idx] = cost
	f.touched = append(f.touched, idx)
	f.queue[(f.head+f.size)%len(f.queue)] = idx
	f.size++
}

func (f *Finder) pop() int32 {
	idx := f.queue[f.head]
	f.head = (f.head + 1) % len(f.queue)
	f.size--
	return idx
}

// nearest picks the visited cell closest to the destination. Cells are
// scanned in discovery order, so ties go to the cheaper route. Returns -1
// if no cell is closer than the source.
func (f *Finder) nearest(s search) int32 {
	w := f.window
	best := int32(-1)
	bestDist := s.approach(s.srcX, s.srcZ)
	for _, idx := range f.touched[1:] {
		d := s.approach(int(idx)%w, int(idx)/w)
		if d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

// approach is the squared distance from the footprint at local (x, z) to
// the destination: from the anchor in ModeExact, from the nearest covered
// tile in ModeOverlap.
func (s *search) approach(x, z int) int {
	dx := s.dstX - x
	dz := s.dstZ - z
	if s.q.Mode == ModeOverlap {
		dx = axisGap(s.dstX, x, x+s.q.Footprint.Width-1)
		dz = axisGap(s.dstZ, z, z+s.q.Footprint.Depth-1)
	}
	return dx*dx + dz*dz
}

func axisGap(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

// trace walks back-pointers from end to the source and returns the route
// in travel order, source excluded.
func (f *Finder) trace(s search, end int32) []geo.Tile {
	w := int32(f.window)
	n := int(f.dist[end])
	tiles := make([]geo.Tile, n)
	cur := end
	for i := n - 1; i >= 0; i-- {
		lx, lz := int(cur%w), int(cur/w)
		tiles[i] = geo.Tile{X: s.baseX + lx, Z: s.baseZ + lz, Level: s.q.Level}
		dx, dz := f.dirs[cur].Delta()
		cur -= int32(dz)*w + int32(dx)
	}
	return tiles
}
