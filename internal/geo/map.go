package geo

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// ErrOutOfBounds is returned for tiles outside the world or on an
// unsupported level.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrWriterClosed is returned when a Writer is written to after its Update
// has returned.
var ErrWriterClosed = errors.New("writer used after update")

// Reader is read access to collision flags.
type Reader interface {
	Get(x, z, level int) uint32
}

// Snapshot is an immutable view of the collision map. Any number of
// goroutines may read one concurrently.
type Snapshot struct {
	zones   map[ZoneKey]*zone
	version uint64
}

var emptySnapshot = &Snapshot{zones: map[ZoneKey]*zone{}}

// Get returns the flags at (x, z, level). Unpopulated tiles are Open,
// tiles outside the world are OutOfWorld.
func (s *Snapshot) Get(x, z, level int) uint32 {
	if !InWorld(x, z, level) {
		return OutOfWorld
	}
	zn := s.zones[ZoneOf(x, z, level)]
	if zn == nil {
		return Open
	}
	return zn.get(x, z)
}

// Version increases by one with every published update.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// ZoneCount returns the number of zones holding any data.
func (s *Snapshot) ZoneCount() int {
	return len(s.zones)
}

// ZoneKeys returns the populated zones of a level, sorted by (Z, X).
func (s *Snapshot) ZoneKeys(level int) []ZoneKey {
	keys := make([]ZoneKey, 0, len(s.zones))
	for k := range s.zones {
		if k.Level == level {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b ZoneKey) int {
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		return a.X - b.X
	})
	return keys
}

// ZoneTiles returns a copy of the zone's flags in ZoneTileIndex order,
// or nil if the zone is unpopulated.
func (s *Snapshot) ZoneTiles(key ZoneKey) []uint32 {
	zn := s.zones[key]
	if zn == nil {
		return nil
	}
	return zn.tiles()
}

// Map is the mutable collision store. Reads are lock-free against the
// latest published Snapshot; writes are serialized and copy only the
// zones and chunks they touch, so snapshots handed out earlier never change.
type Map struct {
	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

// NewMap creates an empty map: every in-world tile is Open.
func NewMap() *Map {
	m := &Map{}
	m.snap.Store(emptySnapshot)
	return m
}

// Snapshot returns the latest published state.
func (m *Map) Snapshot() *Snapshot {
	return m.snap.Load()
}

// Get reads one tile from the latest snapshot.
func (m *Map) Get(x, z, level int) uint32 {
	return m.snap.Load().Get(x, z, level)
}

// Update runs fn against a private writer and publishes its changes as one
// new snapshot. If fn returns an error nothing is published.
func (m *Map) Update(fn func(w *Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := newWriter(m.snap.Load())
	defer func() { w.closed = true }()
	if err := fn(w); err != nil {
		return err
	}
	if next := w.snapshot(); next != nil {
		m.snap.Store(next)
	}
	return nil
}

// Set merges flags into the tile with a bitwise OR.
func (m *Map) Set(x, z, level int, flags uint32) error {
	return m.Update(func(w *Writer) error { return w.Set(x, z, level, flags) })
}

// Replace overwrites the tile's flags.
func (m *Map) Replace(x, z, level int, flags uint32) error {
	return m.Update(func(w *Writer) error { return w.Replace(x, z, level, flags) })
}

// Remove clears the bits of mask on the tile.
func (m *Map) Remove(x, z, level int, mask uint32) error {
	return m.Update(func(w *Writer) error { return w.Remove(x, z, level, mask) })
}

// Clear resets the tile to Open.
func (m *Map) Clear(x, z, level int) error {
	return m.Update(func(w *Writer) error { return w.Clear(x, z, level) })
}

// Writer accumulates changes for one Update. It is not safe for concurrent
// use and rejects writes once Update returns.
type Writer struct {
	base   *Snapshot
	zones  map[ZoneKey]*zone
	owned  map[*zone]struct{}
	chunks map[*chunk]struct{}
	closed bool
}

func newWriter(base *Snapshot) *Writer {
	return &Writer{base: base}
}

// Get reads through the writer, observing its own pending changes.
func (w *Writer) Get(x, z, level int) uint32 {
	if w.zones == nil {
		return w.base.Get(x, z, level)
	}
	if !InWorld(x, z, level) {
		return OutOfWorld
	}
	zn := w.zones[ZoneOf(x, z, level)]
	if zn == nil {
		return Open
	}
	return zn.get(x, z)
}

// Set merges flags into the tile with a bitwise OR.
func (w *Writer) Set(x, z, level int, flags uint32) error {
	return w.modify(x, z, level, func(cur uint32) uint32 { return cur | flags })
}

// Replace overwrites the tile's flags.
func (w *Writer) Replace(x, z, level int, flags uint32) error {
	return w.modify(x, z, level, func(uint32) uint32 { return flags })
}

// Remove clears the bits of mask on the tile.
func (w *Writer) Remove(x, z, level int, mask uint32) error {
	return w.modify(x, z, level, func(cur uint32) uint32 { return cur &^ mask })
}

// Clear resets the tile to Open.
func (w *Writer) Clear(x, z, level int) error {
	return w.modify(x, z, level, func(uint32) uint32 { return Open })
}

// FillRect merges flags into every tile of the inclusive rectangle.
func (w *Writer) FillRect(x0, z0, x1, z1, level int, flags uint32) error {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if z1 < z0 {
		z0, z1 = z1, z0
	}
	for z := z0; z <= z1; z++ {
		for x := x0; x <= x1; x++ {
			if err := w.Set(x, z, level, flags); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReplaceZone overwrites a whole zone from flags in ZoneTileIndex order.
func (w *Writer) ReplaceZone(key ZoneKey, tiles []uint32) error {
	if w.closed {
		return fmt.Errorf("replace %s: %w", key, ErrWriterClosed)
	}
	if len(tiles) != ZoneTiles {
		return fmt.Errorf("replace %s: got %d tiles, want %d", key, len(tiles), ZoneTiles)
	}
	if !InWorld(key.X*ZoneSize, key.Z*ZoneSize, key.Level) {
		return fmt.Errorf("replace %s: %w", key, ErrOutOfBounds)
	}
	w.own()

	zn := &zone{}
	for i, f := range tiles {
		if f == Open {
			continue
		}
		lx, lz := i%ZoneSize, i/ZoneSize
		ci := ChunkIndex(lx, lz)
		c := zn.chunks[ci]
		if c == nil {
			c = &chunk{}
			zn.chunks[ci] = c
			w.chunks[c] = struct{}{}
		}
		c.flags[TileIndex(lx, lz)] = f
	}

	if zoneEmpty(zn) {
		delete(w.zones, key)
		return nil
	}
	w.owned[zn] = struct{}{}
	w.zones[key] = zn
	return nil
}

func (w *Writer) modify(x, z, level int, fn func(uint32) uint32) error {
	if w.closed {
		return fmt.Errorf("tile (%d, %d, %d): %w", x, z, level, ErrWriterClosed)
	}
	if !InWorld(x, z, level) {
		return fmt.Errorf("tile (%d, %d, %d): %w", x, z, level, ErrOutOfBounds)
	}
	cur := w.Get(x, z, level)
	next := fn(cur)
	if next == cur {
		return nil
	}
	w.own()

	key := ZoneOf(x, z, level)
	zn := w.zones[key]
	switch {
	case zn == nil:
		zn = &zone{}
		w.owned[zn] = struct{}{}
		w.zones[key] = zn
	case !w.ownsZone(zn):
		zn = zn.clone()
		w.owned[zn] = struct{}{}
		w.zones[key] = zn
	}

	ci := ChunkIndex(x, z)
	c := zn.chunks[ci]
	switch {
	case c == nil:
		c = &chunk{}
		w.chunks[c] = struct{}{}
	case !w.ownsChunk(c):
		c = c.clone()
		w.chunks[c] = struct{}{}
	}
	c.flags[TileIndex(x, z)] = next
	zn.chunks[ci] = c

	if next == Open && c.empty() {
		zn.chunks[ci] = nil
		if zoneEmpty(zn) {
			delete(w.zones, key)
		}
	}
	return nil
}

// own switches the writer to its private zone table on the first change.
func (w *Writer) own() {
	if w.zones != nil {
		return
	}
	w.zones = maps.Clone(w.base.zones)
	w.owned = make(map[*zone]struct{})
	w.chunks = make(map[*chunk]struct{})
}

func (w *Writer) ownsZone(zn *zone) bool {
	_, ok := w.owned[zn]
	return ok
}

func (w *Writer) ownsChunk(c *chunk) bool {
	_, ok := w.chunks[c]
	return ok
}

// snapshot returns the new state, or nil if nothing changed.
func (w *Writer) snapshot() *Snapshot {
	if w.zones == nil {
		return nil
	}
	return &Snapshot{zones: w.zones, version: w.base.version + 1}
}

func zoneEmpty(zn *zone) bool {
	for _, c := range zn.chunks {
		if c != nil {
			return false
		}
	}
	return true
}
