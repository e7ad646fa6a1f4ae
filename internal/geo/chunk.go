package geo

// chunk holds the flags of one 8x8 tile block, indexed by TileIndex.
// A chunk reachable from a published Snapshot is never written again.
type chunk struct {
	flags [ChunkTiles]uint32
}

func (c *chunk) get(x, z int) uint32 {
	return c.flags[TileIndex(x, z)]
}

func (c *chunk) clone() *chunk {
	cp := *c
	return &cp
}

// empty reports whether every tile of the chunk is open.
func (c *chunk) empty() bool {
	for _, f := range c.flags {
		if f != Open {
			return false
		}
	}
	return true
}
