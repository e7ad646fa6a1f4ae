package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/udisondev/tilepath/internal/geo"
)

// Collision dump layout: a 64x64 area exported as 4096 rows of 64 signed
// values. Tile (x, z) of the area lives at
// dump[(z&63)|(x&63)<<6][(x&7)|(z&7)<<3].
const (
	dumpRows    = geo.ZoneTiles
	dumpColumns = geo.ChunkTiles
)

// readDump decodes and shape-checks a collision dump.
func readDump(r io.Reader) ([][]int64, error) {
	var dump [][]int64
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decoding collision dump: %w", err)
	}
	if len(dump) != dumpRows {
		return nil, fmt.Errorf("collision dump has %d rows, want %d", len(dump), dumpRows)
	}
	for i, row := range dump {
		if len(row) != dumpColumns {
			return nil, fmt.Errorf("collision dump row %d has %d values, want %d", i, len(row), dumpColumns)
		}
	}
	return dump, nil
}

// applyDump replaces the flags of the 64x64 area starting at (originX,
// originZ) with the dump. Values are 32-bit flag words, negative when the
// top bit is set. Returns the number of tiles that are not open.
func applyDump(w *geo.Writer, dump [][]int64, originX, originZ, level int) (int, error) {
	blocked := 0
	for x := originX; x < originX+geo.ZoneSize; x++ {
		for z := originZ; z < originZ+geo.ZoneSize; z++ {
			v := dump[(z&0x3f)|(x&0x3f)<<6][(x&0x7)|(z&0x7)<<3]
			flags := uint32(v)
			if err := w.Replace(x, z, level, flags); err != nil {
				return 0, err
			}
			if flags != geo.Open {
				blocked++
			}
		}
	}
	return blocked, nil
}
