package geo

import (
	"encoding/binary"
	"fmt"
)

// zone holds the chunks of one 64x64 tile area. Chunks are allocated on the
// first write; a nil chunk reads as open.
type zone struct {
	chunks [ZoneChunks * ZoneChunks]*chunk
}

func (zn *zone) get(x, z int) uint32 {
	c := zn.chunks[ChunkIndex(x, z)]
	if c == nil {
		return Open
	}
	return c.get(x, z)
}

// clone copies the chunk table; chunks themselves stay shared.
func (zn *zone) clone() *zone {
	cp := *zn
	return &cp
}

// tiles flattens the zone into ZoneTiles flags in ZoneTileIndex order.
func (zn *zone) tiles() []uint32 {
	out := make([]uint32, ZoneTiles)
	for i, c := range zn.chunks {
		if c == nil {
			continue
		}
		baseX := (i % ZoneChunks) * ChunkSize
		baseZ := (i / ZoneChunks) * ChunkSize
		for j, f := range c.flags {
			lx := baseX + j%ChunkSize
			lz := baseZ + j/ChunkSize
			out[lz*ZoneSize+lx] = f
		}
	}
	return out
}

// EncodeZone packs ZoneTiles flags as little-endian uint32 values.
func EncodeZone(tiles []uint32) ([]byte, error) {
	if len(tiles) != ZoneTiles {
		return nil, fmt.Errorf("encode zone: got %d tiles, want %d", len(tiles), ZoneTiles)
	}
	return encodeTiles(tiles), nil
}

func encodeTiles(tiles []uint32) []byte {
	buf := make([]byte, len(tiles)*4)
	for i, f := range tiles {
		binary.LittleEndian.PutUint32(buf[i*4:], f)
	}
	return buf
}

// DecodeZone is the inverse of EncodeZone.
func DecodeZone(data []byte) ([]uint32, error) {
	if len(data) != ZoneTiles*4 {
		return nil, fmt.Errorf("decode zone: got %d bytes, want %d", len(data), ZoneTiles*4)
	}
	tiles := make([]uint32, ZoneTiles)
	for i := range tiles {
		tiles[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return tiles, nil
}
