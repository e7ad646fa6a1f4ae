package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkGetAndClone(t *testing.T) {
	c := &chunk{}
	assert.True(t, c.empty())

	c.flags[TileIndex(3, 4)] = Loc
	assert.Equal(t, Loc, c.get(3, 4))
	assert.Equal(t, Loc, c.get(11, 12), "coordinates wrap to the chunk")
	assert.False(t, c.empty())

	cp := c.clone()
	cp.flags[TileIndex(3, 4)] = Open
	assert.Equal(t, Loc, c.get(3, 4), "clone must not alias the original")
}

func TestZoneTilesLayout(t *testing.T) {
	zn := &zone{}
	c := &chunk{}
	c.flags[TileIndex(9, 17)] = WallNorth
	zn.chunks[ChunkIndex(9, 17)] = c

	tiles := zn.tiles()
	require.Len(t, tiles, ZoneTiles)
	assert.Equal(t, WallNorth, tiles[ZoneTileIndex(9, 17)])

	var set int
	for _, f := range tiles {
		if f != Open {
			set++
		}
	}
	assert.Equal(t, 1, set)
}

func TestEncodeDecodeZone(t *testing.T) {
	tiles := make([]uint32, ZoneTiles)
	tiles[0] = Loc | Floor
	tiles[ZoneTiles-1] = Roof

	data, err := EncodeZone(tiles)
	require.NoError(t, err)
	assert.Len(t, data, ZoneTiles*4)

	// Little-endian: Roof is the top bit of the last word.
	assert.Equal(t, byte(0x80), data[len(data)-1])

	back, err := DecodeZone(data)
	require.NoError(t, err)
	assert.Equal(t, tiles, back)
}

func TestEncodeZoneWrongSize(t *testing.T) {
	_, err := EncodeZone(make([]uint32, 10))
	assert.Error(t, err)

	_, err = DecodeZone(make([]byte, 7))
	assert.Error(t, err)
}
