package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilepath/internal/geo"
)

func dumpIndex(x, z int) (row, col int) {
	return (z & 0x3f) | (x&0x3f)<<6, (x & 0x7) | (z&0x7)<<3
}

func emptyDump() [][]int64 {
	dump := make([][]int64, dumpRows)
	for i := range dump {
		dump[i] = make([]int64, dumpColumns)
	}
	return dump
}

func TestReadDump(t *testing.T) {
	dump := emptyDump()
	row, col := dumpIndex(3232, 3205)
	dump[row][col] = -2147483648 // roof bit

	data, err := json.Marshal(dump)
	require.NoError(t, err)

	got, err := readDump(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, int64(-2147483648), got[row][col])
}

func TestReadDumpShape(t *testing.T) {
	_, err := readDump(strings.NewReader(`[[1, 2, 3]]`))
	assert.Error(t, err)

	_, err = readDump(strings.NewReader(`{"not": "a dump"}`))
	assert.Error(t, err)

	dump := emptyDump()
	dump[17] = dump[17][:3]
	data, err := json.Marshal(dump)
	require.NoError(t, err)
	_, err = readDump(strings.NewReader(string(data)))
	assert.ErrorContains(t, err, "row 17")
}

func TestApplyDump(t *testing.T) {
	dump := emptyDump()
	row, col := dumpIndex(3232, 3205)
	dump[row][col] = int64(geo.Loc | geo.Floor)
	row, col = dumpIndex(3263, 3263)
	dump[row][col] = -2147483648

	m := geo.NewMap()
	// Stale data inside the area is overwritten, data outside is kept.
	require.NoError(t, m.Set(3210, 3210, 0, geo.WallNorth))
	require.NoError(t, m.Set(3100, 3100, 0, geo.WallNorth))

	var blocked int
	err := m.Update(func(w *geo.Writer) error {
		n, err := applyDump(w, dump, 3200, 3200, 0)
		blocked = n
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 2, blocked)
	assert.Equal(t, geo.Loc|geo.Floor, m.Get(3232, 3205, 0))
	assert.Equal(t, geo.Roof, m.Get(3263, 3263, 0))
	assert.Equal(t, geo.Open, m.Get(3210, 3210, 0))
	assert.Equal(t, geo.WallNorth, m.Get(3100, 3100, 0))
}

func TestApplyDumpOutOfWorld(t *testing.T) {
	m := geo.NewMap()
	err := m.Update(func(w *geo.Writer) error {
		_, err := applyDump(w, emptyDump(), geo.WorldSize-32, 0, 0)
		return err
	})
	assert.ErrorIs(t, err, geo.ErrOutOfBounds)
}
