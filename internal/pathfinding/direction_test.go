package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		d        Direction
		dx, dz   int
		diagonal bool
	}{
		{West, -1, 0, false},
		{East, 1, 0, false},
		{South, 0, -1, false},
		{North, 0, 1, false},
		{SouthWest, -1, -1, true},
		{SouthEast, 1, -1, true},
		{NorthWest, -1, 1, true},
		{NorthEast, 1, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			dx, dz := tt.d.Delta()
			assert.Equal(t, tt.dx, dx)
			assert.Equal(t, tt.dz, dz)
			assert.Equal(t, tt.diagonal, tt.d.Diagonal())

			back, ok := DirectionOf(dx, dz)
			require.True(t, ok)
			assert.Equal(t, tt.d, back)

			ox, oz := tt.d.Opposite().Delta()
			assert.Equal(t, -dx, ox)
			assert.Equal(t, -dz, oz)
		})
	}
}

func TestDirectionOfRejects(t *testing.T) {
	for _, step := range [][2]int{{0, 0}, {2, 0}, {0, -2}, {2, 2}} {
		_, ok := DirectionOf(step[0], step[1])
		assert.False(t, ok, "step %v", step)
	}
}

func TestDirectionSplit(t *testing.T) {
	h, v := NorthEast.split()
	assert.Equal(t, East, h)
	assert.Equal(t, North, v)

	h, v = SouthWest.split()
	assert.Equal(t, West, h)
	assert.Equal(t, South, v)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "none", Direction(0).String())
	assert.Equal(t, "north-east", NorthEast.String())
	assert.Equal(t, "invalid", Direction(42).String())

	dx, dz := Direction(42).Delta()
	assert.Zero(t, dx)
	assert.Zero(t, dz)
}

func TestExpansionOrder(t *testing.T) {
	assert.Equal(t,
		[8]Direction{West, East, South, North, SouthWest, SouthEast, NorthWest, NorthEast},
		directions)
}
