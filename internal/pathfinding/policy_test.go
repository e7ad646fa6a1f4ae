package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/tilepath/internal/geo"
)

// grid is a sparse single-level FlagReader for policy tests.
type grid map[[2]int]uint32

func (g grid) Flags(x, z int) uint32 {
	return g[[2]int{x, z}]
}

func TestNormalOpenGround(t *testing.T) {
	g := grid{}
	for _, d := range directions {
		assert.True(t, Normal.CanStep(g, 0, 0, d, Unit), "step %s", d)
	}
}

func TestNormalObject(t *testing.T) {
	g := grid{{1, 0}: geo.Loc}

	assert.False(t, Normal.CanStep(g, 0, 0, East, Unit))
	assert.False(t, Normal.CanStep(g, 0, 0, NorthEast, Unit), "diagonal cuts the blocked corner")
	assert.False(t, Normal.CanStep(g, 0, 0, SouthEast, Unit))
	assert.True(t, Normal.CanStep(g, 0, 0, North, Unit))
	assert.True(t, Normal.CanStep(g, 0, 0, West, Unit))
}

func TestNormalWalls(t *testing.T) {
	tests := []struct {
		name string
		g    grid
		d    Direction
	}{
		{"wall on departing side", grid{{0, 0}: geo.WallEast}, East},
		{"wall on arriving side", grid{{1, 0}: geo.WallWest}, East},
		{"wall south of target", grid{{0, 1}: geo.WallSouth}, North},
		{"corner wall on departure", grid{{0, 0}: geo.WallNorthEast}, NorthEast},
		{"corner wall on arrival", grid{{1, 1}: geo.WallSouthWest}, NorthEast},
		{"diagonal crosses wall", grid{{-1, 1}: geo.WallSouth}, NorthWest},
		{"no floor", grid{{0, -1}: geo.Floor}, South},
		{"outside the world", grid{{-1, 0}: geo.OutOfWorld}, West},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Normal.CanStep(tt.g, 0, 0, tt.d, Unit))
			assert.True(t, NoClip.CanStep(tt.g, 0, 0, tt.d, Unit))
		})
	}
}

func TestNormalWallElsewhere(t *testing.T) {
	// A wall along the east side of the target does not stop a northward step.
	g := grid{{0, 1}: geo.WallEast}
	assert.True(t, Normal.CanStep(g, 0, 0, North, Unit))
}

func TestAmphibious(t *testing.T) {
	g := grid{{0, 1}: geo.Floor, {1, 0}: geo.Floor | geo.Loc}

	assert.False(t, Normal.CanStep(g, 0, 0, North, Unit))
	assert.True(t, Amphibious.CanStep(g, 0, 0, North, Unit))
	assert.False(t, Amphibious.CanStep(g, 0, 0, East, Unit), "objects still block")
}

func TestIndoorsOutdoors(t *testing.T) {
	g := grid{{1, 0}: geo.Roof}

	assert.True(t, Indoors.CanStep(g, 0, 0, East, Unit))
	assert.False(t, Indoors.CanStep(g, 0, 0, North, Unit))
	assert.False(t, Outdoors.CanStep(g, 0, 0, East, Unit))
	assert.True(t, Outdoors.CanStep(g, 0, 0, North, Unit))
}

func TestFootprintEdges(t *testing.T) {
	big := Square(2)

	t.Run("whole leading edge is checked", func(t *testing.T) {
		g := grid{{2, 1}: geo.Loc}
		assert.True(t, Normal.CanStep(g, 0, 0, East, Unit))
		assert.False(t, Normal.CanStep(g, 0, 0, East, big))
	})

	t.Run("walls between entered tiles", func(t *testing.T) {
		g := grid{{0, 2}: geo.WallEast}
		assert.True(t, Normal.CanStep(g, 0, 1, North, Unit))
		assert.False(t, Normal.CanStep(g, 0, 0, North, big))
	})

	t.Run("middle tiles", func(t *testing.T) {
		g := grid{{1, 3}: geo.WallWest}
		assert.True(t, Normal.CanStep(g, 0, 0, North, Square(2)))
		assert.False(t, Normal.CanStep(g, 0, 0, North, Square(3)))
	})

	t.Run("diagonal corner", func(t *testing.T) {
		g := grid{{2, 2}: geo.Loc}
		assert.True(t, Normal.CanStep(g, 0, 0, East, big))
		assert.True(t, Normal.CanStep(g, 0, 0, North, big))
		assert.False(t, Normal.CanStep(g, 0, 0, NorthEast, big))
	})

	t.Run("rectangular", func(t *testing.T) {
		wide := Footprint{Width: 3, Depth: 1}
		g := grid{{3, 0}: geo.Loc}
		assert.False(t, Normal.CanStep(g, 0, 0, East, wide))
		assert.True(t, Normal.CanStep(g, 0, 0, North, wide))
	})
}

func TestFootprintValidate(t *testing.T) {
	assert.NoError(t, Unit.Validate())
	assert.NoError(t, Footprint{Width: 3, Depth: 1}.Validate())
	assert.ErrorIs(t, Footprint{}.Validate(), ErrInvalidFootprint)
	assert.ErrorIs(t, Footprint{Width: 2, Depth: -1}.Validate(), ErrInvalidFootprint)
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"normal", "amphibious", "indoors", "outdoors", "noclip"} {
		p, err := PolicyByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := PolicyByName("flying")
	assert.Error(t, err)
}

func TestLevelReader(t *testing.T) {
	m := geo.NewMap()
	require.NoError(t, m.Set(7, 9, 2, geo.Loc))

	assert.Equal(t, geo.Loc, LevelReader(m, 2).Flags(7, 9))
	assert.Equal(t, geo.Open, LevelReader(m, 1).Flags(7, 9))
	assert.Equal(t, geo.OutOfWorld, LevelReader(m, 2).Flags(-1, 9))
}
