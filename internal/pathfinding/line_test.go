package pathfinding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectLine(sx, sz, ex, ez int) [][2]int {
	var out [][2]int
	it := newLineIterator(sx, sz, ex, ez)
	for it.Next() {
		out = append(out, [2]int{it.X(), it.Z()})
	}
	return out
}

func TestLineIterator(t *testing.T) {
	tests := []struct {
		name           string
		sx, sz, ex, ez int
		want           [][2]int
	}{
		{"single tile", 5, 5, 5, 5, [][2]int{{5, 5}}},
		{"east", 0, 0, 3, 0, [][2]int{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"south", 2, 2, 2, -1, [][2]int{{2, 2}, {2, 1}, {2, 0}, {2, -1}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"anti-diagonal", 3, 0, 0, 3, [][2]int{{3, 0}, {2, 1}, {1, 2}, {0, 3}}},
		{"shallow", 0, 0, 4, 2, [][2]int{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collectLine(tt.sx, tt.sz, tt.ex, tt.ez))
		})
	}
}

func TestLineIteratorKingMoves(t *testing.T) {
	ends := [][2]int{{17, 5}, {-9, 23}, {-31, -30}, {4, -40}, {1, 1}}
	for _, end := range ends {
		line := collectLine(0, 0, end[0], end[1])
		assert.Equal(t, [2]int{0, 0}, line[0])
		assert.Equal(t, end, line[len(line)-1])
		assert.Len(t, line, max(abs(end[0]), abs(end[1]))+1)

		for i := 1; i < len(line); i++ {
			_, ok := DirectionOf(line[i][0]-line[i-1][0], line[i][1]-line[i-1][1])
			assert.True(t, ok, "line to %v: %v -> %v", end, line[i-1], line[i])
		}
	}
}
