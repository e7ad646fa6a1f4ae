package testutil

import (
	"testing"

	"github.com/udisondev/tilepath/internal/geo"
)

// AssertFlags проверяет флаги коллизии одного тайла.
func AssertFlags(t testing.TB, r geo.Reader, x, z, level int, expected uint32) {
	t.Helper()

	if actual := r.Get(x, z, level); actual != expected {
		t.Fatalf("flags at (%d, %d, %d) mismatch: expected 0x%08X, got 0x%08X", x, z, level, expected, actual)
	}
}

// AssertZoneTiles сравнивает зону снапшота с ожидаемыми тайлами и сообщает первый отличающийся тайл.
func AssertZoneTiles(t testing.TB, snap *geo.Snapshot, key geo.ZoneKey, expected []uint32) {
	t.Helper()

	actual := snap.ZoneTiles(key)
	if actual == nil {
		actual = make([]uint32, geo.ZoneTiles)
	}
	if len(expected) != len(actual) {
		t.Fatalf("%s: expected %d tiles, got %d", key, len(expected), len(actual))
	}
	for i := range expected {
		if expected[i] != actual[i] {
			t.Fatalf("%s tile (%d, %d) mismatch: expected 0x%08X, got 0x%08X",
				key, i%geo.ZoneSize, i/geo.ZoneSize, expected[i], actual[i])
		}
	}
}
