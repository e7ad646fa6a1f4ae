package testutil

import "github.com/udisondev/tilepath/internal/geo"

// Fixtures содержит часто используемые координаты для тестов коллизий.
var Fixtures = struct {
	// Стартовая клетка большинства сценариев
	Lumbridge geo.Tile

	// Зона, в которой лежит Lumbridge
	LumbridgeZone geo.ZoneKey
}{
	Lumbridge:     geo.NewTile(3232, 3205, 0),
	LumbridgeZone: geo.ZoneOf(3232, 3205, 0),
}

// WalledZone возвращает тайлы зоны, обнесённой стеной по периметру,
// с объектом в центре. Порядок соответствует geo.ZoneTileIndex.
func WalledZone() []uint32 {
	tiles := make([]uint32, geo.ZoneTiles)
	last := geo.ZoneSize - 1
	for i := range geo.ZoneSize {
		tiles[geo.ZoneTileIndex(i, 0)] |= geo.WallSouth
		tiles[geo.ZoneTileIndex(i, last)] |= geo.WallNorth
		tiles[geo.ZoneTileIndex(0, i)] |= geo.WallWest
		tiles[geo.ZoneTileIndex(last, i)] |= geo.WallEast
	}
	tiles[geo.ZoneTileIndex(32, 32)] = geo.Loc | geo.LocProjBlocker
	return tiles
}

// FillZone возвращает зону, в которой каждый тайл равен flags.
func FillZone(flags uint32) []uint32 {
	tiles := make([]uint32, geo.ZoneTiles)
	for i := range tiles {
		tiles[i] = flags
	}
	return tiles
}
