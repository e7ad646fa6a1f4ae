package geo

// World dimensions in tiles.
const (
	WorldSize = 1 << 14 // 16384 tiles per axis
	Levels    = 4
)

// Storage decomposition: 8x8-tile chunks grouped into 64x64-tile zones.
const (
	ChunkSize  = 8
	ChunkTiles = ChunkSize * ChunkSize
	ZoneChunks = 8
	ZoneSize   = ChunkSize * ZoneChunks
	ZoneTiles  = ZoneSize * ZoneSize
	WorldZones = WorldSize / ZoneSize
)

// Directional wall bits. A wall flag on a tile names the side of that tile
// the wall is on; data providers write both sides of a wall.
const (
	WallNorthWest uint32 = 1 << 0
	WallNorth     uint32 = 1 << 1
	WallNorthEast uint32 = 1 << 2
	WallEast      uint32 = 1 << 3
	WallSouthEast uint32 = 1 << 4
	WallSouth     uint32 = 1 << 5
	WallSouthWest uint32 = 1 << 6
	WallWest      uint32 = 1 << 7

	// Loc marks a tile occupied by an impassable object.
	Loc uint32 = 1 << 8

	WallNorthWestProjBlocker uint32 = 1 << 9
	WallNorthProjBlocker     uint32 = 1 << 10
	WallNorthEastProjBlocker uint32 = 1 << 11
	WallEastProjBlocker      uint32 = 1 << 12
	WallSouthEastProjBlocker uint32 = 1 << 13
	WallSouthProjBlocker     uint32 = 1 << 14
	WallSouthWestProjBlocker uint32 = 1 << 15
	WallWestProjBlocker      uint32 = 1 << 16
	LocProjBlocker           uint32 = 1 << 17

	FloorDecoration uint32 = 1 << 18
	NPC             uint32 = 1 << 19
	Player          uint32 = 1 << 20

	// Floor marks a tile without a walkable floor (water, chasm).
	Floor uint32 = 1 << 21

	WallNorthWestRouteBlocker uint32 = 1 << 22
	WallNorthRouteBlocker     uint32 = 1 << 23
	WallNorthEastRouteBlocker uint32 = 1 << 24
	WallEastRouteBlocker      uint32 = 1 << 25
	WallSouthEastRouteBlocker uint32 = 1 << 26
	WallSouthRouteBlocker     uint32 = 1 << 27
	WallSouthWestRouteBlocker uint32 = 1 << 28
	WallWestRouteBlocker      uint32 = 1 << 29
	LocRouteBlocker           uint32 = 1 << 30

	// Roof marks a tile under a roof; used by indoor/outdoor movement.
	Roof uint32 = 1 << 31
)

// Open is the flag value of an unpopulated tile.
const Open uint32 = 0

// OutOfWorld is what every read outside the world or on an unsupported
// level returns: all bits set.
const OutOfWorld uint32 = 0xFFFFFFFF

// Entry masks. BlockX lists the flags on a destination tile that stop a
// 1x1 agent entering it while moving in direction X.
const (
	BlockWest  = WallEast | Loc | Floor
	BlockEast  = WallWest | Loc | Floor
	BlockSouth = WallNorth | Loc | Floor
	BlockNorth = WallSouth | Loc | Floor

	BlockSouthWest = WallNorth | WallNorthEast | WallEast | Loc | Floor
	BlockSouthEast = WallNorthWest | WallNorth | WallWest | Loc | Floor
	BlockNorthWest = WallEast | WallSouthEast | WallSouth | Loc | Floor
	BlockNorthEast = WallSouth | WallSouthWest | WallWest | Loc | Floor
)

// Edge masks for footprints wider than one tile: the middle tiles of a
// leading edge also must not carry walls between themselves.
const (
	BlockNorthAndSouthEast = WallNorth | WallNorthEast | WallEast | WallSouthEast | WallSouth | Loc | Floor
	BlockNorthAndSouthWest = WallNorthWest | WallNorth | WallSouth | WallSouthWest | WallWest | Loc | Floor
	BlockNorthEastAndWest  = WallNorthWest | WallNorth | WallNorthEast | WallEast | WallWest | Loc | Floor
	BlockSouthEastAndWest  = WallEast | WallSouthEast | WallSouth | WallSouthWest | WallWest | Loc | Floor
)

// AllWalls is the union of the eight directional wall bits.
const AllWalls = WallNorthWest | WallNorth | WallNorthEast | WallEast |
	WallSouthEast | WallSouth | WallSouthWest | WallWest
