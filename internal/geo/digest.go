package geo

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// ZoneDigest returns a BLAKE2b-256 digest of the zone's flags. An
// unpopulated zone hashes like a zone of Open tiles.
func (s *Snapshot) ZoneDigest(key ZoneKey) [blake2b.Size256]byte {
	tiles := s.ZoneTiles(key)
	if tiles == nil {
		tiles = make([]uint32, ZoneTiles)
	}
	return blake2b.Sum256(encodeTiles(tiles))
}

// DigestTiles hashes ZoneTiles flags in their encoded form, the same way
// ZoneDigest does. Any other length is an error.
func DigestTiles(tiles []uint32) ([blake2b.Size256]byte, error) {
	buf, err := EncodeZone(tiles)
	if err != nil {
		return [blake2b.Size256]byte{}, fmt.Errorf("digest: %w", err)
	}
	return blake2b.Sum256(buf), nil
}
