package db

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/tilepath/internal/geo"
)

// CollisionRepository persists collision flags one zone per row.
type CollisionRepository struct {
	pool *pgxpool.Pool
}

// NewCollisionRepository creates a new collision repository
func NewCollisionRepository(pool *pgxpool.Pool) *CollisionRepository {
	return &CollisionRepository{pool: pool}
}

// SaveZones writes the zones of one level from snap in a single
// transaction. Zones whose stored digest matches are skipped; stored zones
// the snapshot no longer has are deleted. Returns the number of rows
// written or deleted.
func (r *CollisionRepository) SaveZones(ctx context.Context, snap *geo.Snapshot, level int) (int, error) {
	if !geo.ValidLevel(level) {
		return 0, fmt.Errorf("saving level %d: %w", level, geo.ErrOutOfBounds)
	}

	stored, err := r.digests(ctx, level)
	if err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	keys := snap.ZoneKeys(level)
	for _, key := range keys {
		digest := snap.ZoneDigest(key)
		old, ok := stored[key]
		delete(stored, key)
		if ok && bytes.Equal(old, digest[:]) {
			continue
		}

		blob, err := geo.EncodeZone(snap.ZoneTiles(key))
		if err != nil {
			return 0, fmt.Errorf("encoding %s: %w", key, err)
		}
		batch.Queue(
			`INSERT INTO collision_zones (level, zone_x, zone_z, flags, digest, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 ON CONFLICT (level, zone_x, zone_z) DO UPDATE SET
			  flags = $4, digest = $5, updated_at = now()`,
			level, key.X, key.Z, blob, digest[:],
		)
	}
	upserts := batch.Len()

	// Whatever is left in stored was cleared in memory.
	for key := range stored {
		batch.Queue(
			`DELETE FROM collision_zones WHERE level = $1 AND zone_x = $2 AND zone_z = $3`,
			level, key.X, key.Z,
		)
	}

	if batch.Len() == 0 {
		slog.Debug("collision level unchanged", "level", level, "zones", len(keys))
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	br := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return 0, fmt.Errorf("saving collision zones for level %d: %w", level, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close zone batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit level %d: %w", level, err)
	}

	slog.Info("collision zones saved",
		"level", level,
		"written", upserts,
		"deleted", len(stored),
		"unchanged", len(keys)-upserts)
	return batch.Len(), nil
}

// digests returns the stored digest of every zone on a level.
func (r *CollisionRepository) digests(ctx context.Context, level int) (map[geo.ZoneKey][]byte, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT zone_x, zone_z, digest FROM collision_zones WHERE level = $1`, level)
	if err != nil {
		return nil, fmt.Errorf("loading zone digests for level %d: %w", level, err)
	}
	defer rows.Close()

	out := make(map[geo.ZoneKey][]byte)
	for rows.Next() {
		var (
			x, z   int32
			digest []byte
		)
		if err := rows.Scan(&x, &z, &digest); err != nil {
			return nil, fmt.Errorf("scanning zone digest row: %w", err)
		}
		out[geo.ZoneKey{X: int(x), Z: int(z), Level: level}] = digest
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone digest rows: %w", err)
	}
	return out, nil
}

type storedZone struct {
	key    geo.ZoneKey
	blob   []byte
	digest []byte
	tiles  []uint32
}

// LoadLevel reads every stored zone of a level into m as one update.
// Zones are decoded in parallel; a zone whose blob does not match its
// digest is skipped with a warning. Returns the number of zones loaded.
func (r *CollisionRepository) LoadLevel(ctx context.Context, m *geo.Map, level int) (int, error) {
	if !geo.ValidLevel(level) {
		return 0, fmt.Errorf("loading level %d: %w", level, geo.ErrOutOfBounds)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT zone_x, zone_z, flags, digest
		 FROM collision_zones
		 WHERE level = $1
		 ORDER BY zone_z, zone_x`, level)
	if err != nil {
		return 0, fmt.Errorf("loading collision level %d: %w", level, err)
	}
	defer rows.Close()

	zones := make([]*storedZone, 0, 64)
	for rows.Next() {
		var (
			x, z int32
			zn   storedZone
		)
		if err := rows.Scan(&x, &z, &zn.blob, &zn.digest); err != nil {
			return 0, fmt.Errorf("scanning collision zone row: %w", err)
		}
		zn.key = geo.ZoneKey{X: int(x), Z: int(z), Level: level}
		zones = append(zones, &zn)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterating collision zone rows: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, zn := range zones {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tiles, err := geo.DecodeZone(zn.blob)
			if err != nil {
				slog.Warn("skipping malformed collision zone", "zone", zn.key, "error", err)
				return nil
			}
			digest, err := geo.DigestTiles(tiles)
			if err != nil {
				slog.Warn("skipping malformed collision zone", "zone", zn.key, "error", err)
				return nil
			}
			if !bytes.Equal(digest[:], zn.digest) {
				slog.Warn("skipping collision zone with digest mismatch", "zone", zn.key)
				return nil
			}
			zn.tiles = tiles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("decoding collision level %d: %w", level, err)
	}

	loaded := 0
	err = m.Update(func(w *geo.Writer) error {
		for _, zn := range zones {
			if zn.tiles == nil {
				continue
			}
			if err := w.ReplaceZone(zn.key, zn.tiles); err != nil {
				return err
			}
			loaded++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("applying collision level %d: %w", level, err)
	}

	slog.Info("collision level loaded", "level", level, "zones", loaded, "skipped", len(zones)-loaded)
	return loaded, nil
}

// DeleteZone removes one stored zone. Deleting a missing zone is not an error.
func (r *CollisionRepository) DeleteZone(ctx context.Context, key geo.ZoneKey) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM collision_zones WHERE level = $1 AND zone_x = $2 AND zone_z = $3`,
		key.Level, key.X, key.Z)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// CountZones returns how many zones are stored for a level.
func (r *CollisionRepository) CountZones(ctx context.Context, level int) (int, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM collision_zones WHERE level = $1`, level).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting zones for level %d: %w", level, err)
	}
	return int(n), nil
}
