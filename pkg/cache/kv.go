package cache

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/ashfall/worldcore/pkg/floor"
)

// chunkKey prefix — single namespace since Tier 2 only ever stores
// ChunkData keyed by floor id.
const chunkKeyPrefix = "c|"

// KV is the Tier 2 persistent floor cache, an embedded LevelDB store
// keyed by floor_id. Write transactions are serialized by the
// underlying database; reads do not block writers.
type KV struct {
	db *leveldb.DB
}

// OpenKV opens (or creates) a LevelDB database at path. A nil KV with a
// non-nil error indicates Tier 2 should be disabled and the ensemble
// degrade to 2-tier operation, per the cache's graceful-degradation
// contract.
func OpenKV(path string) (*KV, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: open tier2 store at %s: %w", path, err)
	}
	return &KV{db: db}, nil
}

func chunkKey(floorID uint32) []byte {
	key := make([]byte, len(chunkKeyPrefix)+4)
	copy(key, chunkKeyPrefix)
	binary.BigEndian.PutUint32(key[len(chunkKeyPrefix):], floorID)
	return key
}

// Get returns the cached chunk for floorID, if present.
func (kv *KV) Get(floorID uint32) (*floor.ChunkData, bool) {
	data, err := kv.db.Get(chunkKey(floorID), nil)
	if err != nil {
		return nil, false
	}
	var chunk floor.ChunkData
	if err := json.Unmarshal(data, &chunk); err != nil {
		log.Warn().Err(err).Uint32("floor_id", floorID).Msg("cache: tier2 record corrupt, treating as miss")
		return nil, false
	}
	return &chunk, true
}

// Put writes chunk under floorID. Failure is logged by the caller and
// never fails the originating request — Tier 1 still serves it.
func (kv *KV) Put(floorID uint32, chunk *floor.ChunkData) error {
	data, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("cache: marshal chunk for floor %d: %w", floorID, err)
	}
	return kv.db.Put(chunkKey(floorID), data, nil)
}

// Close releases the underlying database handle.
func (kv *KV) Close() error {
	return kv.db.Close()
}
