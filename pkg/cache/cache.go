package cache

import (
	"context"
	"sync/atomic"

	"github.com/ashfall/worldcore/pkg/floor"
)

// Stats reports cache ensemble counters for observability and testing.
type Stats struct {
	Tier1Hits        uint64
	Tier2Hits        uint64
	Tier3Generations uint64
	Tier2Enabled     bool
}

// Ensemble is the public three-tier cache contract:
// get_or_generate(floor_id, seed) -> ChunkData, safe under concurrent
// calls for the same or different floor_ids.
type Ensemble struct {
	lru  *LRU
	kv   *KV // nil when Tier 2 disabled
	pool *WorkerPool

	tier1Hits atomic.Uint64
	tier2Hits atomic.Uint64
	tier3Gens atomic.Uint64
}

// NewEnsemble wires the three tiers together. kv may be nil to run
// Tier 2-disabled (degraded mode).
func NewEnsemble(assembler *floor.Assembler, lruCapacity int, kv *KV, workerCount, queueCapacity int) *Ensemble {
	lru := NewLRU(lruCapacity)
	return &Ensemble{
		lru:  lru,
		kv:   kv,
		pool: NewWorkerPool(assembler, lru, kv, workerCount, queueCapacity),
	}
}

// GetOrGenerate returns floorID's chunk, checking Tier 1 then Tier 2
// before handing the request to the Tier 3 worker pool. On any cache
// hit, no worker is dispatched.
func (e *Ensemble) GetOrGenerate(ctx context.Context, floorID uint32, seed uint64) (*floor.ChunkData, bool) {
	if chunk, ok := e.lru.Get(floorID); ok {
		e.tier1Hits.Add(1)
		return chunk, true
	}

	if e.kv != nil {
		if chunk, ok := e.kv.Get(floorID); ok {
			e.tier2Hits.Add(1)
			e.lru.Put(floorID, chunk)
			return chunk, true
		}
	}

	e.tier3Gens.Add(1)
	return e.pool.Submit(ctx, floorID, seed)
}

// Stats returns a snapshot of the ensemble's hit/generation counters.
func (e *Ensemble) Stats() Stats {
	return Stats{
		Tier1Hits:        e.tier1Hits.Load(),
		Tier2Hits:        e.tier2Hits.Load(),
		Tier3Generations: e.tier3Gens.Load(),
		Tier2Enabled:     e.kv != nil,
	}
}

// Warmup pre-generates and pre-caches a contiguous range of floors
// starting at startFloor, count floors long.
func (e *Ensemble) Warmup(ctx context.Context, startFloor uint32, count int, seed uint64) {
	for i := 0; i < count; i++ {
		e.GetOrGenerate(ctx, startFloor+uint32(i), seed)
	}
}

// Shutdown stops the Tier 3 worker pool: jobs already being generated
// finish, and callers waiting on queued jobs observe cancellation.
func (e *Ensemble) Shutdown() {
	e.pool.Shutdown()
}
