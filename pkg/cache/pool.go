package cache

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ashfall/worldcore/pkg/floor"
)

// request is one generation job handed to the worker pool.
type request struct {
	floorID uint32
	seed    uint64
}

// WorkerPool is the Tier 3 generation stage: a bounded FIFO queue of
// generation requests consumed by a fixed number of worker goroutines.
// Each worker rechecks Tier 1 and Tier 2 before invoking the assembler
// (single-flight discipline — the cache may have been populated by
// another worker while this request was queued), then promotes the
// result back into both tiers. Concurrent Submit calls for the same
// floor_id are deduplicated: only the first enqueues a job, the rest
// wait on its result.
type WorkerPool struct {
	assembler *floor.Assembler
	lru       *LRU
	kv        *KV // nil if Tier 2 disabled

	queue chan request

	mu       sync.Mutex
	inFlight map[uint32][]chan *floor.ChunkData

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool starts a pool of workerCount goroutines draining a
// queue bounded at queueCapacity. kv may be nil to run Tier 2-disabled.
func NewWorkerPool(assembler *floor.Assembler, lru *LRU, kv *KV, workerCount, queueCapacity int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueCapacity < 1 {
		queueCapacity = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	wp := &WorkerPool{
		assembler: assembler,
		lru:       lru,
		kv:        kv,
		queue:     make(chan request, queueCapacity),
		inFlight:  make(map[uint32][]chan *floor.ChunkData),
		cancel:    cancel,
	}

	for i := 0; i < workerCount; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
	return wp
}

// run is one worker's consume loop. It exits when ctx is cancelled
// (pool shutdown) or the queue channel is closed.
func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-wp.queue:
			if !ok {
				return
			}
			wp.handle(ctx, req)
		}
	}
}

func (wp *WorkerPool) handle(ctx context.Context, req request) {
	var chunk *floor.ChunkData

	if c, ok := wp.lru.Get(req.floorID); ok {
		chunk = c
	} else if wp.kv != nil {
		if c, ok := wp.kv.Get(req.floorID); ok {
			wp.lru.Put(req.floorID, c)
			chunk = c
		}
	}

	if chunk == nil {
		assembled := wp.assembler.Assemble(req.floorID, req.seed)
		chunk = assembled.Chunk

		wp.lru.Put(req.floorID, chunk)
		if wp.kv != nil {
			if err := wp.kv.Put(req.floorID, chunk); err != nil {
				log.Warn().Err(err).Uint32("floor_id", req.floorID).Msg("cache: tier2 promotion failed, tier1 still serves")
			}
		}
	}

	wp.mu.Lock()
	waiters := wp.inFlight[req.floorID]
	delete(wp.inFlight, req.floorID)
	wp.mu.Unlock()

	for _, w := range waiters {
		w <- chunk
		close(w)
	}
}

// Submit requests floor_id's chunk, blocking until a result is produced
// or ctx is cancelled. Queue saturation blocks the caller by design
// (backpressure), not an error condition. Concurrent Submit calls for
// the same floor_id share one in-flight generation (single-flight) and
// observe equal results.
func (wp *WorkerPool) Submit(ctx context.Context, floorID uint32, seed uint64) (*floor.ChunkData, bool) {
	resp := make(chan *floor.ChunkData, 1)

	wp.mu.Lock()
	waiters, alreadyInFlight := wp.inFlight[floorID]
	wp.inFlight[floorID] = append(waiters, resp)
	wp.mu.Unlock()

	if !alreadyInFlight {
		select {
		case wp.queue <- request{floorID: floorID, seed: seed}:
		case <-ctx.Done():
			return nil, false
		}
	}

	select {
	case chunk, ok := <-resp:
		return chunk, ok
	case <-ctx.Done():
		return nil, false
	}
}

// Shutdown signals all workers to stop and waits for them to exit. A job
// a worker has already picked up runs to completion; callers still
// waiting on a job no worker picked up observe cancellation (Submit
// returns false).
func (wp *WorkerPool) Shutdown() {
	wp.cancel()
	close(wp.queue)
	wp.wg.Wait()

	wp.mu.Lock()
	for floorID, waiters := range wp.inFlight {
		for _, w := range waiters {
			close(w)
		}
		delete(wp.inFlight, floorID)
	}
	wp.mu.Unlock()
}
