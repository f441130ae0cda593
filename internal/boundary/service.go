// Package boundary implements the contract the live-simulation
// collaborator calls across the process boundary: floor generation and
// caching, delta replication, anti-cheat recording, and floor
// validation. It owns no game-rules state of its own — it only wires
// pkg/floor, pkg/cache, pkg/deltalog, and pkg/anticheat together behind
// the operation set the spec names.
package boundary

import (
	"context"
	"sync"

	"github.com/ashfall/worldcore/pkg/anticheat"
	"github.com/ashfall/worldcore/pkg/cache"
	"github.com/ashfall/worldcore/pkg/config"
	"github.com/ashfall/worldcore/pkg/deltalog"
	"github.com/ashfall/worldcore/pkg/floor"
	"github.com/ashfall/worldcore/pkg/logging"
	"github.com/ashfall/worldcore/pkg/metrics"
	"github.com/ashfall/worldcore/pkg/replay"
	"github.com/ashfall/worldcore/pkg/seed"
)

// Service is the single entry point exposing every boundary operation.
type Service struct {
	cfg     config.Config
	cache   *cache.Ensemble
	deltas  *deltalog.Log
	metrics *metrics.Registry

	mu        sync.Mutex
	sessions  map[string]*anticheat.Analyzer
	recorders map[string]*replay.Recorder
}

// New builds a Service from a validated config and a tower seed.
// cfg.Tier2Path is only opened when cfg.EnableTier2 is set; on Tier 2 open failure
// the service degrades to Tier 1/3-only and logs the error, matching
// the spec's cache error taxonomy.
func New(cfg config.Config, towerSeed uint64, reg *metrics.Registry) *Service {
	deriver := seed.NewDeriver(towerSeed)
	assembler := floor.NewAssembler(deriver)

	var kv *cache.KV
	if cfg.EnableTier2 {
		opened, err := cache.OpenKV(cfg.Tier2Path)
		if err != nil {
			logging.Component("boundary").Warn().Err(err).Str("path", cfg.Tier2Path).
				Msg("tier2 open failed, degrading to tier1/tier3 only")
		} else {
			kv = opened
		}
	}
	reg.CacheTier2Enabled.Set(boolToFloat(kv != nil))

	svc := &Service{
		cfg:       cfg,
		cache:     cache.NewEnsemble(assembler, cfg.CacheCapacity, kv, cfg.WorkerThreads, 100),
		deltas:    deltalog.New(),
		metrics:   reg,
		sessions:  make(map[string]*anticheat.Analyzer),
		recorders: make(map[string]*replay.Recorder),
	}

	if cfg.EnableWarmup {
		svc.cache.Warmup(context.Background(), 1, cfg.WarmupCount, towerSeed)
	}

	return svc
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// GetOrGenerate returns floorID's ChunkData, serving from Tier 1/2/3 in
// order and recording which tier served the request.
func (s *Service) GetOrGenerate(ctx context.Context, floorID uint32, seed uint64) (*floor.ChunkData, bool) {
	before := s.cache.Stats()
	chunk, ok := s.cache.GetOrGenerate(ctx, floorID, seed)
	after := s.cache.Stats()

	switch {
	case after.Tier1Hits > before.Tier1Hits:
		s.metrics.CacheTier1Hits.Inc()
	case after.Tier2Hits > before.Tier2Hits:
		s.metrics.CacheTier2Hits.Inc()
	case after.Tier3Generations > before.Tier3Generations:
		s.metrics.CacheTier3Generations.Inc()
	}
	return chunk, ok
}

// ValidateChunk reports whether clientHash matches the server's
// canonical validation hash for floorID. The caller decides on
// enforcement; this only classifies match vs mismatch.
func (s *Service) ValidateChunk(ctx context.Context, floorID uint32, seed uint64, clientHash uint64) bool {
	chunk, ok := s.GetOrGenerate(ctx, floorID, seed)
	if !ok {
		return false
	}
	return chunk.ValidationHash == clientHash
}

// Warmup pre-generates and pre-caches count floors starting at floor 1
// under baseSeed.
func (s *Service) Warmup(ctx context.Context, baseSeed uint64, count int) {
	s.cache.Warmup(ctx, 1, count, baseSeed)
}

// RecordDelta appends a world-state mutation to the replication log,
// returning its assigned sequence number.
func (s *Service) RecordDelta(typ deltalog.Type, floorID uint32, entityHash uint64, actorID string, payload []byte, tick uint64) uint64 {
	seq := s.deltas.Record(typ, floorID, entityHash, actorID, payload, tick)
	s.metrics.DeltaLogAppends.Inc()
	return seq
}

// DeltasSince returns every delta with sequence number >= fromSeq.
func (s *Service) DeltasSince(fromSeq uint64) []deltalog.Delta {
	return s.deltas.Since(fromSeq)
}

// VerifyLog checks every delta's self-hash, recording the outcome on
// the diagnostic verify counters.
func (s *Service) VerifyLog() bool {
	ok := s.deltas.VerifyAll()
	if ok {
		s.metrics.DeltaLogVerifyOK.Inc()
	} else {
		s.metrics.DeltaLogVerifyFail.Inc()
	}
	return ok
}

// RecordAction analyzes action for sessionID, creating a fresh Analyzer
// on first use, and returns any violations newly detected.
func (s *Service) RecordAction(sessionID string, action anticheat.Action) []anticheat.Violation {
	analyzer := s.analyzerFor(sessionID)
	violations := analyzer.RecordAction(action)

	for _, v := range violations {
		s.metrics.AntiCheatViolations.WithLabelValues(v.Type.String()).Inc()
	}
	s.metrics.AntiCheatTrustScore.WithLabelValues(sessionID).Set(float64(analyzer.TrustScore))
	return violations
}

// PenaltyFor returns the recommended enforcement action for sessionID's
// current trust score and violation history. Sessions never analyzed
// are treated as fully trusted.
func (s *Service) PenaltyFor(sessionID string) anticheat.Penalty {
	s.mu.Lock()
	analyzer, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return anticheat.PenaltyNone
	}
	return analyzer.RecommendedPenalty()
}

func (s *Service) analyzerFor(sessionID string) *anticheat.Analyzer {
	s.mu.Lock()
	defer s.mu.Unlock()
	analyzer, ok := s.sessions[sessionID]
	if !ok {
		analyzer = anticheat.NewAnalyzer(sessionID)
		s.sessions[sessionID] = analyzer
	}
	return analyzer
}

// StartRecording begins capturing sessionID's input stream for replay,
// replacing any recording already in progress for that session.
func (s *Service) StartRecording(sessionID string, seed uint64, floorID uint32, playerName, playerBuild string, currentTick uint64) {
	rec := s.recorderFor(sessionID)
	rec.StartRecording(seed, floorID, playerName, playerBuild, currentTick)
}

// RecordFrame appends an input frame to sessionID's in-progress
// recording, a no-op if sessionID has no recording started.
func (s *Service) RecordFrame(sessionID string, tick uint64, inputType replay.InputType, payload string) {
	s.recorderFor(sessionID).RecordFrame(tick, inputType, payload)
}

// StopRecording finalizes sessionID's recording against the boundary's
// own delta log, so the resulting Recording can later be replayed for
// determinism verification.
func (s *Service) StopRecording(sessionID string, outcome replay.Outcome, currentTick uint64) *replay.Recording {
	return s.recorderFor(sessionID).StopRecording(outcome, s.deltas.Since(0), currentTick)
}

func (s *Service) recorderFor(sessionID string) *replay.Recorder {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recorders[sessionID]
	if !ok {
		rec = replay.NewRecorder()
		s.recorders[sessionID] = rec
	}
	return rec
}

// CacheStats returns the current cache ensemble counters.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// ResetMetrics swaps in a fresh metrics registry with every counter
// back at zero.
func (s *Service) ResetMetrics() {
	s.metrics = s.metrics.Reset()
}

// Shutdown stops the Tier 3 worker pool: jobs already being generated
// finish, and callers waiting on queued jobs observe cancellation.
func (s *Service) Shutdown() {
	s.cache.Shutdown()
}
