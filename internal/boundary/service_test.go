package boundary

import (
	"context"
	"testing"

	"github.com/ashfall/worldcore/pkg/anticheat"
	"github.com/ashfall/worldcore/pkg/config"
	"github.com/ashfall/worldcore/pkg/deltalog"
	"github.com/ashfall/worldcore/pkg/metrics"
	"github.com/ashfall/worldcore/pkg/replay"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.WorkerThreads = 2
	cfg.CacheCapacity = 5
	svc := New(cfg, 0x12345678, metrics.New())
	t.Cleanup(svc.Shutdown)
	return svc
}

func TestGetOrGenerate_ReturnsDeterministicChunk(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c1, ok := svc.GetOrGenerate(ctx, 1, 0x12345678)
	if !ok {
		t.Fatal("expected success")
	}
	c2, ok := svc.GetOrGenerate(ctx, 1, 0x12345678)
	if !ok {
		t.Fatal("expected success")
	}
	if c1.ValidationHash != c2.ValidationHash {
		t.Error("expected identical validation hash across repeated calls")
	}

	stats := svc.CacheStats()
	if stats.Tier1Hits != 1 || stats.Tier3Generations != 1 {
		t.Errorf("expected tier1=1 tier3=1, got tier1=%d tier3=%d", stats.Tier1Hits, stats.Tier3Generations)
	}
}

func TestValidateChunk_MatchesServerHash(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	chunk, ok := svc.GetOrGenerate(ctx, 2, 0x12345678)
	if !ok {
		t.Fatal("expected success")
	}
	if !svc.ValidateChunk(ctx, 2, 0x12345678, chunk.ValidationHash) {
		t.Error("expected matching hash to validate")
	}
	if svc.ValidateChunk(ctx, 2, 0x12345678, chunk.ValidationHash+1) {
		t.Error("expected mismatched hash to fail validation")
	}
}

func TestRecordDelta_AndDeltasSince(t *testing.T) {
	svc := newTestService(t)

	seq1 := svc.RecordDelta(deltalog.MonsterKill, 1, 12345, "p1", []byte(`{"xp":50}`), 100)
	seq2 := svc.RecordDelta(deltalog.ChestOpen, 1, 67890, "p1", []byte(`{}`), 101)

	deltas := svc.DeltasSince(seq1)
	if len(deltas) != 2 {
		t.Fatalf("expected 2 deltas, got %d", len(deltas))
	}
	if deltas[1].Seq != seq2 {
		t.Errorf("expected second delta seq %d, got %d", seq2, deltas[1].Seq)
	}
	if !svc.VerifyLog() {
		t.Error("expected log to verify cleanly")
	}
}

func TestRecordAction_SpeedHackRaisesViolation(t *testing.T) {
	svc := newTestService(t)

	svc.RecordAction("session1", anticheat.Action{TimestampMs: 0, Type: anticheat.ActionMove})
	violations := svc.RecordAction("session1", anticheat.Action{
		TimestampMs: 100,
		Type:        anticheat.ActionMove,
		Position:    [3]float32{100, 100, 100},
	})

	found := false
	for _, v := range violations {
		if v.Type == anticheat.SpeedHack {
			found = true
		}
	}
	if !found {
		t.Fatal("expected SpeedHack violation")
	}

	// One High violation costs 0.15 trust (1.0 -> 0.85), which is still at
	// or above the 0.7 warning threshold.
	if penalty := svc.PenaltyFor("session1"); penalty != anticheat.PenaltyNone {
		t.Errorf("expected no penalty at trust 0.85, got %v", penalty)
	}
}

func TestPenaltyFor_UnknownSessionIsTrusted(t *testing.T) {
	svc := newTestService(t)
	if svc.PenaltyFor("never-seen") != anticheat.PenaltyNone {
		t.Error("expected PenaltyNone for unanalyzed session")
	}
}

func TestWarmup_PopulatesCache(t *testing.T) {
	svc := newTestService(t)
	svc.Warmup(context.Background(), 0x12345678, 5)

	stats := svc.CacheStats()
	if stats.Tier3Generations != 5 {
		t.Errorf("expected 5 generations from warmup, got %d", stats.Tier3Generations)
	}
}

func TestRecording_StartRecordFrameStopRoundTrip(t *testing.T) {
	svc := newTestService(t)

	svc.StartRecording("session1", 0x12345678, 1, "Hero", `{"weapon":"sword"}`, 0)
	svc.RecordFrame("session1", 1, replay.Move, `{"dx":1}`)
	svc.RecordFrame("session1", 2, replay.Attack, `{}`)

	rec := svc.StopRecording("session1", replay.Victory, 10)
	if rec == nil {
		t.Fatal("expected a recording")
	}
	if rec.Header.TotalFrames != 2 {
		t.Errorf("expected 2 frames, got %d", rec.Header.TotalFrames)
	}
	if rec.Header.ReplayID == "" {
		t.Error("expected a non-empty replay id")
	}
	if !rec.Verify() {
		t.Error("expected recording hash to verify")
	}
}

func TestStopRecording_NoStartReturnsNil(t *testing.T) {
	svc := newTestService(t)
	if rec := svc.StopRecording("never-started", replay.Victory, 10); rec != nil {
		t.Error("expected nil recording when no start was issued")
	}
}
