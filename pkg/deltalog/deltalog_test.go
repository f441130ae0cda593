package deltalog

import "testing"

func TestRecord_AssignsMonotonicSeq(t *testing.T) {
	l := New()
	s0 := l.Record(MonsterKill, 1, 100, "player1", []byte("{}"), 10)
	s1 := l.Record(ChestOpen, 1, 200, "player1", []byte("{}"), 11)
	if s0 != 0 || s1 != 1 {
		t.Fatalf("expected seq 0,1, got %d,%d", s0, s1)
	}
}

func TestRecord_SelfHashVerifies(t *testing.T) {
	l := New()
	l.Record(LootPickup, 1, 42, "player1", []byte(`{"item":"gold"}`), 5)
	if !l.VerifyAll() {
		t.Fatal("expected fresh log to verify")
	}
}

func TestVerifyAll_DetectsTampering(t *testing.T) {
	l := New()
	l.Record(LootPickup, 1, 42, "player1", []byte(`{"item":"gold"}`), 5)
	l.deltas[0].Payload = []byte(`{"item":"tampered"}`)
	if l.VerifyAll() {
		t.Fatal("expected tampered payload to fail verification")
	}
}

func TestVerifyAll_DetectsSeqFlip(t *testing.T) {
	l := New()
	l.Record(MonsterKill, 1, 1, "a", nil, 0)
	l.Record(MonsterKill, 1, 2, "a", nil, 1)
	l.deltas[1].Seq = 5
	if l.VerifyAll() {
		t.Fatal("expected flipped seq to fail verification")
	}
}

func TestSince_ReturnsDensePrefix(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Record(MonsterKill, 1, uint64(i), "a", nil, uint64(i))
	}
	got := l.Since(2)
	if len(got) != 3 {
		t.Fatalf("expected 3 deltas since seq 2, got %d", len(got))
	}
	if got[0].Seq != 2 {
		t.Errorf("expected first returned delta to have seq 2, got %d", got[0].Seq)
	}
}

func TestSince_BeyondLogReturnsEmpty(t *testing.T) {
	l := New()
	l.Record(MonsterKill, 1, 0, "a", nil, 0)
	if got := l.Since(99); len(got) != 0 {
		t.Errorf("expected empty slice, got %d", len(got))
	}
}

func TestForFloor_FiltersByFloorID(t *testing.T) {
	l := New()
	l.Record(MonsterKill, 1, 0, "a", nil, 0)
	l.Record(MonsterKill, 2, 0, "a", nil, 1)
	l.Record(ChestOpen, 1, 0, "a", nil, 2)

	got := l.ForFloor(1)
	if len(got) != 2 {
		t.Fatalf("expected 2 deltas for floor 1, got %d", len(got))
	}
}

func TestCompact_RetainsLatestNPerFloor(t *testing.T) {
	l := New()
	for i := 0; i < 10; i++ {
		l.Record(MonsterKill, 1, uint64(i), "a", nil, uint64(i))
	}
	l.Compact(3)
	got := l.ForFloor(1)
	if len(got) != 3 {
		t.Fatalf("expected 3 retained deltas, got %d", len(got))
	}
	if got[len(got)-1].EntityHash != 9 {
		t.Error("expected the latest deltas retained, not the earliest")
	}
}

func TestCompact_PreservesOtherFloors(t *testing.T) {
	l := New()
	l.Record(MonsterKill, 1, 0, "a", nil, 0)
	l.Record(MonsterKill, 2, 0, "a", nil, 1)
	l.Compact(1)
	if len(l.ForFloor(1)) != 1 || len(l.ForFloor(2)) != 1 {
		t.Error("expected both floors to retain one delta each")
	}
}

func TestClearFloor_RemovesOnlyThatFloor(t *testing.T) {
	l := New()
	l.Record(MonsterKill, 1, 0, "a", nil, 0)
	l.Record(MonsterKill, 2, 0, "a", nil, 1)
	l.ClearFloor(1)
	if len(l.ForFloor(1)) != 0 {
		t.Error("expected floor 1 cleared")
	}
	if len(l.ForFloor(2)) != 1 {
		t.Error("expected floor 2 untouched")
	}
}

func TestWireSize_Positive(t *testing.T) {
	l := New()
	l.Record(LootPickup, 1, 0, "player1", []byte("abc"), 0)
	if l.deltas[0].WireSize() <= 0 {
		t.Error("expected positive wire size estimate")
	}
}

func TestAllTwelveTypesDistinct(t *testing.T) {
	types := []Type{
		MonsterKill, ChestOpen, ShrineActivate, LootPickup, TrapDisarm,
		DoorUnlock, EnvironmentChange, PlayerSpawn, PlayerDeath,
		StairsUnlock, CraftComplete, QuestProgress,
	}
	seen := map[string]bool{}
	for _, ty := range types {
		if seen[ty.String()] {
			t.Errorf("duplicate type name %s", ty)
		}
		seen[ty.String()] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 distinct delta types, got %d", len(seen))
	}
}
