package mutator

import "testing"

func TestGenerateFloorMutators_Deterministic(t *testing.T) {
	m1 := GenerateFloorMutators(42, 10, 0)
	m2 := GenerateFloorMutators(42, 10, 0)
	if len(m1) != len(m2) {
		t.Fatalf("length mismatch: %d vs %d", len(m1), len(m2))
	}
	for i := range m1 {
		if m1[i].MutatorType != m2[i].MutatorType || m1[i].Intensity != m2[i].Intensity {
			t.Fatalf("mutator %d diverged across identical rolls", i)
		}
	}
}

func TestGenerateFloorMutators_CountByTier(t *testing.T) {
	cases := []struct {
		tier int
		want int
	}{{0, 1}, {1, 2}, {2, 3}, {3, 4}}
	for _, c := range cases {
		got := GenerateFloorMutators(42, 200, c.tier)
		if len(got) != c.want {
			t.Errorf("tier %d: expected %d mutators, got %d", c.tier, c.want, len(got))
		}
	}
}

func TestGenerateFloorMutators_DiffersByFloor(t *testing.T) {
	m1 := GenerateFloorMutators(42, 200, 1)
	m2 := GenerateFloorMutators(42, 201, 1)
	same := len(m1) == len(m2)
	if same {
		for i := range m1 {
			if m1[i].MutatorType != m2[i].MutatorType {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("expected different floors to generally roll different mutators")
	}
}

func TestGenerateFloorMutators_Echelon1NoSeverity5(t *testing.T) {
	for floorID := uint32(1); floorID <= 100; floorID++ {
		for _, m := range GenerateFloorMutators(42, floorID, 0) {
			if m.Difficulty >= 5 {
				t.Fatalf("floor %d got difficulty-5 mutator %v on Echelon1", floorID, m.MutatorType)
			}
		}
	}
}

func TestGenerateFloorMutators_IntensityInRange(t *testing.T) {
	for _, fc := range []struct {
		floor uint32
		tier  int
	}{{1, 0}, {200, 1}, {400, 2}, {999, 3}} {
		for _, m := range GenerateFloorMutators(42, fc.floor, fc.tier) {
			if m.Intensity < 0.3 || m.Intensity > 2.0 {
				t.Errorf("intensity %f out of range for floor %d", m.Intensity, fc.floor)
			}
		}
	}
}

func TestComputeEffects_Default(t *testing.T) {
	fx := ComputeEffects(nil)
	if fx.DamageDealtMult != 1.0 || fx.HealingMult != 1.0 || fx.RewardMultiplier != 1.0 {
		t.Error("expected identity defaults for empty mutator set")
	}
	if fx.Permadeath || fx.TimeLimitSecs != nil {
		t.Error("expected no permadeath/time limit by default")
	}
}

func TestComputeEffects_DoubleDamage(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(DoubleDamage, 1.0)})
	if fx.DamageDealtMult != 2.0 || fx.DamageTakenMult != 2.0 {
		t.Errorf("expected 2x damage mults, got %f/%f", fx.DamageDealtMult, fx.DamageTakenMult)
	}
}

func TestComputeEffects_NoHealing(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(NoHealing, 1.0)})
	if fx.HealingMult != 0 {
		t.Errorf("expected healing mult 0, got %f", fx.HealingMult)
	}
}

func TestComputeEffects_Ironman(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(Ironman, 1.0)})
	if !fx.Permadeath {
		t.Error("expected permadeath true")
	}
}

func TestComputeEffects_TimeTrial(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(TimeTrial, 1.0)})
	if fx.TimeLimitSecs == nil || *fx.TimeLimitSecs != 300.0 {
		t.Error("expected 300s time limit")
	}
}

func TestComputeEffects_Stacking(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{
		fromType(DoubleDamage, 1.0),
		fromType(Darkness, 1.0),
		fromType(Bountiful, 1.0),
	})
	if fx.DamageDealtMult <= 1.5 {
		t.Error("expected damage dealt mult > 1.5")
	}
	if fx.VisibilityMult >= 0.5 {
		t.Error("expected visibility mult < 0.5")
	}
	if fx.LootQuantityMult <= 1.5 {
		t.Error("expected loot quantity mult > 1.5")
	}
	if fx.TotalDifficulty <= 5 {
		t.Error("expected total difficulty > 5")
	}
	if fx.RewardMultiplier <= 1.5 {
		t.Error("expected reward multiplier > 1.5")
	}
}

func TestComputeEffects_RewardScalesWithDifficulty(t *testing.T) {
	easy := ComputeEffects([]FloorMutator{fromType(SpeedBoost, 1.0)})
	hard := ComputeEffects([]FloorMutator{fromType(Ironman, 1.0)})
	if hard.RewardMultiplier <= easy.RewardMultiplier {
		t.Error("expected harder mutator to yield higher reward multiplier")
	}
}

func TestAllTypes_CompleteAndCovers5Categories(t *testing.T) {
	all := AllTypes()
	if len(all) != 28 {
		t.Fatalf("expected 28 mutator types, got %d", len(all))
	}
	seen := map[Category]bool{}
	for _, m := range all {
		seen[m.Category] = true
		if m.Description == "" {
			t.Errorf("%v has empty description", m.MutatorType)
		}
		if m.IconID == "" {
			t.Errorf("%v has empty icon id", m.MutatorType)
		}
	}
	if len(seen) != 5 {
		t.Errorf("expected all 5 categories represented, got %d", len(seen))
	}
}

func TestDifficultyRating_InRange(t *testing.T) {
	for _, mt := range allTypes {
		d := mt.DifficultyRating()
		if d < 1 || d > 5 {
			t.Errorf("%v has invalid difficulty %d", mt, d)
		}
	}
}

func TestComputeEffects_ScarcityRarityBonus(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(Scarcity, 1.0)})
	if fx.LootQuantityMult >= 1.0 {
		t.Error("expected reduced loot quantity")
	}
	if fx.LootRarityBonus <= 0 {
		t.Error("expected positive rarity bonus")
	}
}

func TestComputeEffects_GoldenFloorNoEquipment(t *testing.T) {
	fx := ComputeEffects([]FloorMutator{fromType(GoldenFloor, 1.0)})
	if fx.LootQuantityMult != 0 {
		t.Error("expected zero equipment drops")
	}
	if fx.ShardMult <= 2.0 {
		t.Error("expected shard mult > 2.0")
	}
}
