package balance

import "testing"

func TestRun_Small(t *testing.T) {
	r := Run(Config{BuildCount: 200, FloorLevel: 10, BaseSeed: 42, StatPoints: 50.0})
	if r.TotalBuilds != 200 {
		t.Fatalf("expected 200 builds, got %d", r.TotalBuilds)
	}
	if r.AvgScore <= 0 {
		t.Error("expected positive average score")
	}
	if r.MinScore > r.MaxScore {
		t.Error("min score should not exceed max score")
	}
}

func TestRun_Deterministic(t *testing.T) {
	c := Config{BuildCount: 500, FloorLevel: 10, BaseSeed: 42, StatPoints: 50.0}
	r1 := Run(c)
	r2 := Run(c)
	if r1.AvgScore != r2.AvgScore || r1.MinScore != r2.MinScore || r1.MaxScore != r2.MaxScore {
		t.Fatal("expected identical config to produce identical report")
	}
}

func TestRun_AllWeaponsRepresented(t *testing.T) {
	r := Run(Config{BuildCount: 2000, FloorLevel: 10, BaseSeed: 7, StatPoints: 50.0})
	if len(r.WeaponScores) != 6 {
		t.Fatalf("expected 6 weapon breakdowns, got %d", len(r.WeaponScores))
	}
	for _, w := range r.WeaponScores {
		if w.Avg <= 0 {
			t.Errorf("weapon %s has no representation in 2000-build sweep", w.Name)
		}
	}
}

func TestRun_AllPlaystylesRepresented(t *testing.T) {
	r := Run(Config{BuildCount: 2000, FloorLevel: 10, BaseSeed: 7, StatPoints: 50.0})
	if len(r.PlaystyleScores) != 5 {
		t.Fatalf("expected 5 playstyle breakdowns, got %d", len(r.PlaystyleScores))
	}
	for _, p := range r.PlaystyleScores {
		if p.Avg <= 0 {
			t.Errorf("playstyle %s has no representation in 2000-build sweep", p.Name)
		}
	}
}

func TestRun_FloorLevelAffectsDifficulty(t *testing.T) {
	low := Run(Config{BuildCount: 500, FloorLevel: 1, BaseSeed: 42, StatPoints: 50.0})
	high := Run(Config{BuildCount: 500, FloorLevel: 50, BaseSeed: 42, StatPoints: 50.0})
	if low.AvgScore == high.AvgScore {
		t.Error("expected floor level to change average composite score")
	}
}

func TestStatAllocationFromHash_SumsToTotal(t *testing.T) {
	alloc := statAllocationFromHash(0xDEADBEEFCAFEBABE, 50.0)
	total := alloc.Total()
	if total < 49.9 || total > 50.1 {
		t.Errorf("expected stat allocation to sum to ~50, got %f", total)
	}
}

func TestSimulateBuild_ProducesValidMetrics(t *testing.T) {
	build := generateBuild(123456789, 10, 50.0)
	perf := simulateBuild(build, 10)
	if perf.DPS <= 0 || perf.EffectiveHP <= 0 {
		t.Error("expected positive DPS and EHP")
	}
	if perf.Survivability < 0 || perf.Survivability > 1.0 {
		t.Error("expected survivability in [0, 1]")
	}
}

func TestBalanceGrade_Thresholds(t *testing.T) {
	cases := []struct {
		ratio float32
		want  Grade
	}{
		{1.2, GradeExcellent},
		{1.8, GradeGood},
		{2.5, GradeFair},
		{4.0, GradePoor},
		{10.0, GradeCritical},
	}
	for _, c := range cases {
		var got Grade
		switch {
		case c.ratio < 1.5:
			got = GradeExcellent
		case c.ratio < 2.0:
			got = GradeGood
		case c.ratio < 3.0:
			got = GradeFair
		case c.ratio < 5.0:
			got = GradePoor
		default:
			got = GradeCritical
		}
		if got != c.want {
			t.Errorf("ratio %f: expected grade %v, got %v", c.ratio, c.want, got)
		}
	}
}

func TestPlaystyleFromHash_InRange(t *testing.T) {
	for i := uint64(0); i < 100; i++ {
		p := playstyleFromHash(i)
		if p < PlaystyleAggressive || p > PlaystyleSemantic {
			t.Fatalf("playstyle %d out of range for hash %d", p, i)
		}
	}
}
