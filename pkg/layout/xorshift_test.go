package layout

import "testing"

func TestXorshift64_Deterministic(t *testing.T) {
	a := NewXorshift64(12345)
	b := NewXorshift64(12345)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequences diverged at step %d", i)
		}
	}
}

func TestXorshift64_ZeroSeedRemapped(t *testing.T) {
	x := NewXorshift64(0)
	if x.state == 0 {
		t.Fatal("expected zero seed to be remapped to non-zero state")
	}
}

func TestXorshift64_IntnInBounds(t *testing.T) {
	x := NewXorshift64(42)
	for i := 0; i < 1000; i++ {
		v := x.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) out of bounds: %d", v)
		}
	}
}

func TestXorshift64_Float64InUnitRange(t *testing.T) {
	x := NewXorshift64(7)
	for i := 0; i < 1000; i++ {
		v := x.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of [0,1): %f", v)
		}
	}
}

func TestXorshift64_WeightedChoiceEmptyIsNegOne(t *testing.T) {
	x := NewXorshift64(1)
	if got := x.WeightedChoice(nil); got != -1 {
		t.Errorf("expected -1 for nil weights, got %d", got)
	}
	if got := x.WeightedChoice([]float64{0, 0}); got != -1 {
		t.Errorf("expected -1 for all-zero weights, got %d", got)
	}
}

func TestXorshift64_WeightedChoiceRespectsBounds(t *testing.T) {
	x := NewXorshift64(9)
	weights := []float64{0.4, 0.3, 0.2, 0.1}
	for i := 0; i < 500; i++ {
		idx := x.WeightedChoice(weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("index out of bounds: %d", idx)
		}
	}
}
