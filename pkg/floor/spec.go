package floor

import (
	"github.com/ashfall/worldcore/pkg/seed"
	"github.com/ashfall/worldcore/pkg/semantic"
)

// Spec is the FloorSpec entity: the deterministic, pure-value description
// of a floor derived from (tower_seed, floor_id) before any expensive
// generation runs. Two Specs with equal (tower_seed, floor_id) are
// byte-identical.
type Spec struct {
	FloorID   uint32
	Hash      uint64
	Tier      Tier
	Biome     Biome
	BiomeTags *semantic.Vector
}

// BuildSpec derives the FloorSpec for (towerSeed, floorID).
func BuildSpec(d *seed.Deriver, floorID uint32) *Spec {
	h := d.FloorHash(floorID)
	tier := TierForFloor(floorID)
	biome := BiomeForFloor(h, tier)

	corruption := float32(h%1000) / 1000.0
	exploration := float32((h>>16)%1000) / 1000.0

	return &Spec{
		FloorID:   floorID,
		Hash:      h,
		Tier:      tier,
		Biome:     biome,
		BiomeTags: biome.BaseTags(corruption, exploration),
	}
}

// Corruption returns the floor's corruption scalar in [0, 1), read back
// out of the biome tag vector (kept as the single source of truth so the
// biome tags and the EventEvaluator context agree on the same value).
func (s *Spec) Corruption() float32 {
	return s.BiomeTags.Get("corruption")
}

// Exploration returns the floor's exploration scalar in [0, 1).
func (s *Spec) Exploration() float32 {
	return s.BiomeTags.Get("exploration")
}
