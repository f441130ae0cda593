package floor

import "github.com/ashfall/worldcore/pkg/semantic"

// Biome is a named thematic profile contributing base semantic tags to a
// floor. The distilled spec names seven biomes in its glossary but leaves
// their selection and base tags unspecified; this is filled in here
// (spec.md glossary: "a named thematic profile... selected by echelon and
// contributing base semantic tags").
type Biome int

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeMountain
	BiomeIce
	BiomeVolcano
	BiomeVoid
)

var biomeNames = [...]string{"plains", "forest", "desert", "mountain", "ice", "volcano", "void"}

// String returns the biome's lowercase identifier, also used as its
// canonical semantic tag name.
func (b Biome) String() string {
	if int(b) < 0 || int(b) >= len(biomeNames) {
		return "unknown"
	}
	return biomeNames[b]
}

// biomesByTier restricts which biomes are eligible at each tier: early
// floors stay pastoral, later floors skew toward corrupted extremes.
var biomesByTier = map[Tier][]Biome{
	Echelon1: {BiomePlains, BiomeForest, BiomeDesert},
	Echelon2: {BiomeForest, BiomeDesert, BiomeMountain, BiomeIce},
	Echelon3: {BiomeMountain, BiomeIce, BiomeVolcano},
	Echelon4: {BiomeVolcano, BiomeVoid, BiomeMountain},
}

// BiomeForFloor deterministically selects a biome from the tier's eligible
// set using the low bits of the floor hash.
func BiomeForFloor(floorHash uint64, tier Tier) Biome {
	candidates := biomesByTier[tier]
	if len(candidates) == 0 {
		candidates = []Biome{BiomePlains}
	}
	return candidates[floorHash%uint64(len(candidates))]
}

// BaseTags returns the biome's base semantic vector, blended into a
// floor's overall biome_tags. corruption and exploration are derived
// per-floor scalars (from the floor hash) folded into the biome-specific
// "corruption"/"exploration" tags. The event context reads corruption back
// from these tags; the LayoutSolver's decoration step reads neither.
func (b Biome) BaseTags(corruption, exploration float32) *semantic.Vector {
	v := semantic.NewEmpty()
	v.Add(b.String(), 0.9)
	v.Add("corruption", corruption)
	v.Add("exploration", exploration)

	switch b {
	case BiomePlains:
		v.Add("growth", 0.6)
		v.Add("wind", 0.4)
	case BiomeForest:
		v.Add("growth", 0.8)
		v.Add("earth", 0.5)
	case BiomeDesert:
		v.Add("heat", 0.7)
		v.Add("scarcity", 0.5)
	case BiomeMountain:
		v.Add("earth", 0.8)
		v.Add("wind", 0.5)
	case BiomeIce:
		v.Add("cold", 0.8)
		v.Add("stillness", 0.4)
	case BiomeVolcano:
		v.Add("heat", 0.9)
		v.Add("fire", 0.7)
	case BiomeVoid:
		v.Add("void", 0.9)
		v.Add("corruption", clampAdd(corruption, 0.3))
	}
	return v
}

func clampAdd(a, b float32) float32 {
	sum := a + b
	if sum > 1 {
		return 1
	}
	return sum
}
