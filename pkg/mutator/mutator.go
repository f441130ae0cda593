// Package mutator implements the floor mutator system: 28 gameplay
// modifiers across five categories, deterministically selected per floor
// from a dedicated hash stream so mutator rolls never perturb layout,
// monster, or event generation.
package mutator

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/sha3"
)

// Category groups mutators by the gameplay system they touch.
type Category int

const (
	CategoryCombat Category = iota
	CategoryEnvironment
	CategoryEconomy
	CategorySemantic
	CategoryChallenge
)

func (c Category) String() string {
	return [...]string{"combat", "environment", "economy", "semantic", "challenge"}[c]
}

// Type enumerates every individual mutator.
type Type int

const (
	DoubleDamage Type = iota
	GlassCannon
	NoHealing
	CriticalStorm
	VampiricCombat
	ArmoredFoes
	ElementalChaos

	Darkness
	SpeedBoost
	LowGravity
	ToxicAtmosphere
	UnstableGround
	MagneticField

	Bountiful
	Scarcity
	GoldenFloor
	CursedGold
	MerchantBlessing

	SemanticOverload
	ElementalPurity
	TagShift
	ResonanceLock
	CorruptionTide

	TimeTrial
	Ironman
	Escalation
	Pacifist
	NoRespite
)

// allTypes is the canonical selection pool, in declaration order — its
// length and ordering are load-bearing for GenerateFloorMutators's hash
// indexing.
var allTypes = []Type{
	DoubleDamage, GlassCannon, NoHealing, CriticalStorm, VampiricCombat, ArmoredFoes, ElementalChaos,
	Darkness, SpeedBoost, LowGravity, ToxicAtmosphere, UnstableGround, MagneticField,
	Bountiful, Scarcity, GoldenFloor, CursedGold, MerchantBlessing,
	SemanticOverload, ElementalPurity, TagShift, ResonanceLock, CorruptionTide,
	TimeTrial, Ironman, Escalation, Pacifist, NoRespite,
}

// Category returns the gameplay system this mutator belongs to.
func (t Type) Category() Category {
	switch t {
	case DoubleDamage, GlassCannon, NoHealing, CriticalStorm, VampiricCombat, ArmoredFoes, ElementalChaos:
		return CategoryCombat
	case Darkness, SpeedBoost, LowGravity, ToxicAtmosphere, UnstableGround, MagneticField:
		return CategoryEnvironment
	case Bountiful, Scarcity, GoldenFloor, CursedGold, MerchantBlessing:
		return CategoryEconomy
	case SemanticOverload, ElementalPurity, TagShift, ResonanceLock, CorruptionTide:
		return CategorySemantic
	default:
		return CategoryChallenge
	}
}

// DifficultyRating scores this mutator 1 (mild) through 5 (severe), used
// for Echelon1 filtering and reward scaling.
func (t Type) DifficultyRating() int {
	switch t {
	case SpeedBoost, Bountiful, MerchantBlessing:
		return 1
	case CriticalStorm, VampiricCombat, LowGravity:
		return 2
	case DoubleDamage, Darkness, Scarcity, SemanticOverload, Pacifist, ElementalPurity:
		return 3
	case GlassCannon, ArmoredFoes, ToxicAtmosphere, GoldenFloor, CursedGold, TagShift,
		ResonanceLock, TimeTrial, Escalation, NoRespite, ElementalChaos, UnstableGround,
		MagneticField, CorruptionTide:
		return 4
	default: // NoHealing, Ironman
		return 5
	}
}

// Description returns the player-facing effect text.
func (t Type) Description() string {
	switch t {
	case DoubleDamage:
		return "All damage dealt and received is doubled"
	case GlassCannon:
		return "Deal +100% damage, take +50% damage"
	case NoHealing:
		return "All healing effects are disabled"
	case CriticalStorm:
		return "+30% critical hit chance for all combatants"
	case VampiricCombat:
		return "All hits heal 5% of damage dealt"
	case ArmoredFoes:
		return "Monsters have +50% armor"
	case ElementalChaos:
		return "Each attack has a random element"
	case Darkness:
		return "Visibility reduced to 30%"
	case SpeedBoost:
		return "+40% movement speed for everyone"
	case LowGravity:
		return "Reduced gravity, higher jumps"
	case ToxicAtmosphere:
		return "1% HP/sec damage unless near a shrine"
	case UnstableGround:
		return "Random tiles collapse every 30 seconds"
	case MagneticField:
		return "Projectiles curve unpredictably"
	case Bountiful:
		return "+100% loot drops"
	case Scarcity:
		return "-50% loot quantity, but +1 rarity tier"
	case GoldenFloor:
		return "+200% shard drops, no equipment drops"
	case CursedGold:
		return "Picking up loot deals 5% HP damage"
	case MerchantBlessing:
		return "Crafting costs halved"
	case SemanticOverload:
		return "Semantic interactions amplified x2"
	case ElementalPurity:
		return "Only one element is active on this floor"
	case TagShift:
		return "Semantic tags rotate every 60 seconds"
	case ResonanceLock:
		return "Synergies and conflicts are always at maximum"
	case CorruptionTide:
		return "Corruption rises 1% per minute"
	case TimeTrial:
		return "Clear this floor within 5 minutes"
	case Ironman:
		return "Death sends you back to floor 1"
	case Escalation:
		return "Each kill increases remaining monster difficulty"
	case Pacifist:
		return "Bonus rewards if no monsters are killed"
	case NoRespite:
		return "Monster respawn rate tripled"
	default:
		return ""
	}
}

// IconID returns the UI icon hint for this mutator.
func (t Type) IconID() string {
	switch t {
	case DoubleDamage:
		return "icon_double_sword"
	case GlassCannon:
		return "icon_shattered_shield"
	case NoHealing:
		return "icon_broken_heart"
	case CriticalStorm:
		return "icon_lightning"
	case VampiricCombat:
		return "icon_vampire"
	case ArmoredFoes:
		return "icon_heavy_armor"
	case ElementalChaos:
		return "icon_chaos_element"
	case Darkness:
		return "icon_moon"
	case SpeedBoost:
		return "icon_wind"
	case LowGravity:
		return "icon_feather"
	case ToxicAtmosphere:
		return "icon_poison"
	case UnstableGround:
		return "icon_cracked_earth"
	case MagneticField:
		return "icon_magnet"
	case Bountiful:
		return "icon_treasure"
	case Scarcity:
		return "icon_empty_chest"
	case GoldenFloor:
		return "icon_gold_coins"
	case CursedGold:
		return "icon_cursed_skull"
	case MerchantBlessing:
		return "icon_merchant"
	case SemanticOverload:
		return "icon_brain"
	case ElementalPurity:
		return "icon_crystal"
	case TagShift:
		return "icon_cycle"
	case ResonanceLock:
		return "icon_lock"
	case CorruptionTide:
		return "icon_corruption"
	case TimeTrial:
		return "icon_hourglass"
	case Ironman:
		return "icon_skull"
	case Escalation:
		return "icon_ascending"
	case Pacifist:
		return "icon_dove"
	case NoRespite:
		return "icon_swarm"
	default:
		return ""
	}
}

// FloorMutator is a mutator as applied to a specific floor, carrying its
// rolled intensity.
type FloorMutator struct {
	MutatorType Type
	Category    Category
	Description string
	Difficulty  int
	IconID      string
	Intensity   float32
}

func fromType(mt Type, intensity float32) FloorMutator {
	return FloorMutator{
		MutatorType: mt,
		Category:    mt.Category(),
		Description: mt.Description(),
		Difficulty:  mt.DifficultyRating(),
		IconID:      mt.IconID(),
		Intensity:   intensity,
	}
}

// Effects are the aggregate gameplay modifiers computed from a floor's
// active mutator set.
type Effects struct {
	DamageDealtMult       float32
	DamageTakenMult       float32
	HealingMult           float32
	CritChanceBonus       float32
	LifestealPercent      float32
	MonsterArmorMult      float32
	VisibilityMult        float32
	SpeedMult             float32
	GravityMult           float32
	LootQuantityMult      float32
	LootRarityBonus       int
	ShardMult             float32
	CraftCostMult         float32
	SemanticMult          float32
	MonsterRespawnMult    float32
	TimeLimitSecs         *float32
	Permadeath            bool
	EscalationActive      bool
	PacifistBonus         bool
	ToxicDPSPercent       float32
	CorruptionRisePerMin  float32
	TotalDifficulty       int
	RewardMultiplier      float32
}

func defaultEffects() Effects {
	return Effects{
		DamageDealtMult:    1.0,
		DamageTakenMult:    1.0,
		HealingMult:        1.0,
		MonsterArmorMult:   1.0,
		VisibilityMult:     1.0,
		SpeedMult:          1.0,
		GravityMult:        1.0,
		LootQuantityMult:   1.0,
		ShardMult:          1.0,
		CraftCostMult:      1.0,
		SemanticMult:       1.0,
		MonsterRespawnMult: 1.0,
		RewardMultiplier:   1.0,
	}
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi float32) float32 {
	return maxF(lo, minF(hi, v))
}

// ComputeEffects folds a floor's active mutators into a single Effects
// value, mirroring every per-mutator rule in the grammar.
func ComputeEffects(mutators []FloorMutator) Effects {
	fx := defaultEffects()
	totalDiff := 0

	for _, m := range mutators {
		i := m.Intensity
		totalDiff += m.Difficulty

		switch m.MutatorType {
		case DoubleDamage:
			fx.DamageDealtMult *= 1.0 + i
			fx.DamageTakenMult *= 1.0 + i
		case GlassCannon:
			fx.DamageDealtMult *= 1.0 + i
			fx.DamageTakenMult *= 1.0 + 0.5*i
		case NoHealing:
			fx.HealingMult = 0.0
		case CriticalStorm:
			fx.CritChanceBonus += 0.3 * i
		case VampiricCombat:
			fx.LifestealPercent += 0.05 * i
		case ArmoredFoes:
			fx.MonsterArmorMult *= 1.0 + 0.5*i
		case ElementalChaos, UnstableGround, MagneticField, CursedGold,
			ElementalPurity, TagShift, ResonanceLock:
			// flag-only: enforced by the combat/floor/semantic systems, not here
		case Darkness:
			fx.VisibilityMult *= float32(math.Pow(0.3, float64(i)))
		case SpeedBoost:
			fx.SpeedMult *= 1.0 + 0.4*i
		case LowGravity:
			fx.GravityMult *= 1.0 - 0.5*minF(i, 0.9)
		case ToxicAtmosphere:
			fx.ToxicDPSPercent += 0.01 * i
		case Bountiful:
			fx.LootQuantityMult *= 1.0 + i
		case Scarcity:
			fx.LootQuantityMult *= 1.0 - 0.5*minF(i, 0.9)
			fx.LootRarityBonus++
		case GoldenFloor:
			fx.ShardMult *= 1.0 + 2.0*i
			fx.LootQuantityMult = 0.0
		case MerchantBlessing:
			fx.CraftCostMult *= 1.0 - 0.5*minF(i, 0.9)
		case SemanticOverload:
			fx.SemanticMult *= 1.0 + i
		case CorruptionTide:
			fx.CorruptionRisePerMin += 0.01 * i
		case TimeTrial:
			limit := 300.0 / maxF(i, 0.5)
			fx.TimeLimitSecs = &limit
		case Ironman:
			fx.Permadeath = true
		case Escalation:
			fx.EscalationActive = true
		case Pacifist:
			fx.PacifistBonus = true
		case NoRespite:
			fx.MonsterRespawnMult *= 1.0 + 2.0*i
		}
	}

	fx.TotalDifficulty = totalDiff
	fx.RewardMultiplier = 1.0 + float32(totalDiff)*0.1
	return fx
}

func mutatorCountForTier(tier int) int {
	switch tier {
	case 0:
		return 1
	case 1:
		return 2
	case 2:
		return 3
	default:
		return 4
	}
}

func baseIntensityForTier(tier int) float32 {
	switch tier {
	case 0:
		return 0.5
	case 1:
		return 0.75
	case 2:
		return 1.0
	default:
		return 1.25
	}
}

// GenerateFloorMutators deterministically selects a floor's mutator set
// from its own hash stream (domain-salted "mutators"), distinct from the
// layout/monster/event streams so rerolling one never perturbs another.
// tier is the floor's Echelon index (0-3).
func GenerateFloorMutators(towerSeed uint64, floorID uint32, tier int) []FloorMutator {
	h := sha3.New256()
	h.Write([]byte("mutators"))
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[0:8], towerSeed)
	binary.LittleEndian.PutUint32(buf[8:12], floorID)
	h.Write(buf[:])
	digest := h.Sum(nil)

	count := mutatorCountForTier(tier)
	mutators := make([]FloorMutator, 0, count)
	usedCategories := make([]Category, 0, count)

	for i := 0; i < count; i++ {
		byteOffset := (i * 4) % 28
		selector := binary.LittleEndian.Uint32(digest[byteOffset : byteOffset+4])

		idx := int(selector) % len(allTypes)
		attempts := 0
		for attempts < len(allTypes) {
			candidate := allTypes[idx]
			cat := candidate.Category()

			alreadyUsed := false
			for _, uc := range usedCategories {
				if uc == cat {
					alreadyUsed = true
					break
				}
			}

			if !alreadyUsed || attempts >= len(allTypes)/2 {
				if tier == 0 && candidate.DifficultyRating() >= 5 {
					idx = (idx + 1) % len(allTypes)
					attempts++
					continue
				}
				break
			}
			idx = (idx + 1) % len(allTypes)
			attempts++
		}

		mt := allTypes[idx]
		usedCategories = append(usedCategories, mt.Category())

		baseIntensity := baseIntensityForTier(tier)
		variationByte := digest[(i*2+16)%32]
		variation := (float32(variationByte)/255.0)*0.4 - 0.2
		intensity := clamp(baseIntensity+variation, 0.3, 2.0)

		mutators = append(mutators, fromType(mt, intensity))
	}

	return mutators
}

// AllTypes returns the full mutator catalog at unit intensity, for UI
// reference displays.
func AllTypes() []FloorMutator {
	out := make([]FloorMutator, 0, len(allTypes))
	for _, mt := range allTypes {
		out = append(out, fromType(mt, 1.0))
	}
	return out
}
