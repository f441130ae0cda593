// Package event implements the seven world-event trigger predicates: each
// inspects a TriggerContext and deterministically decides whether to fire,
// salting a per-floor hash stream so repeated evaluation against the same
// context always yields the same event (or the same non-event).
package event

import (
	"encoding/binary"
	"sort"
	"unicode"

	"golang.org/x/crypto/sha3"

	"github.com/ashfall/worldcore/pkg/semantic"
)

// TriggerType enumerates the seven semantic trigger predicates.
type TriggerType int

const (
	BreathShift TriggerType = iota
	SemanticResonance
	EchoConvergence
	FloorAnomaly
	FactionClash
	CorruptionSurge
	TowerMemory
)

func (t TriggerType) String() string {
	return [...]string{
		"breath_shift", "semantic_resonance", "echo_convergence", "floor_anomaly",
		"faction_clash", "corruption_surge", "tower_memory",
	}[t]
}

// DefaultCooldown returns the trigger type's default re-fire cooldown.
func (t TriggerType) DefaultCooldown() float32 {
	switch t {
	case BreathShift:
		return 60.0
	case SemanticResonance:
		return 120.0
	case EchoConvergence:
		return 90.0
	case FloorAnomaly:
		return 300.0
	case FactionClash:
		return 180.0
	case CorruptionSurge:
		return 150.0
	case TowerMemory:
		return 240.0
	default:
		return 60.0
	}
}

// Severity is how impactful a fired event is.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeverityMajor
	SeverityCritical
)

func (s Severity) String() string {
	return [...]string{"minor", "moderate", "major", "critical"}[s]
}

// EffectKind enumerates the effect payload shapes an event can carry.
type EffectKind int

const (
	EffectSpawnMonsters EffectKind = iota
	EffectPlayerBuff
	EffectEnvironmentalHazard
	EffectBonusLoot
	EffectSecretPassage
	EffectTagShift
	EffectNPCAppearance
	EffectAtmosphericChange
	EffectCorruptionWave
	EffectRevelation
)

// Effect is a single gameplay effect an event applies. Fields are
// populated according to Kind; unused fields are left zero.
type Effect struct {
	Kind               EffectKind
	Count              uint32
	ElementBias        string
	Stat               string
	Multiplier         float32
	DurationSecs       float32
	DamagePerSec       float32
	Element             string
	RarityBoost        uint32
	TargetRoom         uint32
	Tag                string
	Delta              float32
	Faction            string
	QuestAvailable     bool
	Intensity          float32
	ColorShift         string
	Damage             float32
	CorruptionIncrease float32
	HintType           string
	Content            string
}

// Data is a fully materialized world event ready to broadcast.
type Data struct {
	ID           uint64
	TriggerType  TriggerType
	Severity     Severity
	Name         string
	Description  string
	FloorID      uint32
	Effects      []Effect
	DurationSecs float32
	SemanticTags *semantic.Vector
}

// Context carries everything a trigger predicate needs to decide whether
// to fire and how to flavor its output.
type Context struct {
	BreathPhase      string // empty means none
	FloorTags        *semantic.Vector
	PlayerTags       *semantic.Vector
	EchoCount        uint32
	CorruptionLevel  float32
	ActiveFactions   []string
	ActionHistory    []string
	FloorHash        uint64
}

func eventHash(ctx *Context, salt string) uint64 {
	h := sha3.New256()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], ctx.FloorHash)
	h.Write(buf[:])
	h.Write([]byte(salt))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Evaluate dispatches to the predicate for triggerType and returns the
// fired event, or nil if the predicate's conditions are not met.
func Evaluate(triggerType TriggerType, ctx *Context) *Data {
	switch triggerType {
	case BreathShift:
		return evaluateBreathShift(ctx)
	case SemanticResonance:
		return evaluateSemanticResonance(ctx)
	case EchoConvergence:
		return evaluateEchoConvergence(ctx)
	case FloorAnomaly:
		return evaluateFloorAnomaly(ctx)
	case FactionClash:
		return evaluateFactionClash(ctx)
	case CorruptionSurge:
		return evaluateCorruptionSurge(ctx)
	case TowerMemory:
		return evaluateTowerMemory(ctx)
	default:
		return nil
	}
}

func evaluateBreathShift(ctx *Context) *Data {
	if ctx.BreathPhase == "" {
		return nil
	}
	hash := eventHash(ctx, "breath_shift")

	var name, desc string
	var effects []Effect
	var severity Severity

	switch ctx.BreathPhase {
	case "Hold":
		name = "Tower's Peak Resonance"
		desc = "The tower reaches maximum power. Rare creatures stir."
		effects = []Effect{
			{Kind: EffectSpawnMonsters, Count: 2, ElementBias: "void"},
			{Kind: EffectPlayerBuff, Stat: "damage", Multiplier: 1.2, DurationSecs: 60.0},
		}
		severity = SeverityMajor
	case "Exhale":
		name = "Tower's Exhalation"
		desc = "Energy flows outward. Hidden paths reveal themselves."
		effects = []Effect{
			{Kind: EffectSecretPassage, TargetRoom: uint32(hash % 10)},
			{Kind: EffectAtmosphericChange, Intensity: 0.7, ColorShift: "blue"},
		}
		severity = SeverityModerate
	case "Pause":
		name = "Tower's Rest"
		desc = "A peaceful lull. Echoes become visible."
		effects = []Effect{
			{Kind: EffectPlayerBuff, Stat: "healing", Multiplier: 1.5, DurationSecs: 120.0},
			{Kind: EffectAtmosphericChange, Intensity: 0.3, ColorShift: "golden"},
		}
		severity = SeverityMinor
	default:
		name = "Tower's Inhalation"
		desc = "The tower draws energy inward. Resources shimmer."
		effects = []Effect{
			{Kind: EffectBonusLoot, RarityBoost: 1},
			{Kind: EffectTagShift, Tag: "energy", Delta: 0.2},
		}
		severity = SeverityModerate
	}

	tags := semantic.New(semantic.Pair{Tag: "breath", Weight: 0.9}, semantic.Pair{Tag: "energy", Weight: 0.5})

	return &Data{
		ID:           hash,
		TriggerType:  BreathShift,
		Severity:     severity,
		Name:         name,
		Description:  desc,
		FloorID:      uint32(ctx.FloorHash) & 0xFFFF,
		Effects:      effects,
		DurationSecs: 30.0,
		SemanticTags: tags,
	}
}

func evaluateSemanticResonance(ctx *Context) *Data {
	if ctx.FloorTags == nil || ctx.PlayerTags == nil {
		return nil
	}
	similarity := ctx.FloorTags.Similarity(ctx.PlayerTags)
	if similarity < 0.6 {
		return nil
	}

	hash := eventHash(ctx, "resonance")
	dominant, _, ok := ctx.FloorTags.Dominant()
	if !ok {
		dominant = "neutral"
	}

	severity := SeverityModerate
	if similarity > 0.8 {
		severity = SeverityMajor
	}

	return &Data{
		ID:          hash,
		TriggerType: SemanticResonance,
		Severity:    severity,
		Name:        capitalize(dominant) + " Resonance",
		Description: "Your affinity with " + dominant + " resonates through the floor.",
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects: []Effect{
			{Kind: EffectPlayerBuff, Stat: dominant, Multiplier: 1.0 + similarity*0.5, DurationSecs: 45.0},
			{Kind: EffectTagShift, Tag: dominant, Delta: 0.15},
		},
		DurationSecs: 45.0,
		SemanticTags: ctx.FloorTags,
	}
}

func evaluateEchoConvergence(ctx *Context) *Data {
	if ctx.EchoCount < 3 {
		return nil
	}
	hash := eventHash(ctx, "echo_conv")
	severity := SeverityMajor
	if ctx.EchoCount >= 5 {
		severity = SeverityCritical
	}

	return &Data{
		ID:          hash,
		TriggerType: EchoConvergence,
		Severity:    severity,
		Name:        "Echo Convergence",
		Description: "Death echoes converge, distorting reality.",
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects: []Effect{
			{Kind: EffectSpawnMonsters, Count: ctx.EchoCount / 2, ElementBias: "void"},
			{Kind: EffectBonusLoot, RarityBoost: 2},
			{Kind: EffectAtmosphericChange, Intensity: 0.9, ColorShift: "purple"},
		},
		DurationSecs: 60.0,
		SemanticTags: semantic.New(
			semantic.Pair{Tag: "death", Weight: 0.8},
			semantic.Pair{Tag: "void", Weight: 0.6},
			semantic.Pair{Tag: "echo", Weight: 1.0},
		),
	}
}

func evaluateFloorAnomaly(ctx *Context) *Data {
	hash := eventHash(ctx, "anomaly")
	if hash%100 >= 15 {
		return nil // 15% chance
	}

	anomalyType := (hash / 100) % 4
	var name, desc string
	var effects []Effect

	switch anomalyType {
	case 0:
		name = "Dimensional Rift"
		desc = "A tear in the tower's fabric reveals a hidden chamber."
		effects = []Effect{
			{Kind: EffectSecretPassage, TargetRoom: uint32(hash % 20)},
			{Kind: EffectBonusLoot, RarityBoost: 3},
		}
	case 1:
		name = "Wandering Merchant"
		desc = "A mysterious trader appears between the walls."
		effects = []Effect{{Kind: EffectNPCAppearance, Faction: "neutral", QuestAvailable: false}}
	case 2:
		name = "Crystalline Growth"
		desc = "Strange crystals emerge from the floor, pulsing with energy."
		effects = []Effect{
			{Kind: EffectBonusLoot, RarityBoost: 1},
			{Kind: EffectTagShift, Tag: "crystal", Delta: 0.3},
			{Kind: EffectAtmosphericChange, Intensity: 0.5, ColorShift: "cyan"},
		}
	default:
		name = "Temporal Echo"
		desc = "Time stutters. The tower shows a glimpse of its past."
		effects = []Effect{
			{Kind: EffectRevelation, HintType: "history", Content: "An ancient floor configuration flickers into view."},
			{Kind: EffectPlayerBuff, Stat: "perception", Multiplier: 1.3, DurationSecs: 30.0},
		}
	}

	return &Data{
		ID:          hash,
		TriggerType: FloorAnomaly,
		Severity:    SeverityMajor,
		Name:        name,
		Description: desc,
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects:     effects,
		DurationSecs: 90.0,
		SemanticTags: semantic.New(
			semantic.Pair{Tag: "anomaly", Weight: 1.0},
			semantic.Pair{Tag: "mystery", Weight: 0.7},
		),
	}
}

func evaluateFactionClash(ctx *Context) *Data {
	if len(ctx.ActiveFactions) < 2 {
		return nil
	}
	hash := eventHash(ctx, "faction_clash")
	f1, f2 := ctx.ActiveFactions[0], ctx.ActiveFactions[1]

	return &Data{
		ID:          hash,
		TriggerType: FactionClash,
		Severity:    SeverityModerate,
		Name:        capitalize(f1) + " vs " + capitalize(f2) + " Clash",
		Description: "The " + f1 + " and " + f2 + " factions contest this territory.",
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects: []Effect{
			{Kind: EffectSpawnMonsters, Count: 3, ElementBias: f1},
			{Kind: EffectNPCAppearance, Faction: f2, QuestAvailable: true},
			{Kind: EffectTagShift, Tag: "conflict", Delta: 0.25},
		},
		DurationSecs: 120.0,
		SemanticTags: semantic.New(
			semantic.Pair{Tag: "faction", Weight: 0.9},
			semantic.Pair{Tag: "conflict", Weight: 0.7},
			semantic.Pair{Tag: f1, Weight: 0.5},
			semantic.Pair{Tag: f2, Weight: 0.5},
		),
	}
}

func evaluateCorruptionSurge(ctx *Context) *Data {
	if ctx.CorruptionLevel < 0.6 {
		return nil
	}
	hash := eventHash(ctx, "corruption_surge")
	severity := SeverityMajor
	if ctx.CorruptionLevel > 0.85 {
		severity = SeverityCritical
	}

	return &Data{
		ID:          hash,
		TriggerType: CorruptionSurge,
		Severity:    severity,
		Name:        "Corruption Surge",
		Description: "Corruption reaches dangerous levels. The tower writhes.",
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects: []Effect{
			{Kind: EffectCorruptionWave, Damage: ctx.CorruptionLevel * 20.0, CorruptionIncrease: 0.1},
			{Kind: EffectEnvironmentalHazard, DamagePerSec: ctx.CorruptionLevel * 5.0, DurationSecs: 30.0, Element: "corruption"},
			{Kind: EffectSpawnMonsters, Count: 4, ElementBias: "corruption"},
		},
		DurationSecs: 30.0,
		SemanticTags: semantic.New(
			semantic.Pair{Tag: "corruption", Weight: ctx.CorruptionLevel},
			semantic.Pair{Tag: "danger", Weight: 0.9},
		),
	}
}

func evaluateTowerMemory(ctx *Context) *Data {
	if len(ctx.ActionHistory) < 5 {
		return nil
	}

	counts := map[string]int{}
	for _, a := range ctx.ActionHistory {
		counts[a]++
	}

	var dominantAction string
	var maxCount int
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic tie-break, matches hash-derived determinism elsewhere
	for _, k := range keys {
		if counts[k] > maxCount {
			maxCount = counts[k]
			dominantAction = k
		}
	}
	if maxCount < 3 {
		return nil
	}

	hash := eventHash(ctx, "tower_memory")

	var name, desc string
	var effects []Effect

	switch dominantAction {
	case "attack", "combat":
		name = "Tower Remembers Violence"
		desc = "The tower recognizes your aggressive nature and responds."
		effects = []Effect{
			{Kind: EffectSpawnMonsters, Count: 5, ElementBias: "aggression"},
			{Kind: EffectPlayerBuff, Stat: "damage", Multiplier: 1.3, DurationSecs: 60.0},
		}
	case "explore", "discover":
		name = "Tower Guides the Curious"
		desc = "The tower senses your explorative spirit and reveals secrets."
		effects = []Effect{
			{Kind: EffectSecretPassage, TargetRoom: uint32(hash % 15)},
			{Kind: EffectRevelation, HintType: "map", Content: "Hidden passages glow faintly."},
		}
	case "craft", "gather":
		name = "Tower Nourishes the Crafter"
		desc = "The tower recognizes your creative efforts."
		effects = []Effect{
			{Kind: EffectBonusLoot, RarityBoost: 2},
			{Kind: EffectTagShift, Tag: "crafting", Delta: 0.2},
		}
	default:
		name = "Tower's Whisper"
		desc = "The tower stirs, acknowledging your presence."
		effects = []Effect{
			{Kind: EffectAtmosphericChange, Intensity: 0.4, ColorShift: "white"},
			{Kind: EffectRevelation, HintType: "lore", Content: "Ancient writing appears on the walls."},
		}
	}

	return &Data{
		ID:          hash,
		TriggerType: TowerMemory,
		Severity:    SeverityModerate,
		Name:        name,
		Description: desc,
		FloorID:     uint32(ctx.FloorHash) & 0xFFFF,
		Effects:     effects,
		DurationSecs: 60.0,
		SemanticTags: semantic.New(
			semantic.Pair{Tag: "memory", Weight: 0.8},
			semantic.Pair{Tag: "tower", Weight: 0.6},
			semantic.Pair{Tag: dominantAction, Weight: 0.5},
		),
	}
}
