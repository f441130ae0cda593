package floor

import (
	"github.com/ashfall/worldcore/pkg/event"
	"github.com/ashfall/worldcore/pkg/layout"
	"github.com/ashfall/worldcore/pkg/monster"
	"github.com/ashfall/worldcore/pkg/mutator"
	"github.com/ashfall/worldcore/pkg/seed"
)

// Assembler orchestrates the full floor generation pipeline: FloorSpec,
// LayoutSolver, MonsterGrammar, MutatorSelector, EventEvaluator, and
// packaging into a ChunkData, in that order.
type Assembler struct {
	deriver *seed.Deriver
}

// NewAssembler builds an Assembler bound to a tower's seed deriver. One
// Assembler serves exactly one tower seed for the process lifetime.
func NewAssembler(d *seed.Deriver) *Assembler {
	return &Assembler{deriver: d}
}

// Assembled bundles every artifact produced for one floor.
type Assembled struct {
	Spec     *Spec
	Layout   *layout.FloorLayout
	Monsters []*monster.Template
	Mutators []mutator.FloorMutator
	Effects  mutator.Effects
	Events   []*event.Data
	Chunk    *ChunkData
}

// Assemble runs the full pipeline for a single floor_id. towerSeed must
// equal the tower seed this Assembler's Deriver was constructed from:
// every caller in a process shares one tower seed, so the parameter
// exists to let ChunkData report the true seed, not to pick a different
// deriver per call.
func (a *Assembler) Assemble(floorID uint32, towerSeed uint64) *Assembled {
	if towerSeed != a.deriver.TowerSeed() {
		panic("floor: Assemble called with a seed that does not match the assembler's tower seed")
	}

	spec := BuildSpec(a.deriver, floorID)

	width, height := spec.Tier.GridSize()
	minRooms, maxRooms := spec.Tier.RoomCountRange()

	fl := layout.Solve(layout.Params{
		Width:    width,
		Height:   height,
		MinRooms: minRooms,
		MaxRooms: maxRooms,
		Seed:     spec.Hash,
	})

	monsters := a.generateMonsters(spec, floorID, fl)
	mutators := mutator.GenerateFloorMutators(towerSeed, floorID, int(spec.Tier))
	effects := mutator.ComputeEffects(mutators)
	events := a.evaluateEvents(spec)

	chunk := NewChunkData(towerSeed, floorID, spec.Biome, fl, spec.BiomeTags, monsters, mutators, events)

	return &Assembled{
		Spec:     spec,
		Layout:   fl,
		Monsters: monsters,
		Mutators: mutators,
		Effects:  effects,
		Events:   events,
		Chunk:    chunk,
	}
}

// generateMonsters decodes one Template per spawn point the layout solver
// placed, slicing a distinct 8-byte selector per spawn index out of the
// floor's monster domain digest so rerolling the roster never perturbs
// layout, mutator, or event generation.
func (a *Assembler) generateMonsters(spec *Spec, floorID uint32, fl *layout.FloorLayout) []*monster.Template {
	if len(fl.SpawnPoints) == 0 {
		return nil
	}
	digest := a.deriver.DeriveBytes(floorID, seed.DomainMonsters)
	floorLevel := spec.Tier.BaseLevel(floorID)

	templates := make([]*monster.Template, 0, len(fl.SpawnPoints))
	for i := range fl.SpawnPoints {
		offset := (i * 8) % (len(digest) - 7)
		hash := uint64(digest[offset]) |
			uint64(digest[offset+1])<<8 |
			uint64(digest[offset+2])<<16 |
			uint64(digest[offset+3])<<24 |
			uint64(digest[offset+4])<<32 |
			uint64(digest[offset+5])<<40 |
			uint64(digest[offset+6])<<48 |
			uint64(digest[offset+7])<<56
		templates = append(templates, monster.FromHash(hash, floorLevel))
	}
	return templates
}

// evaluateEvents checks every trigger type against a floor-only context.
// Triggers needing live-player data (action history, active factions,
// echo count) see those fields zero-valued and correctly decline to
// fire; only floor-intrinsic triggers can fire at generation time.
func (a *Assembler) evaluateEvents(spec *Spec) []*event.Data {
	ctx := &event.Context{
		FloorTags:       spec.BiomeTags,
		CorruptionLevel: spec.Corruption(),
		FloorHash:       spec.Hash,
	}

	triggers := []event.TriggerType{
		event.BreathShift,
		event.SemanticResonance,
		event.EchoConvergence,
		event.FloorAnomaly,
		event.FactionClash,
		event.CorruptionSurge,
		event.TowerMemory,
	}

	var fired []*event.Data
	for _, tt := range triggers {
		if d := event.Evaluate(tt, ctx); d != nil {
			fired = append(fired, d)
		}
	}
	return fired
}
