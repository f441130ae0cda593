package floor

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/ashfall/worldcore/pkg/event"
	"github.com/ashfall/worldcore/pkg/layout"
	"github.com/ashfall/worldcore/pkg/monster"
	"github.com/ashfall/worldcore/pkg/mutator"
	"github.com/ashfall/worldcore/pkg/semantic"
)

// TileData is a single cell's serialized form inside a ChunkData, carrying
// just enough to rehydrate client-side rendering and collision without the
// full layout.Room bookkeeping.
type TileData struct {
	X, Y int
	Type layout.TileType
}

// ChunkData is the replication unit sent to clients and persisted at Tier 2:
// a floor's tile grid plus the validation hash clients use to detect
// desync against the server's authoritative generation, and the monster
// roster, mutator set, and triggered events FloorAssembler attached to
// this floor. Seed is the raw tower seed the floor was generated from,
// distinct from FloorSpec.Hash (the per-floor derived hash).
type ChunkData struct {
	Seed           uint64
	FloorID        uint32
	Biome          Biome
	Width          int
	Height         int
	WorldOffsetX   int
	WorldOffsetY   int
	Tiles          []TileData
	SemanticTags   *semantic.Vector
	Monsters       []*monster.Template
	Mutators       []mutator.FloorMutator
	Events         []*event.Data
	ValidationHash uint64
}

// NewChunkData packages a generated layout, monster roster, mutator set,
// and event batch into the floor's replication form and computes the
// validation hash. towerSeed is stored verbatim as Seed; it is never the
// per-floor derived hash.
func NewChunkData(towerSeed uint64, floorID uint32, biome Biome, fl *layout.FloorLayout, tags *semantic.Vector, monsters []*monster.Template, mutators []mutator.FloorMutator, events []*event.Data) *ChunkData {
	tiles := make([]TileData, 0, fl.Width*fl.Height)
	for y := 0; y < fl.Height; y++ {
		for x := 0; x < fl.Width; x++ {
			tiles = append(tiles, TileData{X: x, Y: y, Type: fl.At(x, y)})
		}
	}
	c := &ChunkData{
		Seed:         towerSeed,
		FloorID:      floorID,
		Biome:        biome,
		Width:        fl.Width,
		Height:       fl.Height,
		Tiles:        tiles,
		SemanticTags: tags,
		Monsters:     monsters,
		Mutators:     mutators,
		Events:       events,
	}
	c.ValidationHash = c.computeHash()
	return c
}

// computeHash implements the replication validation hash from spec.md
// section 6: H(seed ‖ ∀tile (tile_type ‖ x ‖ y ‖ biome)) in row-major tile
// order, SHA3-256 truncated to 64 bits, over immutable tile identity only
// — monsters, mutators, and events never perturb it.
func (c *ChunkData) computeHash() uint64 {
	h := sha3.New256()

	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], c.Seed)
	h.Write(seedBuf[:])

	for _, t := range c.Tiles {
		var tileBuf [9]byte
		tileBuf[0] = byte(t.Type)
		binary.LittleEndian.PutUint32(tileBuf[1:5], uint32(t.X))
		binary.LittleEndian.PutUint32(tileBuf[5:9], uint32(t.Y))
		h.Write(tileBuf[:])
		h.Write([]byte{byte(c.Biome)})
	}

	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Verify recomputes the validation hash and reports whether it still
// matches ValidationHash, detecting tampering or transmission corruption.
func (c *ChunkData) Verify() bool {
	return c.computeHash() == c.ValidationHash
}

// At returns the tile type at (x, y), or TileEmpty if out of range. Tiles
// are stored in row-major order so the lookup is a direct index.
func (c *ChunkData) At(x, y int) layout.TileType {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return layout.TileEmpty
	}
	idx := y*c.Width + x
	if idx < 0 || idx >= len(c.Tiles) {
		return layout.TileEmpty
	}
	return c.Tiles[idx].Type
}
