// Package deltalog implements the append-only, hash-verified mutation
// log that is the canonical description of a floor's runtime state:
// (seed, floor_id, delta log) fully determines the floor at any
// sequence number by replaying deltas against a freshly generated
// ChunkData.
package deltalog

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"
)

// Type enumerates the twelve kinds of world mutation a Delta can record.
type Type int

const (
	MonsterKill Type = iota
	ChestOpen
	ShrineActivate
	LootPickup
	TrapDisarm
	DoorUnlock
	EnvironmentChange
	PlayerSpawn
	PlayerDeath
	StairsUnlock
	CraftComplete
	QuestProgress
)

var typeNames = [...]string{
	"monster_kill", "chest_open", "shrine_activate", "loot_pickup",
	"trap_disarm", "door_unlock", "environment_change", "player_spawn",
	"player_death", "stairs_unlock", "craft_complete", "quest_progress",
}

func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Delta is one recorded world mutation.
type Delta struct {
	Seq        uint64
	Tick       uint64
	Type       Type
	FloorID    uint32
	EntityHash uint64
	ActorID    string
	Payload    []byte
	SelfHash   uint64
}

// selfHash computes H(seq ‖ tick ‖ type ‖ floor_id ‖ entity_hash ‖
// actor_id ‖ payload), SHA3-256 truncated to 64 bits.
func selfHash(seq, tick uint64, typ Type, floorID uint32, entityHash uint64, actorID string, payload []byte) uint64 {
	h := sha3.New256()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seq)
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], tick)
	h.Write(buf[:])
	h.Write([]byte{byte(typ)})

	var fbuf [4]byte
	binary.LittleEndian.PutUint32(fbuf[:], floorID)
	h.Write(fbuf[:])

	binary.LittleEndian.PutUint64(buf[:], entityHash)
	h.Write(buf[:])
	h.Write([]byte(actorID))
	h.Write(payload)

	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// Verify reports whether d.SelfHash matches its recomputed hash.
func (d Delta) Verify() bool {
	return d.SelfHash == selfHash(d.Seq, d.Tick, d.Type, d.FloorID, d.EntityHash, d.ActorID, d.Payload)
}

// WireSize estimates the delta's serialized size in bytes, for
// scheduler hints on replication bandwidth.
func (d Delta) WireSize() int {
	return 8 + 8 + 1 + 4 + 8 + len(d.ActorID) + len(d.Payload) + 8
}

// Log is the append-only per-floor-session mutation log. A single
// writer (the owning floor session) appends under an exclusive lock;
// readers share the same mutex since hold times are bounded to a
// slice append or scan.
type Log struct {
	mu      sync.RWMutex
	deltas  []Delta
	nextSeq uint64
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// Record appends a new delta, computing its self-hash and assigning
// the next monotonic sequence number.
func (l *Log) Record(typ Type, floorID uint32, entityHash uint64, actorID string, payload []byte, tick uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	seq := l.nextSeq
	d := Delta{
		Seq:        seq,
		Tick:       tick,
		Type:       typ,
		FloorID:    floorID,
		EntityHash: entityHash,
		ActorID:    actorID,
		Payload:    payload,
	}
	d.SelfHash = selfHash(d.Seq, d.Tick, d.Type, d.FloorID, d.EntityHash, d.ActorID, d.Payload)

	l.deltas = append(l.deltas, d)
	l.nextSeq++
	return seq
}

// Since returns the slice of deltas with seq >= fromSeq, for
// incremental replication to a client holding known_seq = fromSeq.
// Deltas below fromSeq dropped by a prior Compact are simply absent
// from the result, not an error — the client resyncs from what
// remains.
func (l *Log) Since(fromSeq uint64) []Delta {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Delta
	for _, d := range l.deltas {
		if d.Seq >= fromSeq {
			out = append(out, d)
		}
	}
	return out
}

// ForFloor returns every delta recorded for floorID, in sequence order.
func (l *Log) ForFloor(floorID uint32) []Delta {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Delta
	for _, d := range l.deltas {
		if d.FloorID == floorID {
			out = append(out, d)
		}
	}
	return out
}

// VerifyAll performs an O(n) integrity scan, reporting false if any
// delta's self-hash no longer matches its recomputed value.
func (l *Log) VerifyAll() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, d := range l.deltas {
		if !d.Verify() {
			return false
		}
	}
	return true
}

// Compact retains only the latest maxPerFloor deltas for each floor_id,
// dropping older entries. Sequence numbers of retained deltas are left
// unchanged; readers calling Since with a seq below the compaction
// point simply observe fewer deltas in that range than before.
func (l *Log) Compact(maxPerFloor int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if maxPerFloor < 0 {
		maxPerFloor = 0
	}

	perFloor := make(map[uint32][]Delta)
	for _, d := range l.deltas {
		perFloor[d.FloorID] = append(perFloor[d.FloorID], d)
	}

	kept := make(map[uint64]bool)
	for _, ds := range perFloor {
		start := 0
		if len(ds) > maxPerFloor {
			start = len(ds) - maxPerFloor
		}
		for _, d := range ds[start:] {
			kept[d.Seq] = true
		}
	}

	retained := l.deltas[:0]
	for _, d := range l.deltas {
		if kept[d.Seq] {
			retained = append(retained, d)
		}
	}
	l.deltas = retained
}

// ClearFloor removes every delta recorded for floorID.
func (l *Log) ClearFloor(floorID uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	retained := l.deltas[:0]
	for _, d := range l.deltas {
		if d.FloorID != floorID {
			retained = append(retained, d)
		}
	}
	l.deltas = retained
}

// Len returns the number of deltas currently retained (post-compaction).
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.deltas)
}
