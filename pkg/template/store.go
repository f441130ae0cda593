// Package template implements the read-mostly embedded key-value store
// backing static game-data templates: monsters, items, abilities,
// recipes, quests, factions, loot tables, item sets, gems, npcs,
// achievements, and seasons.
package template

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// TableName identifies one of the store's twelve fixed named tables.
type TableName string

const (
	Monsters     TableName = "monsters"
	Items        TableName = "items"
	Abilities    TableName = "abilities"
	Recipes      TableName = "recipes"
	Quests       TableName = "quests"
	Factions     TableName = "factions"
	LootTables   TableName = "loot_tables"
	ItemSets     TableName = "item_sets"
	Gems         TableName = "gems"
	NPCs         TableName = "npcs"
	Achievements TableName = "achievements"
	Seasons      TableName = "seasons"
)

// AllTables lists the store's fixed table namespaces.
func AllTables() []TableName {
	return []TableName{
		Monsters, Items, Abilities, Recipes, Quests, Factions,
		LootTables, ItemSets, Gems, NPCs, Achievements, Seasons,
	}
}

// Store is the embedded KV holding all template tables. Keys are ASCII
// IDs scoped under a table prefix; values are JSON-serialized template
// records (the in-pack dependency set carries no protobuf codec, so
// JSON via encoding/json stands in for the wire format — see DESIGN.md).
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("template: open store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func tableKey(table TableName, id string) []byte {
	return []byte(string(table) + "|" + id)
}

func tablePrefix(table TableName) []byte {
	return []byte(string(table) + "|")
}

// Put writes a single record under table/id, marshaling record as JSON.
func (s *Store) Put(table TableName, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("template: marshal %s/%s: %w", table, id, err)
	}
	return s.db.Put(tableKey(table, id), data, nil)
}

// Get retrieves and unmarshals the record at table/id into out.
func (s *Store) Get(table TableName, id string, out any) (bool, error) {
	data, err := s.db.Get(tableKey(table, id), nil)
	if err == leveldb.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("template: get %s/%s: %w", table, id, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("template: unmarshal %s/%s: %w", table, id, err)
	}
	return true, nil
}

// Delete removes the record at table/id.
func (s *Store) Delete(table TableName, id string) error {
	return s.db.Delete(tableKey(table, id), nil)
}

// ListIDs returns every record ID currently stored in table.
func (s *Store) ListIDs(table TableName) []string {
	prefix := tablePrefix(table)
	iter := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	var ids []string
	for iter.Next() {
		ids = append(ids, string(iter.Key()[len(prefix):]))
	}
	return ids
}

// BulkRecord pairs an ID with the record to load under it.
type BulkRecord struct {
	ID     string
	Record any
}

// BulkLoad writes every record in a single write transaction, the
// intended way to seed a table from a static data file at startup.
func (s *Store) BulkLoad(table TableName, records []BulkRecord) error {
	batch := new(leveldb.Batch)
	for _, r := range records {
		data, err := json.Marshal(r.Record)
		if err != nil {
			return fmt.Errorf("template: marshal %s/%s: %w", table, r.ID, err)
		}
		batch.Put(tableKey(table, r.ID), data)
	}
	return s.db.Write(batch, nil)
}

// Count returns the number of records currently stored in table.
func (s *Store) Count(table TableName) int {
	return len(s.ListIDs(table))
}
