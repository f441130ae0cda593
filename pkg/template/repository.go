package template

import "github.com/ashfall/worldcore/pkg/monster"

// MonsterRepository is the read contract for monster templates: one
// method per query, with no base interface shared with the other
// repositories.
type MonsterRepository interface {
	MonsterByID(id string) (*monster.Template, bool)
	AllMonsterIDs() []string
}

// storeMonsterRepository adapts Store to MonsterRepository.
type storeMonsterRepository struct {
	store *Store
}

// NewMonsterRepository returns a MonsterRepository backed by store.
func NewMonsterRepository(store *Store) MonsterRepository {
	return &storeMonsterRepository{store: store}
}

func (r *storeMonsterRepository) MonsterByID(id string) (*monster.Template, bool) {
	var tmpl monster.Template
	ok, err := r.store.Get(Monsters, id, &tmpl)
	if err != nil || !ok {
		return nil, false
	}
	return &tmpl, true
}

func (r *storeMonsterRepository) AllMonsterIDs() []string {
	return r.store.ListIDs(Monsters)
}

// Item is a static item template record: display data plus tags
// consumed by loot and crafting systems.
type Item struct {
	ID           string
	Name         string
	Rarity       string
	SlotType     string
	SemanticTags map[string]float64
}

// ItemRepository is the read contract for item templates.
type ItemRepository interface {
	ItemByID(id string) (*Item, bool)
	AllItemIDs() []string
}

type storeItemRepository struct {
	store *Store
}

// NewItemRepository returns an ItemRepository backed by store.
func NewItemRepository(store *Store) ItemRepository {
	return &storeItemRepository{store: store}
}

func (r *storeItemRepository) ItemByID(id string) (*Item, bool) {
	var item Item
	ok, err := r.store.Get(Items, id, &item)
	if err != nil || !ok {
		return nil, false
	}
	return &item, true
}

func (r *storeItemRepository) AllItemIDs() []string {
	return r.store.ListIDs(Items)
}
