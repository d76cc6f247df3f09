package gamedata

import (
	"errors"
	"fmt"
)

// ItemRegistry holds loaded item definitions and provides lookup utilities.
type ItemRegistry struct {
	items map[string]*ItemDef
	all   []ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{
		items: make(map[string]*ItemDef),
		all:   items,
	}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of item types in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds loaded enemy definitions and provides lookup utilities.
type EnemyRegistry struct {
	enemies map[string]*EnemyDef
	all     []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	registry := &EnemyRegistry{
		enemies: make(map[string]*EnemyDef),
		all:     enemies,
	}
	for i := range enemies {
		registry.enemies[enemies[i].ID] = &enemies[i]
	}
	return registry
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.enemies[id]
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.all
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// BossRegistry
// =============================================================================

// BossRegistry holds loaded boss definitions and provides lookup utilities.
type BossRegistry struct {
	bosses map[string]*BossDef
	all    []BossDef
}

// NewBossRegistry creates a registry from loaded boss definitions.
func NewBossRegistry(bosses []BossDef) *BossRegistry {
	registry := &BossRegistry{
		bosses: make(map[string]*BossDef),
		all:    bosses,
	}
	for i := range bosses {
		registry.bosses[bosses[i].ID] = &bosses[i]
	}
	return registry
}

// GetByID returns the boss definition with the given ID, or nil if not found.
func (r *BossRegistry) GetByID(id string) *BossDef {
	return r.bosses[id]
}

// All returns all boss definitions.
func (r *BossRegistry) All() []BossDef {
	return r.all
}

// Count returns the number of bosses in the registry.
func (r *BossRegistry) Count() int {
	return len(r.all)
}

// Final returns the boss whose defeat wins the game, or nil if none is marked.
func (r *BossRegistry) Final() *BossDef {
	for i := range r.all {
		if r.all[i].Final {
			return &r.all[i]
		}
	}
	return nil
}

// =============================================================================
// AreaRegistry
// =============================================================================

// AreaRegistry holds loaded area definitions and provides lookup utilities.
type AreaRegistry struct {
	areas map[string]*AreaDef
	all   []AreaDef
}

// NewAreaRegistry creates a registry from loaded area definitions.
func NewAreaRegistry(areas []AreaDef) *AreaRegistry {
	registry := &AreaRegistry{
		areas: make(map[string]*AreaDef),
		all:   areas,
	}
	for i := range areas {
		registry.areas[areas[i].ID] = &areas[i]
	}
	return registry
}

// GetByID returns the area definition with the given ID, or nil if not found.
func (r *AreaRegistry) GetByID(id string) *AreaDef {
	return r.areas[id]
}

// All returns all area definitions.
func (r *AreaRegistry) All() []AreaDef {
	return r.all
}

// Count returns the number of areas in the registry.
func (r *AreaRegistry) Count() int {
	return len(r.all)
}

// HomeBossCount returns the number of bosses assigned to an area. A boss with
// no home area is loaded and validated but never placed on a board.
func (r *AreaRegistry) HomeBossCount() int {
	n := 0
	for i := range r.all {
		n += len(r.all[i].Bosses)
	}
	return n
}

// =============================================================================
// Tables
// =============================================================================

// Tables bundles every loaded registry. It is constructed once at startup and
// passed by reference into the engines; nothing mutates it afterwards.
type Tables struct {
	Items   *ItemRegistry
	Enemies *EnemyRegistry
	Bosses  *BossRegistry
	Areas   *AreaRegistry
}

// LoadTables loads all embedded definition files and cross-validates them.
func LoadTables() (*Tables, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	bosses, err := LoadBosses()
	if err != nil {
		return nil, err
	}
	areas, err := LoadAreas()
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	if len(bosses) == 0 {
		return nil, errors.New("no bosses loaded from bosses.json")
	}
	if len(areas) == 0 {
		return nil, errors.New("no areas loaded from areas.json")
	}

	tables := &Tables{
		Items:   NewItemRegistry(items),
		Enemies: NewEnemyRegistry(enemies),
		Bosses:  NewBossRegistry(bosses),
		Areas:   NewAreaRegistry(areas),
	}

	if err := tables.validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// MustLoadTables loads all tables, panicking on error.
func MustLoadTables() *Tables {
	tables, err := LoadTables()
	if err != nil {
		panic(err)
	}
	return tables
}

// validate checks that every ID referenced by an area resolves to a definition.
func (t *Tables) validate() error {
	for _, area := range t.Areas.All() {
		for _, id := range area.Bosses {
			if t.Bosses.GetByID(id) == nil {
				return fmt.Errorf("area %s references unknown boss %q", area.ID, id)
			}
		}
		for _, id := range area.UniqueItems {
			if t.Items.GetByID(id) == nil {
				return fmt.Errorf("area %s references unknown item %q", area.ID, id)
			}
		}
		for _, id := range area.Consumables {
			if t.Items.GetByID(id) == nil {
				return fmt.Errorf("area %s references unknown consumable %q", area.ID, id)
			}
		}
		for _, id := range area.Enemies {
			if t.Enemies.GetByID(id) == nil {
				return fmt.Errorf("area %s references unknown enemy %q", area.ID, id)
			}
		}
	}
	if t.Bosses.Final() == nil {
		return errors.New("no boss is marked final; the game cannot be won")
	}
	for _, boss := range t.Bosses.All() {
		if boss.OnDefeat != nil && t.Bosses.GetByID(boss.OnDefeat.Target) == nil {
			return fmt.Errorf("boss %s defeat effect references unknown boss %q",
				boss.ID, boss.OnDefeat.Target)
		}
	}
	return nil
}
