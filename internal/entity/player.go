// Package entity provides game entities: the player and live encounters.
package entity

import "github.com/samdwyer/zebes/internal/gamedata"

const (
	// StartingEnergy is the player's energy at the start of a session.
	StartingEnergy = 99
	// BaseDamage is the player's attack damage with an empty inventory.
	BaseDamage = 10
	// FirstStrikeCap caps the summed first-strike percentage.
	FirstStrikeCap = 100
)

// Stats are the player's derived attributes. They are recomputed from the
// full inventory on every call, never cached incrementally.
type Stats struct {
	TotalDamage        int // Base + item bonuses, before target and suit modifiers
	FirstStrikePercent int // Clamped to [0, 100]
	BoostPercent       int // Additive outgoing-damage boost from suits
	MaxEnergy          int
}

// Player holds the mutable player state: energy and the item inventory.
type Player struct {
	Energy    int
	items     *gamedata.ItemRegistry
	inventory map[string]int
}

// NewPlayer creates a player with starting energy and an empty inventory.
func NewPlayer(items *gamedata.ItemRegistry) *Player {
	return &Player{
		Energy:    StartingEnergy,
		items:     items,
		inventory: make(map[string]int),
	}
}

// ApplyItem adds an item to the inventory. Stackable items increment their
// count; unique items are idempotent. Energy tanks refill energy to the new
// maximum. Returns false if a unique item was already owned.
func (p *Player) ApplyItem(def *gamedata.ItemDef) bool {
	if !def.Stackable && p.inventory[def.ID] > 0 {
		return false
	}
	p.inventory[def.ID]++

	if def.MaxEnergyBonus > 0 {
		p.Energy = p.Stats().MaxEnergy
	}
	return true
}

// Has returns true if at least one of the given item is owned.
func (p *Player) Has(id string) bool {
	return p.inventory[id] > 0
}

// Count returns the owned count of the given item.
func (p *Player) Count(id string) int {
	return p.inventory[id]
}

// Inventory returns a copy of the inventory counts for snapshots.
func (p *Player) Inventory() map[string]int {
	out := make(map[string]int, len(p.inventory))
	for id, count := range p.inventory {
		out[id] = count
	}
	return out
}

// Stats recomputes derived attributes from the full inventory. This is the
// single source of truth for damage and first-strike totals.
func (p *Player) Stats() Stats {
	stats := Stats{
		TotalDamage: BaseDamage,
		MaxEnergy:   StartingEnergy,
	}
	for id, count := range p.inventory {
		def := p.items.GetByID(id)
		if def == nil || count == 0 {
			continue
		}
		stats.TotalDamage += def.DamageBonus * count
		stats.FirstStrikePercent += def.FirstStrikePercent
		stats.BoostPercent += def.BoostPercent
		stats.MaxEnergy += def.MaxEnergyBonus * count
	}
	if stats.FirstStrikePercent > FirstStrikeCap {
		stats.FirstStrikePercent = FirstStrikeCap
	}
	return stats
}

// TakeDamage reduces energy, flooring at 0. Returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.Energy {
		actual = p.Energy
	}
	p.Energy -= actual
	return actual
}

// Heal restores energy up to the current maximum. Returns actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	max := p.Stats().MaxEnergy
	actual := amount
	if p.Energy+actual > max {
		actual = max - p.Energy
	}
	p.Energy += actual
	return actual
}

// Defeated returns true once energy is exhausted.
func (p *Player) Defeated() bool {
	return p.Energy <= 0
}
