package entity

import (
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/world"
)

// Encounter is a live combat instance against one enemy or boss occupying one
// cell. It is created when the cell is revealed and discarded when either side
// dies; the definition tables are never mutated.
type Encounter struct {
	Pos      world.Position
	ID       string // Definition ID
	Name     string
	Boss     bool
	HP       int
	MaxHP    int
	Attack   int
	Points   int
	Frozen   bool // Skips its next scheduled action
	Final    bool // Defeating this encounter wins the game
	OnDefeat *gamedata.DefeatEffect
}

// NewEnemyEncounter creates an encounter from an enemy definition.
func NewEnemyEncounter(def *gamedata.EnemyDef, pos world.Position) *Encounter {
	return &Encounter{
		Pos:    pos,
		ID:     def.ID,
		Name:   def.Name,
		HP:     def.HP,
		MaxHP:  def.HP,
		Attack: def.Attack,
		Points: def.Points,
	}
}

// NewBossEncounter creates an encounter from a boss definition. maxHP is the
// session's effective max HP for this boss, which may be lower than the
// definition's (Ceres Station reduces Ridley's).
func NewBossEncounter(def *gamedata.BossDef, pos world.Position, maxHP int) *Encounter {
	if maxHP <= 0 {
		maxHP = 0
	}
	return &Encounter{
		Pos:      pos,
		ID:       def.ID,
		Name:     def.Name,
		Boss:     true,
		HP:       maxHP,
		MaxHP:    maxHP,
		Attack:   def.Attack,
		Points:   def.Points,
		Final:    def.Final,
		OnDefeat: def.OnDefeat,
	}
}

// Alive returns true while the encounter has hit points left.
func (e *Encounter) Alive() bool {
	return e.HP > 0
}

// TakeDamage reduces HP, flooring at 0. Returns actual damage taken.
func (e *Encounter) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.HP {
		actual = e.HP
	}
	e.HP -= actual
	return actual
}
