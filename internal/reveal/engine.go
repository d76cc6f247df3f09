// Package reveal implements the tile-reveal rules: legality, item pickup,
// area restrictions, encounter starts, and the X-ray chain reaction.
package reveal

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/zebes/internal/entity"
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/telemetry"
	"github.com/samdwyer/zebes/internal/world"
)

// DefaultHeatDamage is the energy cost of revealing a heat-area cell unshielded.
const DefaultHeatDamage = 25

// RejectReason explains why a reveal request was refused.
type RejectReason int

const (
	// RejectNone - the reveal was accepted.
	RejectNone RejectReason = iota
	// RejectOutOfBounds - position is off the grid.
	RejectOutOfBounds
	// RejectAlreadyRevealed - the cell is already face-up.
	RejectAlreadyRevealed
	// RejectNotAdjacent - not orthogonally adjacent to any revealed cell.
	RejectNotAdjacent
	// RejectBlockedArea - the area cannot be entered without its unlocking item.
	RejectBlockedArea
	// RejectEncounterActive - a fight is in progress; exploration is paused.
	RejectEncounterActive
)

// String returns a human-readable reject reason.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectOutOfBounds:
		return "out_of_bounds"
	case RejectAlreadyRevealed:
		return "already_revealed"
	case RejectNotAdjacent:
		return "not_adjacent"
	case RejectBlockedArea:
		return "blocked_area"
	case RejectEncounterActive:
		return "encounter_active"
	default:
		return "unknown"
	}
}

// Outcome describes everything a single reveal request did.
type Outcome struct {
	Accepted    bool
	Reason      RejectReason
	Revealed    []world.Position // All cells flipped, chain included
	Collected   []string         // Item IDs picked up
	Points      int
	DamageTaken int
	Encounter   *entity.Encounter // Non-nil if a fight started
	Messages    []string
}

func rejected(reason RejectReason) Outcome {
	return Outcome{Reason: reason}
}

// Engine applies reveal requests to a board and player. HeatDamage is the
// per-cell penalty for unshielded heat-area reveals; the per-cell policy is
// deliberate, damage accrues for every hot cell entered.
type Engine struct {
	tables     *gamedata.Tables
	HeatDamage int
}

// NewEngine creates a reveal engine over the given tables.
func NewEngine(tables *gamedata.Tables) *Engine {
	return &Engine{
		tables:     tables,
		HeatDamage: DefaultHeatDamage,
	}
}

// Reveal attempts to flip the cell at pos. encounterActive pauses all
// exploration; bossReductions maps boss IDs to session-accumulated max-HP
// reductions (Ceres Station's defeat effect). Illegal requests mutate nothing.
func (e *Engine) Reveal(ctx context.Context, board *world.Board, player *entity.Player,
	pos world.Position, encounterActive bool, bossReductions map[string]int) Outcome {

	if encounterActive {
		return rejected(RejectEncounterActive)
	}

	cell := board.At(pos)
	if cell == nil {
		return rejected(RejectOutOfBounds)
	}
	if cell.Revealed {
		return rejected(RejectAlreadyRevealed)
	}
	if board.RevealedCount() > 0 && !board.HasRevealedNeighbor(pos) {
		return rejected(RejectNotAdjacent)
	}
	if e.areaBlocked(cell.Area, player) {
		area := e.tables.Areas.GetByID(cell.Area)
		out := rejected(RejectBlockedArea)
		out.Messages = append(out.Messages,
			fmt.Sprintf("Cannot enter %s without the Gravity Suit!", area.Name))
		return out
	}

	tracer := telemetry.Tracer("reveal")
	_, span := tracer.Start(ctx, "reveal.cell")
	defer span.End()

	out := Outcome{Accepted: true}
	e.flip(cell, player, &out, bossReductions)

	// X-ray chain: diagonal item cells auto-reveal, breadth-first.
	if cell.Content.Kind == world.ContentItem && e.hasChainReveal(player) {
		e.chainReveal(board, player, pos, &out)
	}

	span.SetAttributes(
		attribute.Int("reveal.row", pos.Row),
		attribute.Int("reveal.col", pos.Col),
		attribute.String("reveal.content", cell.Content.Kind.String()),
		attribute.Int("reveal.cells_flipped", len(out.Revealed)),
		attribute.Int("reveal.points", out.Points),
	)
	return out
}

// flip marks a cell face-up and applies its content's immediate effect.
func (e *Engine) flip(cell *world.Cell, player *entity.Player, out *Outcome, bossReductions map[string]int) {
	cell.Revealed = true
	out.Revealed = append(out.Revealed, cell.Pos)

	e.applyHeat(cell, player, out)

	switch cell.Content.Kind {
	case world.ContentItem:
		e.collectItem(cell.Content.ID, player, out)

	case world.ContentEnemy:
		def := e.tables.Enemies.GetByID(cell.Content.ID)
		out.Encounter = entity.NewEnemyEncounter(def, cell.Pos)
		out.Messages = append(out.Messages,
			fmt.Sprintf("Revealed enemy: %s (HP: %d)", def.Name, def.HP))

	case world.ContentBoss:
		def := e.tables.Bosses.GetByID(cell.Content.ID)
		maxHP := def.HP - bossReductions[def.ID]
		out.Encounter = entity.NewBossEncounter(def, cell.Pos, maxHP)
		out.Messages = append(out.Messages,
			fmt.Sprintf("Revealed boss: %s (HP: %d)", def.Name, out.Encounter.HP))
	}
}

// collectItem applies an item pickup to the player and scores it.
func (e *Engine) collectItem(id string, player *entity.Player, out *Outcome) {
	def := e.tables.Items.GetByID(id)
	if !player.ApplyItem(def) {
		out.Messages = append(out.Messages, fmt.Sprintf("Already have %s!", def.Name))
		return
	}

	out.Collected = append(out.Collected, def.ID)
	out.Points += def.Points

	if def.Stackable && def.MaxEnergyBonus == 0 {
		out.Messages = append(out.Messages,
			fmt.Sprintf("Collected %s! Total: %d", def.Name, player.Count(def.ID)))
	} else if def.MaxEnergyBonus > 0 {
		out.Messages = append(out.Messages,
			fmt.Sprintf("Energy tank collected! Max energy: %d", player.Stats().MaxEnergy))
	} else {
		out.Messages = append(out.Messages, fmt.Sprintf("Collected %s!", def.Name))
	}
}

// applyHeat charges the heat-area penalty for this cell if unshielded.
func (e *Engine) applyHeat(cell *world.Cell, player *entity.Player, out *Outcome) {
	area := e.tables.Areas.GetByID(cell.Area)
	if area == nil || area.Restriction != gamedata.RestrictionHeat {
		return
	}
	if e.hasHeatShield(player) {
		return
	}
	taken := player.TakeDamage(e.HeatDamage)
	out.DamageTaken += taken
	out.Messages = append(out.Messages,
		fmt.Sprintf("%s heat damage! -%d energy", area.Name, e.HeatDamage))
}

// chainReveal expands the X pattern outward from start: each flipped item cell
// checks its own diagonals in turn. A branch stops at non-item, revealed, or
// out-of-bounds cells. Enemy and boss cells are never auto-revealed.
func (e *Engine) chainReveal(board *world.Board, player *entity.Player, start world.Position, out *Outcome) {
	queue := []world.Position{start}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for _, diag := range pos.Diagonals() {
			cell := board.At(diag)
			if cell == nil || cell.Revealed || cell.Content.Kind != world.ContentItem {
				continue
			}
			// Blocked areas stay sealed even to the scope.
			if e.areaBlocked(cell.Area, player) {
				continue
			}

			cell.Revealed = true
			out.Revealed = append(out.Revealed, cell.Pos)
			e.applyHeat(cell, player, out)
			e.collectItem(cell.Content.ID, player, out)
			queue = append(queue, cell.Pos)
		}
	}
}

// areaBlocked returns true if the area is entry-restricted and the player
// lacks every item that unlocks it.
func (e *Engine) areaBlocked(areaID string, player *entity.Player) bool {
	area := e.tables.Areas.GetByID(areaID)
	if area == nil || area.Restriction != gamedata.RestrictionBlocked {
		return false
	}
	for _, def := range e.tables.Items.All() {
		if def.UnlocksBlocked && player.Has(def.ID) {
			return false
		}
	}
	return true
}

// hasHeatShield returns true if the player owns any heat-shielding item.
func (e *Engine) hasHeatShield(player *entity.Player) bool {
	for _, def := range e.tables.Items.All() {
		if def.ShieldsHeat && player.Has(def.ID) {
			return true
		}
	}
	return false
}

// hasChainReveal returns true if the player owns any chain-revealing item.
func (e *Engine) hasChainReveal(player *entity.Player) bool {
	for _, def := range e.tables.Items.All() {
		if def.ChainReveal && player.Has(def.ID) {
			return true
		}
	}
	return false
}
