// Package combat provides the tick-driven combat system.
package combat

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/zebes/internal/entity"
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/telemetry"
)

const (
	// EnemyActionInterval is the tick period of enemy and boss attacks.
	EnemyActionInterval = 60
	// PlayerActionInterval is the tick period of player attacks, half the
	// enemy's. On shared ticks the default order is enemy first.
	PlayerActionInterval = 30
)

// State represents the phase of an encounter.
type State int

const (
	// StateNotStarted - no encounter is armed.
	StateNotStarted State = iota
	// StateInProgress - the fight is running.
	StateInProgress
	// StatePlayerWon - the enemy or boss died.
	StatePlayerWon
	// StatePlayerLost - the player's energy ran out.
	StatePlayerLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StatePlayerWon:
		return "player_won"
	case StatePlayerLost:
		return "player_lost"
	default:
		return "unknown"
	}
}

// TickResult describes what happened during one combat tick.
type TickResult struct {
	State       State
	PlayerActed bool
	EnemyActed  bool
	FirstStrike bool // Player won the initiative roll this cycle
	DamageDealt int  // To the encounter
	DamageTaken int  // By the player
	Froze       bool // Target frozen by this tick's attack
	Points      int  // Awarded on victory, exactly once
	Defeated    *entity.Encounter
	Messages    []string
}

// Engine owns the turn clock for the active encounter. It is armed with
// Begin and advanced one logical tick at a time; the driving loop decides
// the real-time cadence.
type Engine struct {
	items *gamedata.ItemRegistry
	rng   *rand.Rand

	state State
	enc   *entity.Encounter
	ticks int
}

// NewEngine creates a combat engine. The RNG drives initiative and freeze
// rolls; seed it explicitly for reproducible fights.
func NewEngine(items *gamedata.ItemRegistry, rng *rand.Rand) *Engine {
	return &Engine{
		items: items,
		rng:   rng,
	}
}

// Begin arms the engine with a fresh encounter and resets the turn clock.
func (e *Engine) Begin(ctx context.Context, enc *entity.Encounter) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("encounter.id", enc.ID),
		attribute.Bool("encounter.boss", enc.Boss),
		attribute.Int("encounter.hp", enc.HP),
	)
	span.End()

	e.state = StateInProgress
	e.enc = enc
	e.ticks = 0
}

// Clear discards the current encounter and disarms the clock.
func (e *Engine) Clear() {
	e.state = StateNotStarted
	e.enc = nil
	e.ticks = 0
}

// Active returns true while a fight is in progress.
func (e *Engine) Active() bool {
	return e.state == StateInProgress
}

// State returns the current encounter phase.
func (e *Engine) State() State {
	return e.state
}

// Encounter returns the live encounter, or nil.
func (e *Engine) Encounter() *entity.Encounter {
	return e.enc
}

// Tick advances the turn clock by one logical tick and resolves any actions
// scheduled for it. Enemy/boss actions fire every EnemyActionInterval ticks,
// player actions every PlayerActionInterval. On a shared tick the enemy acts
// first unless the player wins the first-strike roll.
func (e *Engine) Tick(ctx context.Context, player *entity.Player) TickResult {
	if e.state != StateInProgress {
		return TickResult{State: e.state}
	}

	e.ticks++
	res := TickResult{}

	switch {
	case e.ticks%EnemyActionInterval == 0:
		res.FirstStrike = e.rng.Intn(100) < player.Stats().FirstStrikePercent
		if res.FirstStrike {
			e.playerAttack(player, &res)
			if e.state == StateInProgress {
				e.enemyAttack(player, &res)
			}
		} else {
			e.enemyAttack(player, &res)
			if e.state == StateInProgress {
				e.playerAttack(player, &res)
			}
		}

	case e.ticks%PlayerActionInterval == 0:
		e.playerAttack(player, &res)
	}

	if e.state == StatePlayerWon || e.state == StatePlayerLost {
		e.endSpan(ctx, &res)
	}

	res.State = e.state
	return res
}

// playerAttack resolves one player action against the encounter.
func (e *Engine) playerAttack(player *entity.Player, res *TickResult) {
	res.PlayerActed = true

	damage := e.playerDamage(player, res)
	e.enc.TakeDamage(damage)
	res.DamageDealt += damage
	res.Messages = append(res.Messages,
		fmt.Sprintf("Samus attacks %s for %d dmg!", e.enc.Name, damage))

	if !e.enc.Alive() {
		e.state = StatePlayerWon
		res.Points = e.enc.Points
		res.Defeated = e.enc
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s defeated! Score: +%d", e.enc.Name, e.enc.Points))
		return
	}

	// Freeze roll, independent per attack
	if chance := e.freezeChance(player); chance > 0 && e.rng.Intn(100) < chance {
		e.enc.Frozen = true
		res.Froze = true
		res.Messages = append(res.Messages, fmt.Sprintf("%s frozen!", e.enc.Name))
	}
}

// enemyAttack resolves one enemy/boss action against the player. A frozen
// target skips exactly this one action and thaws.
func (e *Engine) enemyAttack(player *entity.Player, res *TickResult) {
	if e.enc.Frozen {
		e.enc.Frozen = false
		res.Messages = append(res.Messages,
			fmt.Sprintf("%s is frozen and skips turn!", e.enc.Name))
		return
	}

	res.EnemyActed = true
	taken := player.TakeDamage(e.enc.Attack)
	res.DamageTaken += taken
	res.Messages = append(res.Messages,
		fmt.Sprintf("%s attacks for %d damage!", e.enc.Name, e.enc.Attack))

	if player.Defeated() {
		e.state = StatePlayerLost
	}
}

// playerDamage computes the player's outgoing damage against the current
// target: derived total, times any target-specific slay bonus, times the
// additive suit boost percentage.
func (e *Engine) playerDamage(player *entity.Player, res *TickResult) int {
	stats := player.Stats()
	damage := stats.TotalDamage

	for _, def := range e.items.All() {
		if def.SlayBonus == e.enc.ID && player.Has(def.ID) {
			damage *= 3
			res.Messages = append(res.Messages,
				fmt.Sprintf("%s bonus vs %s! 3x damage!", def.Name, e.enc.Name))
			break
		}
	}

	return damage * (100 + stats.BoostPercent) / 100
}

// freezeChance sums the freeze percentages of owned items.
func (e *Engine) freezeChance(player *entity.Player) int {
	chance := 0
	for _, def := range e.items.All() {
		if def.FreezePercent > 0 && player.Has(def.ID) {
			chance += def.FreezePercent
		}
	}
	return chance
}

// endSpan records the encounter outcome.
func (e *Engine) endSpan(ctx context.Context, res *TickResult) {
	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("encounter.id", e.enc.ID),
		attribute.String("outcome", e.state.String()),
		attribute.Int("ticks", e.ticks),
		attribute.Int("points", res.Points),
	)
	span.End()
}
