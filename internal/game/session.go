package game

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/zebes/internal/combat"
	"github.com/samdwyer/zebes/internal/entity"
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/reveal"
	"github.com/samdwyer/zebes/internal/telemetry"
	"github.com/samdwyer/zebes/internal/world"
)

// maxLogLines caps the message log kept for the screen.
const maxLogLines = 28

// Session owns one full run: the board, the player, both engines, the score,
// and the logical clock. Input arrives as reveal requests; Tick advances
// everything else.
type Session struct {
	tables *gamedata.Tables
	seed   int64

	board  *world.Board
	player *entity.Player
	reveal *reveal.Engine
	fight  *combat.Engine

	score    int
	ticks    uint64
	terminal TerminalState

	// bossReductions accumulates max-HP penalties earned by defeat effects
	// (Ceres Station weakening Ridley). They apply when the target boss is
	// revealed, not retroactively.
	bossReductions map[string]int
	defeated       map[string]bool

	pending *world.Position
	log     []string
}

// NewSession creates a session and generates its board from cfg.Seed.
func NewSession(ctx context.Context, tables *gamedata.Tables, cfg Config) (*Session, error) {
	s := &Session{tables: tables}
	if err := s.Reset(ctx, cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards the current run and generates a fresh board from seed.
// Nothing carries over, including boss weakening from the previous run.
func (s *Session) Reset(ctx context.Context, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	board := world.NewBoard(s.tables, rng)
	if err := board.Generate(ctx); err != nil {
		return err
	}

	s.seed = seed
	s.board = board
	s.player = entity.NewPlayer(s.tables.Items)
	s.reveal = reveal.NewEngine(s.tables)
	s.fight = combat.NewEngine(s.tables.Items, rng)
	s.score = 0
	s.ticks = 0
	s.terminal = Ongoing
	s.bossReductions = make(map[string]int)
	s.defeated = make(map[string]bool)
	s.pending = nil
	s.log = nil
	s.say("Mission start. Explore planet Zebes!")
	return nil
}

// RequestReveal queues a reveal for the next tick, replacing any earlier
// unresolved request. A request made during an encounter stays queued until
// the fight resolves.
func (s *Session) RequestReveal(pos world.Position) {
	if s.terminal != Ongoing {
		return
	}
	p := pos
	s.pending = &p
}

// Tick advances the session by one logical frame. A queued reveal request is
// resolved first; an active encounter then receives its combat tick.
func (s *Session) Tick(ctx context.Context) {
	if s.terminal != Ongoing {
		return
	}
	s.ticks++

	if s.pending != nil && !s.fight.Active() {
		pos := *s.pending
		s.pending = nil
		s.resolveReveal(ctx, pos)
	}

	if s.fight.Active() {
		s.resolveCombat(ctx)
	}
}

// resolveReveal runs one reveal request through the reveal engine and folds
// the outcome into the session.
func (s *Session) resolveReveal(ctx context.Context, pos world.Position) {
	out := s.reveal.Reveal(ctx, s.board, s.player, pos, s.fight.Active(), s.bossReductions)
	for _, msg := range out.Messages {
		s.say(msg)
	}
	if !out.Accepted {
		return
	}

	s.score += out.Points
	if out.Encounter != nil {
		s.fight.Begin(ctx, out.Encounter)
	}

	// Heat damage can finish the player without a fight
	if s.player.Defeated() {
		s.finish(ctx, Lost)
	}
}

// resolveCombat runs one combat tick and folds the result into the session.
func (s *Session) resolveCombat(ctx context.Context) {
	res := s.fight.Tick(ctx, s.player)
	for _, msg := range res.Messages {
		s.say(msg)
	}
	s.score += res.Points

	switch res.State {
	case combat.StatePlayerWon:
		s.handleVictory(ctx, res.Defeated)
	case combat.StatePlayerLost:
		s.finish(ctx, Lost)
	}
}

// handleVictory applies a defeated encounter's side effects and clears the
// combat engine. Defeating the final boss ends the run.
func (s *Session) handleVictory(ctx context.Context, enc *entity.Encounter) {
	if enc.Boss {
		s.defeated[enc.ID] = true
		if enc.OnDefeat != nil {
			s.bossReductions[enc.OnDefeat.Target] += enc.OnDefeat.HPReduction
			if target := s.tables.Bosses.GetByID(enc.OnDefeat.Target); target != nil {
				s.say(fmt.Sprintf("%s has been weakened by %d HP!",
					target.Name, enc.OnDefeat.HPReduction))
			}
		}
	}

	// The cell is spent once its occupant falls
	if cell := s.board.At(enc.Pos); cell != nil {
		cell.Content = world.Content{Kind: world.ContentEmpty}
	}

	final := enc.Final
	s.fight.Clear()
	if final {
		s.finish(ctx, Won)
	}
}

// finish moves the session to a terminal state and records the outcome.
func (s *Session) finish(ctx context.Context, state TerminalState) {
	s.terminal = state

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.end")
	span.SetAttributes(
		attribute.String("outcome", state.String()),
		attribute.Int("score", s.score),
		attribute.Int64("ticks", int64(s.ticks)),
		attribute.Int("cells_revealed", s.board.RevealedCount()),
		attribute.Int("bosses_defeated", len(s.defeated)),
	)
	span.End()

	switch state {
	case Won:
		s.say("Mother Brain destroyed. Mission complete!")
	case Lost:
		s.say("Samus is down. Game over.")
	}
}

// say appends a message to the log, dropping the oldest past the cap.
func (s *Session) say(msg string) {
	s.log = append(s.log, msg)
	if len(s.log) > maxLogLines {
		s.log = s.log[len(s.log)-maxLogLines:]
	}
}

// Board returns the live board.
func (s *Session) Board() *world.Board {
	return s.board
}

// Player returns the live player.
func (s *Session) Player() *entity.Player {
	return s.player
}

// Encounter returns the current encounter, or nil outside combat.
func (s *Session) Encounter() *entity.Encounter {
	return s.fight.Encounter()
}

// InCombat returns true while an encounter is being fought.
func (s *Session) InCombat() bool {
	return s.fight.Active()
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// Ticks returns the number of logical frames elapsed.
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Terminal returns the run outcome, Ongoing while in play.
func (s *Session) Terminal() TerminalState {
	return s.terminal
}

// Seed returns the seed the current board was generated from.
func (s *Session) Seed() int64 {
	return s.seed
}

// BossesDefeated returns how many distinct bosses have fallen this run.
func (s *Session) BossesDefeated() int {
	return len(s.defeated)
}

// Log returns the recent message log, oldest first.
func (s *Session) Log() []string {
	return s.log
}
