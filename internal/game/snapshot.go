package game

import "github.com/samdwyer/zebes/internal/world"

// CellView is the per-cell state exposed to adapters. Face-down cells do not
// carry their latent content.
type CellView struct {
	Area      string
	Revealed  bool
	Kind      world.ContentKind
	ContentID string
}

// PlayerView summarizes the player for adapters.
type PlayerView struct {
	Energy             int
	MaxEnergy          int
	TotalDamage        int
	FirstStrikePercent int
	Inventory          map[string]int
}

// EncounterView summarizes the active encounter for adapters.
type EncounterView struct {
	ID     string
	Name   string
	Boss   bool
	HP     int
	MaxHP  int
	Frozen bool
}

// Snapshot is a read-only copy of the observable session state. Mutating it
// has no effect on the session.
type Snapshot struct {
	Cells     [world.GridSize][world.GridSize]CellView
	Player    PlayerView
	Encounter *EncounterView
	Score     int
	Ticks     uint64
	Terminal  TerminalState
	Seed      int64
	Log       []string
}

// Snapshot copies the observable state for external adapters. Unrevealed
// cells expose only their revealed flag and area, never their content.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Score:    s.score,
		Ticks:    s.ticks,
		Terminal: s.terminal,
		Seed:     s.seed,
		Log:      append([]string(nil), s.log...),
	}

	for row := 0; row < world.GridSize; row++ {
		for col := 0; col < world.GridSize; col++ {
			cell := &s.board.Cells[row][col]
			view := CellView{Area: cell.Area, Revealed: cell.Revealed}
			if cell.Revealed {
				view.Kind = cell.Content.Kind
				view.ContentID = cell.Content.ID
			}
			snap.Cells[row][col] = view
		}
	}

	stats := s.player.Stats()
	snap.Player = PlayerView{
		Energy:             s.player.Energy,
		MaxEnergy:          stats.MaxEnergy,
		TotalDamage:        stats.TotalDamage,
		FirstStrikePercent: stats.FirstStrikePercent,
		Inventory:          s.player.Inventory(),
	}

	if enc := s.fight.Encounter(); enc != nil {
		snap.Encounter = &EncounterView{
			ID:     enc.ID,
			Name:   enc.Name,
			Boss:   enc.Boss,
			HP:     enc.HP,
			MaxHP:  enc.MaxHP,
			Frozen: enc.Frozen,
		}
	}
	return snap
}
