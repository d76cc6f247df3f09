package reveal

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/zebes/internal/entity"
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/world"
)

// testSetup builds an all-empty Crateria board that tests carve up by hand.
func testSetup(t *testing.T) (*Engine, *world.Board, *entity.Player) {
	t.Helper()
	tables, err := gamedata.LoadTables()
	if err != nil {
		t.Fatalf("Failed to load tables: %v", err)
	}

	board := world.NewBoard(tables, rand.New(rand.NewSource(1)))
	for row := 0; row < world.GridSize; row++ {
		for col := 0; col < world.GridSize; col++ {
			board.Cells[row][col] = world.Cell{
				Pos:  world.Position{Row: row, Col: col},
				Area: "crateria",
			}
		}
	}

	return NewEngine(tables), board, entity.NewPlayer(tables.Items)
}

func setContent(board *world.Board, row, col int, kind world.ContentKind, id string) {
	board.Cells[row][col].Content = world.Content{Kind: kind, ID: id}
}

func setArea(board *world.Board, row, col int, area string) {
	board.Cells[row][col].Area = area
}

func TestFirstRevealAnywhere(t *testing.T) {
	engine, board, player := testSetup(t)

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 7, Col: 7}, false, nil)
	if !out.Accepted {
		t.Fatalf("First reveal should be legal anywhere, got reject %s", out.Reason)
	}
	if !board.Cells[7][7].Revealed {
		t.Error("Cell should be face-up after reveal")
	}
}

func TestAdjacencyRequired(t *testing.T) {
	engine, board, player := testSetup(t)
	ctx := context.Background()

	engine.Reveal(ctx, board, player, world.Position{Row: 5, Col: 5}, false, nil)

	// Non-adjacent cell is rejected without mutation
	out := engine.Reveal(ctx, board, player, world.Position{Row: 0, Col: 0}, false, nil)
	if out.Accepted || out.Reason != RejectNotAdjacent {
		t.Errorf("Expected RejectNotAdjacent, got accepted=%v reason=%s", out.Accepted, out.Reason)
	}
	if board.Cells[0][0].Revealed {
		t.Error("Rejected reveal must not flip the cell")
	}

	// Diagonal neighbor does not count as adjacent
	out = engine.Reveal(ctx, board, player, world.Position{Row: 6, Col: 6}, false, nil)
	if out.Accepted {
		t.Error("Diagonal neighbor should not satisfy adjacency")
	}

	// Orthogonal neighbor is legal
	out = engine.Reveal(ctx, board, player, world.Position{Row: 5, Col: 6}, false, nil)
	if !out.Accepted {
		t.Errorf("Orthogonal neighbor should be legal, got reject %s", out.Reason)
	}
}

func TestRevealIsMonotonic(t *testing.T) {
	engine, board, player := testSetup(t)
	ctx := context.Background()
	pos := world.Position{Row: 2, Col: 2}

	if out := engine.Reveal(ctx, board, player, pos, false, nil); !out.Accepted {
		t.Fatalf("First reveal rejected: %s", out.Reason)
	}
	out := engine.Reveal(ctx, board, player, pos, false, nil)
	if out.Accepted || out.Reason != RejectAlreadyRevealed {
		t.Errorf("Expected RejectAlreadyRevealed, got accepted=%v reason=%s", out.Accepted, out.Reason)
	}
}

func TestEncounterActiveBlocksReveals(t *testing.T) {
	engine, board, player := testSetup(t)

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 1, Col: 1}, true, nil)
	if out.Accepted || out.Reason != RejectEncounterActive {
		t.Errorf("Expected RejectEncounterActive, got accepted=%v reason=%s", out.Accepted, out.Reason)
	}
}

func TestHeatDamageWithoutShield(t *testing.T) {
	engine, board, player := testSetup(t)
	setArea(board, 0, 0, "norfair")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 0, Col: 0}, false, nil)
	if !out.Accepted {
		t.Fatalf("Reveal rejected: %s", out.Reason)
	}
	if out.DamageTaken != 25 {
		t.Errorf("DamageTaken = %d, want 25", out.DamageTaken)
	}
	if player.Energy != 74 {
		t.Errorf("Energy = %d, want 74 (99-25)", player.Energy)
	}
}

func TestHeatDamagePerCell(t *testing.T) {
	engine, board, player := testSetup(t)
	setArea(board, 0, 0, "norfair")
	setArea(board, 0, 1, "norfair")
	ctx := context.Background()

	engine.Reveal(ctx, board, player, world.Position{Row: 0, Col: 0}, false, nil)
	engine.Reveal(ctx, board, player, world.Position{Row: 0, Col: 1}, false, nil)

	if player.Energy != 49 {
		t.Errorf("Energy = %d, want 49 after two hot cells", player.Energy)
	}
}

func TestVariaShieldsHeat(t *testing.T) {
	engine, board, player := testSetup(t)
	tables := gamedata.MustLoadTables()
	player.ApplyItem(tables.Items.GetByID("varia"))
	setArea(board, 0, 0, "norfair")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 0, Col: 0}, false, nil)
	if out.DamageTaken != 0 {
		t.Errorf("DamageTaken = %d, want 0 with Varia Suit", out.DamageTaken)
	}
	if player.Energy != 99 {
		t.Errorf("Energy = %d, want 99", player.Energy)
	}
}

func TestBlockedAreaRejectsEntirely(t *testing.T) {
	engine, board, player := testSetup(t)
	setArea(board, 3, 3, "maridia")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 3, Col: 3}, false, nil)
	if out.Accepted || out.Reason != RejectBlockedArea {
		t.Errorf("Expected RejectBlockedArea, got accepted=%v reason=%s", out.Accepted, out.Reason)
	}
	if board.Cells[3][3].Revealed {
		t.Error("Blocked reveal must not flip the cell")
	}
}

func TestGravityUnlocksBlockedArea(t *testing.T) {
	engine, board, player := testSetup(t)
	tables := gamedata.MustLoadTables()
	player.ApplyItem(tables.Items.GetByID("gravity"))
	setArea(board, 3, 3, "maridia")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 3, Col: 3}, false, nil)
	if !out.Accepted {
		t.Errorf("Gravity Suit should unlock the area, got reject %s", out.Reason)
	}
}

func TestItemPickupAwardsPoints(t *testing.T) {
	engine, board, player := testSetup(t)
	setContent(board, 4, 4, world.ContentItem, "varia")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 4, Col: 4}, false, nil)
	if out.Points != 300 {
		t.Errorf("Points = %d, want 300", out.Points)
	}
	if !player.Has("varia") {
		t.Error("Varia Suit should be in the inventory")
	}
}

func TestEnemyRevealStartsEncounter(t *testing.T) {
	engine, board, player := testSetup(t)
	setContent(board, 4, 4, world.ContentEnemy, "geemer")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 4, Col: 4}, false, nil)
	if out.Encounter == nil {
		t.Fatal("Expected an encounter")
	}
	if out.Encounter.ID != "geemer" || out.Encounter.HP != 50 || out.Encounter.Attack != 3 {
		t.Errorf("Encounter = %+v, want geemer 50 HP 3 attack", out.Encounter)
	}
	if out.Encounter.Boss {
		t.Error("Geemer is not a boss")
	}
}

func TestBossRevealHonorsReductions(t *testing.T) {
	engine, board, player := testSetup(t)
	setContent(board, 4, 4, world.ContentBoss, "ridley")

	reductions := map[string]int{"ridley": 1000}
	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 4, Col: 4}, false, reductions)
	if out.Encounter == nil {
		t.Fatal("Expected an encounter")
	}
	if out.Encounter.HP != 5000 {
		t.Errorf("Encounter HP = %d, want 5000 (6000-1000)", out.Encounter.HP)
	}
}

func TestChainRevealAllDiagonals(t *testing.T) {
	engine, board, player := testSetup(t)
	tables := gamedata.MustLoadTables()
	player.ApplyItem(tables.Items.GetByID("xray"))

	// Item at center with items on all four diagonals
	setContent(board, 5, 5, world.ContentItem, "missiles")
	setContent(board, 4, 4, world.ContentItem, "missiles")
	setContent(board, 4, 6, world.ContentItem, "supers")
	setContent(board, 6, 4, world.ContentItem, "power_bombs")
	setContent(board, 6, 6, world.ContentItem, "missiles")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 5, Col: 5}, false, nil)
	if len(out.Revealed) != 5 {
		t.Fatalf("Revealed %d cells, want 5", len(out.Revealed))
	}
	if len(out.Collected) != 5 {
		t.Errorf("Collected %d items, want 5", len(out.Collected))
	}
	// 3 missiles + supers + power bombs: 3*10 + 20 + 30
	if out.Points != 80 {
		t.Errorf("Points = %d, want 80", out.Points)
	}
	if player.Count("missiles") != 3 {
		t.Errorf("missiles count = %d, want 3", player.Count("missiles"))
	}
}

func TestChainRevealRecursesOutward(t *testing.T) {
	engine, board, player := testSetup(t)
	tables := gamedata.MustLoadTables()
	player.ApplyItem(tables.Items.GetByID("xray"))

	// A diagonal line of items: each flip exposes the next diagonal
	setContent(board, 2, 2, world.ContentItem, "missiles")
	setContent(board, 3, 3, world.ContentItem, "missiles")
	setContent(board, 4, 4, world.ContentItem, "missiles")
	// The branch past an enemy stops
	setContent(board, 5, 5, world.ContentEnemy, "geemer")
	setContent(board, 6, 6, world.ContentItem, "missiles")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 2, Col: 2}, false, nil)
	if len(out.Revealed) != 3 {
		t.Fatalf("Revealed %d cells, want 3 (chain stops at the enemy)", len(out.Revealed))
	}
	if board.Cells[5][5].Revealed {
		t.Error("Enemy cell must not be auto-revealed")
	}
	if board.Cells[6][6].Revealed {
		t.Error("Chain must not jump past a non-item cell")
	}
}

func TestChainRevealWithoutScope(t *testing.T) {
	engine, board, player := testSetup(t)

	setContent(board, 5, 5, world.ContentItem, "missiles")
	setContent(board, 4, 4, world.ContentItem, "missiles")

	out := engine.Reveal(context.Background(), board, player, world.Position{Row: 5, Col: 5}, false, nil)
	if len(out.Revealed) != 1 {
		t.Errorf("Revealed %d cells, want 1 without the X-ray Scope", len(out.Revealed))
	}
}
