package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/telemetry"
)

const (
	// Content distribution for cells not claimed by unique placement.
	consumableChance = 0.20
	enemyChance      = 0.20

	// Minimum Manhattan distance between two bosses, relaxed when an area
	// is too crowded to honor it.
	bossSpacing = 3

	placementAttempts = 50
)

// Board represents the 10x10 game grid.
type Board struct {
	Cells  [GridSize][GridSize]Cell
	tables *gamedata.Tables
	rng    *rand.Rand
}

// NewBoard creates an empty board. Generate must be called before use.
func NewBoard(tables *gamedata.Tables, rng *rand.Rand) *Board {
	return &Board{
		tables: tables,
		rng:    rng,
	}
}

// At returns the cell at the given position, or nil if out of bounds.
func (b *Board) At(pos Position) *Cell {
	if !pos.InBounds() {
		return nil
	}
	return &b.Cells[pos.Row][pos.Col]
}

// RevealedCount returns the number of face-up cells.
func (b *Board) RevealedCount() int {
	count := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if b.Cells[row][col].Revealed {
				count++
			}
		}
	}
	return count
}

// HasRevealedNeighbor returns true if any orthogonal neighbor of pos is face-up.
func (b *Board) HasRevealedNeighbor(pos Position) bool {
	for _, n := range pos.Orthogonals() {
		if cell := b.At(n); cell != nil && cell.Revealed {
			return true
		}
	}
	return false
}

// Generate lays out areas and assigns every cell's latent content.
// It fails only on malformed configuration, e.g. an area too small to hold
// its required bosses and unique items.
func (b *Board) Generate(ctx context.Context) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	areaMap := b.layoutAreas()

	// Initialize cells with their area tags; content is filled in below.
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			b.Cells[row][col] = Cell{
				Pos:  Position{Row: row, Col: col},
				Area: areaMap[row][col],
			}
		}
	}

	bossCount, err := b.placeBosses()
	if err != nil {
		return err
	}

	if err := b.placeUniqueItems(); err != nil {
		return err
	}

	b.fillRemainder()

	span.SetAttributes(
		attribute.Int("board.size", GridSize),
		attribute.Int("board.bosses", bossCount),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
	return nil
}

// layoutAreas flood-fills each area into a connected region and returns the
// per-cell area assignment. Rolled sizes are capped so every later area keeps
// enough cells for its bosses and unique items. Unclaimed cells default to the
// first area, which keeps the landing site reachable.
func (b *Board) layoutAreas() [GridSize][GridSize]string {
	var areaMap [GridSize][GridSize]string

	areas := b.tables.Areas.All()
	remaining := GridSize * GridSize
	for i := range areas {
		area := &areas[i]
		need := len(area.Bosses) + len(area.UniqueItems)

		reserved := 0
		for j := i + 1; j < len(areas); j++ {
			reserved += len(areas[j].Bosses) + len(areas[j].UniqueItems)
		}

		size := area.MinSize + b.rng.Intn(area.MaxSize-area.MinSize+1)
		if budget := remaining - reserved; size > budget {
			size = budget
		}
		if size < need {
			size = need
		}

		seed := b.findSeed(&areaMap, area.Placement)
		claimed := b.floodFill(&areaMap, seed, area.ID, size)
		if claimed < need {
			claimed += b.claimLoose(&areaMap, area.ID, need-claimed)
		}
		remaining -= claimed
	}

	fallback := b.tables.Areas.All()[0].ID
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if areaMap[row][col] == "" {
				areaMap[row][col] = fallback
			}
		}
	}
	return areaMap
}

// findSeed picks an unclaimed starting cell honoring the placement hint.
func (b *Board) findSeed(areaMap *[GridSize][GridSize]string, placement gamedata.Placement) Position {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		var pos Position
		switch placement {
		case gamedata.PlacementNorthwest:
			pos = Position{Row: b.rng.Intn(4), Col: b.rng.Intn(4)}
		case gamedata.PlacementCorner:
			corners := [4]Position{{0, 0}, {0, GridSize - 1}, {GridSize - 1, 0}, {GridSize - 1, GridSize - 1}}
			pos = corners[b.rng.Intn(4)]
		default:
			pos = Position{Row: 1 + b.rng.Intn(GridSize-2), Col: 1 + b.rng.Intn(GridSize-2)}
		}
		if areaMap[pos.Row][pos.Col] == "" {
			return pos
		}
	}

	// Fall back to the first unclaimed cell in scan order.
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if areaMap[row][col] == "" {
				return Position{Row: row, Col: col}
			}
		}
	}
	return Position{}
}

// floodFill claims up to maxCells connected cells for an area, expanding
// through cardinal neighbors before diagonal ones for better connectivity.
// Returns the number of cells claimed.
func (b *Board) floodFill(areaMap *[GridSize][GridSize]string, start Position, areaID string, maxCells int) int {
	if areaMap[start.Row][start.Col] != "" {
		return 0
	}

	queue := []Position{start}
	visited := make(map[Position]bool)
	placed := 0

	for len(queue) > 0 && placed < maxCells {
		pos := queue[0]
		queue = queue[1:]

		if visited[pos] || !pos.InBounds() {
			continue
		}
		if areaMap[pos.Row][pos.Col] != "" {
			continue
		}

		areaMap[pos.Row][pos.Col] = areaID
		visited[pos] = true
		placed++

		for _, n := range pos.Orthogonals() {
			if !visited[n] && n.InBounds() && areaMap[n.Row][n.Col] == "" {
				queue = append(queue, n)
			}
		}
		for _, n := range pos.Diagonals() {
			if !visited[n] && n.InBounds() && areaMap[n.Row][n.Col] == "" {
				queue = append(queue, n)
			}
		}
	}
	return placed
}

// claimLoose claims up to n unclaimed cells in scan order, used when an
// area's flood fill was boxed in before reaching its required capacity.
func (b *Board) claimLoose(areaMap *[GridSize][GridSize]string, areaID string, n int) int {
	claimed := 0
	for row := 0; row < GridSize && claimed < n; row++ {
		for col := 0; col < GridSize && claimed < n; col++ {
			if areaMap[row][col] == "" {
				areaMap[row][col] = areaID
				claimed++
			}
		}
	}
	return claimed
}

// placeBosses force-places each boss exactly once within its home area,
// preferring positions at least bossSpacing away from other bosses.
func (b *Board) placeBosses() (int, error) {
	var placed []Position

	for i := range b.tables.Areas.All() {
		area := &b.tables.Areas.All()[i]
		for _, bossID := range area.Bosses {
			candidates := b.bossCandidates(area.ID, placed, true)
			if len(candidates) == 0 {
				// Relax the spacing rule for cramped areas.
				candidates = b.bossCandidates(area.ID, placed, false)
			}
			if len(candidates) == 0 {
				return 0, fmt.Errorf("area %s has no room for boss %s", area.ID, bossID)
			}
			pos := candidates[b.rng.Intn(len(candidates))]
			b.Cells[pos.Row][pos.Col].Content = Content{Kind: ContentBoss, ID: bossID}
			placed = append(placed, pos)
		}
	}
	return len(placed), nil
}

// bossCandidates returns free cells of an area, optionally filtered by spacing.
func (b *Board) bossCandidates(areaID string, placed []Position, spaced bool) []Position {
	var candidates []Position
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := &b.Cells[row][col]
			if cell.Area != areaID || cell.Content.Kind != ContentEmpty || cell.Content.ID != "" {
				continue
			}
			if spaced && tooClose(cell.Pos, placed) {
				continue
			}
			candidates = append(candidates, cell.Pos)
		}
	}
	return candidates
}

func tooClose(pos Position, placed []Position) bool {
	for _, other := range placed {
		if manhattan(pos, other) < bossSpacing {
			return true
		}
	}
	return false
}

func manhattan(a, c Position) int {
	return abs(a.Row-c.Row) + abs(a.Col-c.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// placeUniqueItems shuffles each area's unique item list and assigns one item
// per free cell of the area. An area without enough free cells is a fatal
// configuration error.
func (b *Board) placeUniqueItems() error {
	for i := range b.tables.Areas.All() {
		area := &b.tables.Areas.All()[i]
		if len(area.UniqueItems) == 0 {
			continue
		}

		items := make([]string, len(area.UniqueItems))
		copy(items, area.UniqueItems)
		b.rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})

		free := b.freeCells(area.ID)
		if len(free) < len(items) {
			return fmt.Errorf("area %s has %d free cells for %d unique items",
				area.ID, len(free), len(items))
		}
		for i, itemID := range items {
			pos := free[i]
			b.Cells[pos.Row][pos.Col].Content = Content{Kind: ContentItem, ID: itemID}
		}
	}
	return nil
}

// freeCells returns content-free cells of an area in scan order.
func (b *Board) freeCells(areaID string) []Position {
	var free []Position
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := &b.Cells[row][col]
			if cell.Area == areaID && cell.Content.Kind == ContentEmpty && cell.Content.ID == "" {
				free = append(free, cell.Pos)
			}
		}
	}
	return free
}

// fillRemainder assigns consumables, enemies, or empty content to every cell
// not claimed by unique placement: 20% consumable, 20% enemy, 60% empty.
func (b *Board) fillRemainder() {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := &b.Cells[row][col]
			if cell.Content.Kind != ContentEmpty || cell.Content.ID != "" {
				continue
			}

			area := b.tables.Areas.GetByID(cell.Area)
			roll := b.rng.Float64()
			switch {
			case roll < consumableChance && len(area.Consumables) > 0:
				id := area.Consumables[b.rng.Intn(len(area.Consumables))]
				cell.Content = Content{Kind: ContentItem, ID: id}
			case roll < consumableChance+enemyChance && len(area.Enemies) > 0:
				id := area.Enemies[b.rng.Intn(len(area.Enemies))]
				cell.Content = Content{Kind: ContentEnemy, ID: id}
			default:
				cell.Content = Content{Kind: ContentEmpty}
			}
		}
	}
}
