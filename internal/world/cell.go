// Package world provides board generation and grid management.
package world

// GridSize is the fixed width and height of the board.
const GridSize = 10

// Position identifies a cell on the grid.
type Position struct {
	Row, Col int
}

// InBounds returns true if the position lies on the grid.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < GridSize && p.Col >= 0 && p.Col < GridSize
}

// Orthogonals returns the four orthogonal neighbors, including out-of-bounds ones.
func (p Position) Orthogonals() [4]Position {
	return [4]Position{
		{p.Row - 1, p.Col},
		{p.Row + 1, p.Col},
		{p.Row, p.Col - 1},
		{p.Row, p.Col + 1},
	}
}

// Diagonals returns the four diagonal neighbors, including out-of-bounds ones.
func (p Position) Diagonals() [4]Position {
	return [4]Position{
		{p.Row - 1, p.Col - 1},
		{p.Row - 1, p.Col + 1},
		{p.Row + 1, p.Col - 1},
		{p.Row + 1, p.Col + 1},
	}
}

// ContentKind represents what a cell hides.
type ContentKind int

const (
	// ContentEmpty - nothing happens when revealed.
	ContentEmpty ContentKind = iota
	// ContentItem - an item pickup.
	ContentItem
	// ContentEnemy - a minor enemy encounter.
	ContentEnemy
	// ContentBoss - a boss encounter.
	ContentBoss
)

// String returns a human-readable content kind name.
func (k ContentKind) String() string {
	switch k {
	case ContentEmpty:
		return "empty"
	case ContentItem:
		return "item"
	case ContentEnemy:
		return "enemy"
	case ContentBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Content is the latent payload of a cell, assigned once at generation.
// ID references an item, enemy, or boss definition; empty cells have no ID.
type Content struct {
	Kind ContentKind
	ID   string
}

// Cell is a single face-down or face-up grid cell.
type Cell struct {
	Pos      Position
	Area     string // Area definition ID
	Content  Content
	Revealed bool // One-way false -> true
}

// Hostile returns true if the cell hides an enemy or boss.
func (c *Cell) Hostile() bool {
	return c.Content.Kind == ContentEnemy || c.Content.Kind == ContentBoss
}
