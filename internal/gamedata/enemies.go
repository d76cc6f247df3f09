package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines a minor enemy type loaded from JSON.
type EnemyDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "geemer")
	Name   string `json:"name"`   // Display name (e.g., "Geemer")
	Glyph  string `json:"glyph"`  // Single character for rendering
	Color  string `json:"color"`  // Hex color code
	HP     int    `json:"hp"`     // Base hit points
	Attack int    `json:"attack"` // Damage dealt to the player per action
	Points int    `json:"points"` // Score awarded on defeat
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
