package gamedata

import "github.com/gdamore/tcell/v2"

// DefeatEffect describes a one-time side effect applied when a boss is beaten.
type DefeatEffect struct {
	Target      string `json:"target"`      // Boss ID affected (e.g., "ridley")
	HPReduction int    `json:"hpReduction"` // Amount removed from the target's effective max HP
}

// BossDef defines a boss loaded from JSON.
type BossDef struct {
	ID       string        `json:"id"`                 // Unique identifier (e.g., "kraid")
	Name     string        `json:"name"`               // Display name (e.g., "Kraid")
	Glyph    string        `json:"glyph"`              // Single character for rendering
	Color    string        `json:"color"`              // Hex color code
	HP       int           `json:"hp"`                 // Base hit points
	Attack   int           `json:"attack"`             // Damage dealt to the player per action
	Points   int           `json:"points"`             // Score awarded on defeat
	Final    bool          `json:"final,omitempty"`    // Defeating this boss wins the game
	OnDefeat *DefeatEffect `json:"onDefeat,omitempty"` // Optional side effect (Ceres Station)
}

// GlyphRune returns the glyph as a rune for rendering.
func (b *BossDef) GlyphRune() rune {
	if len(b.Glyph) == 0 {
		return '?'
	}
	return rune(b.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (b *BossDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(b.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// BossesFile represents the structure of bosses.json.
type BossesFile struct {
	Bosses []BossDef `json:"bosses"`
}

// LoadBosses loads boss definitions from the embedded bosses.json file.
func LoadBosses() ([]BossDef, error) {
	file, err := Load[BossesFile]("bosses.json")
	if err != nil {
		return nil, err
	}
	return file.Bosses, nil
}
