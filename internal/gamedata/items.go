package gamedata

// =============================================================================
// ITEM SYSTEM DESIGN
// =============================================================================
//
// Items come in two shapes:
//
// 1. Stackable consumables (missiles, supers, power bombs, energy tanks) -
//    collecting one increments a count, and per-unit bonuses scale with the
//    count. Energy tanks raise max energy by 100 each and refill on pickup.
//
// 2. Unique equipment (suits, beams, movement gear) - collected at most once;
//    a second reveal of the same kind is a no-op. Each contributes flat damage,
//    first-strike percentage, or a percentage boost on outgoing damage.
//
// Special fields:
//   freezePercent  - chance per player attack to freeze the target (Ice Beam)
//   chainReveal    - diagonal auto-reveal of item cells on pickup (X-ray Scope)
//   slayBonus      - target boss ID whose damage is tripled (Grapple vs Draygon)
//   shieldsHeat    - negates heat-area reveal damage (Varia Suit)
//   unlocksBlocked - allows entering blocked areas (Gravity Suit)
//
// Derived player stats are always recomputed from the full inventory; nothing
// here is cached incrementally.

// ItemDef defines a collectible item loaded from JSON.
type ItemDef struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Glyph              string `json:"glyph"`
	Stackable          bool   `json:"stackable,omitempty"`
	Points             int    `json:"points"`                       // Score awarded on pickup
	DamageBonus        int    `json:"damageBonus,omitempty"`        // Flat (per unit if stackable)
	FirstStrikePercent int    `json:"firstStrikePercent,omitempty"` // Initiative contribution
	BoostPercent       int    `json:"boostPercent,omitempty"`       // Outgoing damage boost (suits)
	MaxEnergyBonus     int    `json:"maxEnergyBonus,omitempty"`     // Energy tanks
	FreezePercent      int    `json:"freezePercent,omitempty"`
	ChainReveal        bool   `json:"chainReveal,omitempty"`
	SlayBonus          string `json:"slayBonus,omitempty"` // Boss ID dealt triple damage
	ShieldsHeat        bool   `json:"shieldsHeat,omitempty"`
	UnlocksBlocked     bool   `json:"unlocksBlocked,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	if len(i.Glyph) == 0 {
		return '?'
	}
	return rune(i.Glyph[0])
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
