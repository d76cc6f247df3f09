package gamedata

import "github.com/gdamore/tcell/v2"

// Restriction represents a hazard or entry rule attached to an area.
type Restriction string

const (
	// RestrictionNone - area has no special rule.
	RestrictionNone Restriction = ""
	// RestrictionHeat - revealing a cell costs energy unless the shielding suit is owned.
	RestrictionHeat Restriction = "heat"
	// RestrictionBlocked - cells cannot be revealed at all unless the unlocking suit is owned.
	RestrictionBlocked Restriction = "blocked"
)

// Placement hints where an area's flood fill is seeded on the grid.
type Placement string

const (
	// PlacementAny - seed anywhere away from the border.
	PlacementAny Placement = "any"
	// PlacementNorthwest - seed in the top-left quadrant (the landing site).
	PlacementNorthwest Placement = "northwest"
	// PlacementCorner - seed in one of the four grid corners.
	PlacementCorner Placement = "corner"
)

// AreaDef defines a map area loaded from JSON.
type AreaDef struct {
	ID          string      `json:"id"`    // Unique identifier (e.g., "norfair")
	Name        string      `json:"name"`  // Display name (e.g., "Norfair")
	Color       string      `json:"color"` // Hex color for face-down cells
	Restriction Restriction `json:"restriction,omitempty"`
	Placement   Placement   `json:"placement,omitempty"`
	MinSize     int         `json:"minSize"` // Minimum cells claimed by the flood fill
	MaxSize     int         `json:"maxSize"` // Maximum cells claimed by the flood fill
	Bosses      []string    `json:"bosses"`  // Boss IDs force-placed in this area
	UniqueItems []string    `json:"uniqueItems"`
	Consumables []string    `json:"consumables"`
	Enemies     []string    `json:"enemies"` // Enemy roster for random fill
}

// TCellColor returns the area color as a tcell.Color.
func (a *AreaDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorGray // fallback
	}
	return color
}

// AreasFile represents the structure of areas.json.
type AreasFile struct {
	Areas []AreaDef `json:"areas"`
}

// LoadAreas loads area definitions from the embedded areas.json file.
func LoadAreas() ([]AreaDef, error) {
	file, err := Load[AreasFile]("areas.json")
	if err != nil {
		return nil, err
	}
	return file.Areas, nil
}
