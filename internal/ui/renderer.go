package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/zebes/internal/entity"
	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/world"
)

// Grid layout constants. Each board cell occupies a CellWidth x CellHeight
// block of terminal cells starting at the grid origin.
const (
	GridOriginX = 2
	GridOriginY = 2
	CellWidth   = 4
	CellHeight  = 2

	panelX   = GridOriginX + world.GridSize*CellWidth + 4
	barWidth = 20
)

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	Board     *world.Board
	Player    *entity.Player
	Encounter *entity.Encounter
	Cursor    world.Position
	Score     int
	Bosses    int
	Seed      int64
	Status    string
	Log       []string
}

// CellAt maps terminal coordinates to a board position, for mouse input.
func CellAt(x, y int) (world.Position, bool) {
	col := (x - GridOriginX) / CellWidth
	row := (y - GridOriginY) / CellHeight
	pos := world.Position{Row: row, Col: col}
	if x < GridOriginX || y < GridOriginY || !pos.InBounds() {
		return world.Position{}, false
	}
	return pos, true
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	tables *gamedata.Tables
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, tables *gamedata.Tables) *Renderer {
	return &Renderer{screen: screen, tables: tables}
}

// Render draws a full frame and flushes it to the terminal.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	title := fmt.Sprintf("Z E B E S   seed %d", f.Seed)
	r.drawText(GridOriginX, 0, tcell.StyleDefault.Bold(true), title)

	r.drawGrid(f)
	r.drawPanel(f)
	r.drawLog(f)

	_, h := r.screen.Size()
	help := "arrows move   enter/space reveal   r restart   q quit"
	r.drawText(GridOriginX, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), help)

	r.screen.Show()
}

// drawGrid draws the 10x10 board with the cursor highlight.
func (r *Renderer) drawGrid(f Frame) {
	for row := 0; row < world.GridSize; row++ {
		for col := 0; col < world.GridSize; col++ {
			pos := world.Position{Row: row, Col: col}
			cell := f.Board.At(pos)
			glyph, style := r.cellAppearance(cell)
			if pos == f.Cursor {
				style = style.Reverse(true)
			}

			x := GridOriginX + col*CellWidth
			y := GridOriginY + row*CellHeight
			r.screen.SetContent(x, y, '[', style)
			r.screen.SetContent(x+1, y, glyph, style)
			r.screen.SetContent(x+2, y, ']', style)
		}
	}
}

// cellAppearance picks the glyph and style for one board cell. Face-down
// cells keep their area color so hazard zones read at a glance.
func (r *Renderer) cellAppearance(cell *world.Cell) (rune, tcell.Style) {
	area := r.tables.Areas.GetByID(cell.Area)
	areaStyle := tcell.StyleDefault.Foreground(area.TCellColor())

	if !cell.Revealed {
		return '▒', areaStyle
	}

	switch cell.Content.Kind {
	case world.ContentItem:
		def := r.tables.Items.GetByID(cell.Content.ID)
		return def.GlyphRune(), areaStyle.Bold(true)
	case world.ContentEnemy:
		def := r.tables.Enemies.GetByID(cell.Content.ID)
		return def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor())
	case world.ContentBoss:
		def := r.tables.Bosses.GetByID(cell.Content.ID)
		return def.GlyphRune(), tcell.StyleDefault.Foreground(def.TCellColor()).Bold(true)
	default:
		return '·', areaStyle
	}
}

// drawPanel draws player stats, inventory, and the combat readout.
func (r *Renderer) drawPanel(f Frame) {
	stats := f.Player.Stats()
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	value := tcell.StyleDefault

	r.drawText(panelX, 2, label, "ENERGY")
	r.drawText(panelX+8, 2, value, energyReadout(f.Player.Energy, stats.MaxEnergy))
	r.drawBar(panelX, 3, f.Player.Energy, stats.MaxEnergy, tcell.ColorGreen)

	r.drawText(panelX, 5, label, "SCORE")
	r.drawText(panelX+8, 5, value, fmt.Sprintf("%d", f.Score))
	r.drawText(panelX, 6, label, "DAMAGE")
	r.drawText(panelX+8, 6, value, fmt.Sprintf("%d", stats.TotalDamage))
	r.drawText(panelX, 7, label, "BOSSES")
	r.drawText(panelX+8, 7, value, fmt.Sprintf("%d/%d", f.Bosses, r.tables.Areas.HomeBossCount()))

	r.drawText(panelX, 9, label, "INVENTORY")
	r.drawText(panelX, 10, value, r.inventoryLine(f.Player))

	if f.Encounter != nil {
		r.drawCombat(f)
	}

	if f.Status != "" {
		r.drawText(panelX, 16, tcell.StyleDefault.Bold(true), f.Status)
	}
}

// drawCombat draws the active encounter's name and health bar.
func (r *Renderer) drawCombat(f Frame) {
	enc := f.Encounter
	name := enc.Name
	if enc.Frozen {
		name += " (frozen)"
	}
	r.drawText(panelX, 12, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true), name)
	r.drawText(panelX, 13, tcell.StyleDefault,
		fmt.Sprintf("%d/%d", enc.HP, enc.MaxHP))
	r.drawBar(panelX, 14, enc.HP, enc.MaxHP, tcell.ColorRed)
}

// energyReadout formats energy as tank squares plus the sub-tank remainder,
// one square per 100 max energy. A square is filled while the current energy
// still covers it.
func energyReadout(energy, maxEnergy int) string {
	line := ""
	for i := 0; i < maxEnergy/100; i++ {
		if energy >= (i+1)*100 {
			line += "■"
		} else {
			line += "□"
		}
	}
	if line != "" {
		line += " "
	}
	return line + fmt.Sprintf("%d", energy%100)
}

// inventoryLine lists owned item glyphs in definition order, with counts for
// stackables.
func (r *Renderer) inventoryLine(player *entity.Player) string {
	line := ""
	for _, def := range r.tables.Items.All() {
		count := player.Count(def.ID)
		if count == 0 {
			continue
		}
		if def.Stackable && count > 1 {
			line += fmt.Sprintf("%s%d ", def.Glyph, count)
		} else {
			line += def.Glyph + " "
		}
	}
	if line == "" {
		return "(empty)"
	}
	return line
}

// drawLog draws as many recent log lines as fit below the panel readout.
func (r *Renderer) drawLog(f Frame) {
	_, h := r.screen.Size()
	top := 18
	rows := h - 1 - top
	if rows <= 0 {
		return
	}

	lines := f.Log
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i, line := range lines {
		r.drawText(panelX, top+i, style, line)
	}
}

// drawBar draws a fixed-width meter filled proportionally to value/max.
func (r *Renderer) drawBar(x, y, value, max int, color tcell.Color) {
	filled := 0
	if max > 0 {
		filled = value * barWidth / max
	}
	on := tcell.StyleDefault.Foreground(color)
	off := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for i := 0; i < barWidth; i++ {
		style := off
		if i < filled {
			style = on
		}
		r.screen.SetContent(x+i, y, '█', style)
	}
}

// drawText writes a string starting at the given position.
func (r *Renderer) drawText(x, y int, style tcell.Style, text string) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
