package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/zebes/internal/gamedata"
	"github.com/samdwyer/zebes/internal/telemetry"
	"github.com/samdwyer/zebes/internal/ui"
	"github.com/samdwyer/zebes/internal/world"
)

// tickRate drives the logical clock at 60 frames per second.
const tickRate = time.Second / 60

// Game wires the terminal, the renderer, and a session together.
type Game struct {
	cfg      Config
	tables   *gamedata.Tables
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session
	cursor   world.Position
	running  bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	tables, err := gamedata.LoadTables()
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		tables:   tables,
		screen:   screen,
		renderer: ui.NewRenderer(screen, tables),
		running:  true,
	}, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	// Initialize game (traced)
	ctx, initSpan := tracer.Start(ctx, "game.init")

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := NewSession(ctx, g.tables, Config{Seed: seed})
	if err != nil {
		initSpan.End()
		g.screen.Close()
		return err
	}
	g.session = session
	initSpan.SetAttributes(attribute.Int64("seed", seed))
	initSpan.End()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go g.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	// Main game loop
	for g.running {
		select {
		case <-ticker.C:
			g.session.Tick(ctx)
			g.draw()
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-ctx.Done():
			g.running = false
		}
	}

	// Cleanup
	close(quit)
	g.screen.Close()
	return nil
}

// draw renders the current session state.
func (g *Game) draw() {
	g.renderer.Render(ui.Frame{
		Board:     g.session.Board(),
		Player:    g.session.Player(),
		Encounter: g.session.Encounter(),
		Cursor:    g.cursor,
		Score:     g.session.Score(),
		Bosses:    g.session.BossesDefeated(),
		Seed:      g.session.Seed(),
		Status:    g.statusLine(),
		Log:       g.session.Log(),
	})
}

// statusLine summarizes the session phase for the panel.
func (g *Game) statusLine() string {
	switch g.session.Terminal() {
	case Won:
		return "MISSION COMPLETE"
	case Lost:
		return "GAME OVER  (r to restart)"
	}
	if g.session.InCombat() {
		return "ENCOUNTER!"
	}
	return ""
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)

	case tcell.KeyEnter:
		g.session.RequestReveal(g.cursor)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case ' ':
			g.session.RequestReveal(g.cursor)
		case 'r', 'R':
			g.restart(ctx)
		}
	}
}

// handleMouseEvent reveals the clicked cell.
func (g *Game) handleMouseEvent(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	if pos, ok := ui.CellAt(x, y); ok {
		g.cursor = pos
		g.session.RequestReveal(pos)
	}
}

// moveCursor shifts the cursor, clamped to the board.
func (g *Game) moveCursor(dr, dc int) {
	next := world.Position{Row: g.cursor.Row + dr, Col: g.cursor.Col + dc}
	if next.InBounds() {
		g.cursor = next
	}
}

// restart abandons the run and generates a fresh board.
func (g *Game) restart(ctx context.Context) {
	if err := g.session.Reset(ctx, time.Now().UnixNano()); err == nil {
		g.cursor = world.Position{}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
