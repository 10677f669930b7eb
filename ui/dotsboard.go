// Package ui specifies custom controls for tview to play dots and boxes in
// the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dotsboxes-local/config"
	"dotsboxes-local/engine"
	"dotsboxes-local/types"
)

// Board geometry: dot (r, c) sits at (4c, 2r) relative to the first dot, a
// horizontal line fills the three cells to its right and a vertical line the
// cell below it.
const (
	cellW       = 4
	cellH       = 2
	leftMargin  = 4
	topMargin   = 1
	styleBoard  = 0
	styleDot    = 1
	styleEmpty  = 2
	styleCurFG  = 3
	styleCurBG  = 4
	styleLastBG = 5
)

type DotsBoardUI struct {
	Box       *tview.Box
	State     types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	sel       types.Line
	hasSel    bool
	eng       engine.GameEngine
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	sound     bool
	beep      bool
	last      types.MoveResult
	onGameEnd func(final types.GameState)
}

// NewDotsBoard creates the board widget. Call ConnectEngine before use.
func NewDotsBoard(c *config.Config, hint *tview.TextView) *DotsBoardUI {
	board := &DotsBoardUI{
		Box:   tview.NewBox(),
		hint:  hint,
		sound: c.Game.Sound,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	board.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick || board.State.Phase != types.Playing {
			return action, event
		}
		x, y, _, _ := board.Box.GetInnerRect()
		mx, my := event.Position()
		l, ok := lineAt(mx-x-leftMargin, my-y-topMargin, board.State.GridSize)
		if !ok {
			return action, event
		}
		board.sel, board.hasSel = l, true
		board.PlayLine(l)
		return action, nil
	})
	return board
}

// ConnectEngine connects the board to a game engine.
func (g *DotsBoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e

	e.OnMove(func(result types.MoveResult) {
		g.last = result
		if g.sound && result.LineDrawn() {
			g.beep = true
		}
	})

	e.OnGameEnd(func(final types.GameState) {
		g.ResetSelection()
		if g.onGameEnd != nil {
			g.onGameEnd(final)
		}
	})

	g.refresh()
}

// SetGameEndFunc sets the handler run when the last box is taken.
func (g *DotsBoardUI) SetGameEndFunc(fn func(final types.GameState)) {
	g.onGameEnd = fn
}

// StartGame starts a game on the connected engine.
func (g *DotsBoardUI) StartGame(cfg engine.GameConfig) error {
	if err := g.eng.StartGame(cfg); err != nil {
		return err
	}
	g.last = types.MoveResult{}
	g.ResetSelection()
	g.refresh()
	return nil
}

// PlayLine plays l for the current player. Drawn lines are ignored.
func (g *DotsBoardUI) PlayLine(l types.Line) types.MoveResult {
	if g.eng == nil {
		return types.MoveResult{}
	}
	result := g.eng.ApplyMove(l)
	g.refresh()
	return result
}

// PlaySelected plays the line under the cursor, if any.
func (g *DotsBoardUI) PlaySelected() {
	if l := g.SelectedLine(); l != nil {
		g.PlayLine(*l)
	}
}

func (g *DotsBoardUI) Undo() {
	if g.eng != nil && g.eng.Undo() {
		g.last = types.MoveResult{}
		g.refresh()
	}
}

func (g *DotsBoardUI) Redo() {
	if g.eng != nil && g.eng.Redo() {
		g.last = types.MoveResult{}
		g.refresh()
	}
}

// PlayAgain restarts with the same grid and players.
func (g *DotsBoardUI) PlayAgain() {
	if g.eng == nil {
		return
	}
	g.eng.PlayAgain()
	g.last = types.MoveResult{}
	g.ResetSelection()
	g.refresh()
}

// NewGame sends the engine back to setup.
func (g *DotsBoardUI) NewGame() {
	if g.eng == nil {
		return
	}
	g.eng.NewGame()
	g.ResetSelection()
	g.refresh()
}

func (g *DotsBoardUI) SelectedLine() *types.Line {
	if !g.hasSel {
		return nil
	}
	l := g.sel
	return &l
}

// MoveSelection moves the cursor within its own line grid. The first call
// only places the cursor, on the last move or the top-left line.
func (g *DotsBoardUI) MoveSelection(dRow, dCol int) {
	if g.State.Phase != types.Playing {
		g.ResetSelection()
		return
	}
	if !g.hasSel {
		g.sel = types.H(0, 0)
		if g.State.LastMove != nil {
			g.sel = g.State.LastMove.Line
		}
		g.hasSel = true
		return
	}
	g.sel = moveLine(g.sel, dRow, dCol, g.State.GridSize)
}

// ToggleOrientation switches the cursor between horizontal and vertical lines.
func (g *DotsBoardUI) ToggleOrientation() {
	if !g.hasSel || g.State.Phase != types.Playing {
		return
	}
	g.sel = flipLine(g.sel, g.State.GridSize)
}

func (g *DotsBoardUI) ResetSelection() {
	g.hasSel = false
}

// SetSound turns the bell on box completion on or off.
func (g *DotsBoardUI) SetSound(on bool) {
	g.sound = on
}

// ToggleSound switches the bell on box completion and returns the new state.
func (g *DotsBoardUI) ToggleSound() bool {
	g.sound = !g.sound
	g.refreshHint()
	return g.sound
}

func (g *DotsBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),    // 0
		tcell.PaletteColor(c.Theme.Colors.DotColor),      // 1
		tcell.PaletteColor(c.Theme.Colors.EmptyLine),     // 2
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG), // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 4
		tcell.PaletteColor(c.Theme.Colors.LastPlayedBG),  // 5
	}
	g.cfg = c
}

func (g *DotsBoardUI) refresh() {
	if g.eng != nil {
		g.State = g.eng.State()
	}
	if g.infoPanel != nil {
		g.infoPanel.SetState(&g.State)
	}
	g.refreshHint()
}

func (g *DotsBoardUI) refreshHint() {
	if g.hint == nil {
		return
	}
	var statusLine, turnLine, controlsLine string

	switch g.State.Phase {
	case types.Finished:
		statusLine = "───────── Game Complete ─────────\n"
		turnLine = fmt.Sprintf("  %s\n", tview.Escape(OutcomeText(g.State)))
		controlsLine = "  u undo   n new game   q quit"
	case types.Playing:
		if n := g.last.BoxesCompleted(); n > 0 {
			statusLine = fmt.Sprintf("  ■ %d box%s, go again\n", n, plural(n, "es"))
		}
		if p := g.State.CurrentPlayer(); p != nil {
			turnLine = fmt.Sprintf("  [%s]●[-] %s to move\n", p.Color, tview.Escape(p.Name))
		}
		controlsLine = "  hjkl/↑↓←→ move  t turn  ⏎ draw  u/r undo/redo  s sound  q quit"
	default:
		turnLine = "  No game in progress\n"
	}
	g.hint.SetDynamicColors(true)
	g.hint.SetText(statusLine + turnLine + controlsLine)
}

func (g *DotsBoardUI) IsFinished() bool {
	return g.State.Phase == types.Finished
}

func (g *DotsBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if g.beep {
		screen.Beep()
		g.beep = false
	}
	size := g.State.GridSize
	if size == 0 {
		return x, y, width, height
	}
	ox, oy := x+leftMargin, y+topMargin
	bg := tcell.StyleDefault.Background(g.styles[styleBoard])
	sym := g.cfg.Theme.Symbols

	for r := 0; r < size-1; r++ {
		for c := 0; c < size-1; c++ {
			owner := g.State.Boxes[r][c]
			style, fill := bg, ' '
			if owner != types.NoOwner {
				color := playerColor(g.State.Players[owner])
				if g.cfg.Theme.DrawBoxBackground {
					style = bg.Background(color).Foreground(tcell.ColorBlack)
				} else {
					style, fill = bg.Foreground(color), sym.BoxFill
				}
			}
			for i := 1; i < cellW; i++ {
				screen.SetContent(ox+c*cellW+i, oy+r*cellH+1, fill, nil, style)
			}
			if owner != types.NoOwner && g.cfg.Theme.DrawBoxBackground {
				screen.SetContent(ox+c*cellW+2, oy+r*cellH+1, initial(g.State.Players[owner].Name), nil, style)
			}
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size-1; c++ {
			l := types.H(r, c)
			ch, style := g.lineLook(l, g.State.Horizontal[r][c], sym.Horizontal, sym.EmptyH, bg)
			for i := 1; i < cellW; i++ {
				screen.SetContent(ox+c*cellW+i, oy+r*cellH, ch, nil, style)
			}
		}
	}
	for r := 0; r < size-1; r++ {
		for c := 0; c < size; c++ {
			l := types.V(r, c)
			ch, style := g.lineLook(l, g.State.Vertical[r][c], sym.Vertical, sym.EmptyV, bg)
			screen.SetContent(ox+c*cellW, oy+r*cellH+1, ch, nil, style)
		}
	}

	dotStyle := bg.Foreground(g.styles[styleDot])
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			screen.SetContent(ox+c*cellW, oy+r*cellH, sym.Dot, nil, dotStyle)
		}
	}

	drawCoordinates(screen, x, y, size)
	return x, y, (size-1)*cellW + leftMargin + 1, (size-1)*cellH + topMargin + 1
}

// lineLook picks the rune and style for one line segment.
func (g *DotsBoardUI) lineLook(l types.Line, drawn bool, full, empty rune, bg tcell.Style) (rune, tcell.Style) {
	ch, style := full, bg.Foreground(g.styles[styleDot])
	if !drawn {
		ch, style = ' ', bg.Foreground(g.styles[styleEmpty])
		if g.cfg.Theme.ShowEmptyLines {
			ch = empty
		}
	}
	if last := g.State.LastMove; drawn && last != nil && last.Line == l {
		style = style.Foreground(playerColor(g.State.Players[last.Player])).Background(g.styles[styleLastBG])
	}
	if g.hasSel && g.sel == l {
		style = style.Background(g.styles[styleCurBG])
		if !drawn {
			ch = full
			if p := g.State.CurrentPlayer(); p != nil {
				style = style.Foreground(playerColor(*p))
			} else {
				style = style.Foreground(g.styles[styleCurFG])
			}
		}
	}
	return ch, style
}

func drawCoordinates(s tcell.Screen, x, y, size int) {
	style := tcell.StyleDefault
	for c := 0; c < size; c++ {
		label := fmt.Sprintf("%d", c)
		for i, ch := range label {
			s.SetContent(x+leftMargin+c*cellW+i, y, ch, nil, style)
		}
	}
	for r := 0; r < size; r++ {
		label := fmt.Sprintf("%2d", r)
		for i, ch := range label {
			s.SetContent(x+i, y+topMargin+r*cellH, ch, nil, style)
		}
	}
}

// lineAt maps a cell offset from the first dot to the line drawn there.
func lineAt(dx, dy, size int) (types.Line, bool) {
	if dx < 0 || dy < 0 || size < 2 {
		return types.Line{}, false
	}
	row, col := dy/cellH, dx/cellW
	onDotRow, onDotCol := dy%cellH == 0, dx%cellW == 0
	switch {
	case onDotRow && !onDotCol && row < size && col < size-1:
		return types.H(row, col), true
	case !onDotRow && onDotCol && row < size-1 && col < size:
		return types.V(row, col), true
	}
	return types.Line{}, false
}

// moveLine steps l by (dRow, dCol), clamped to its own grid.
func moveLine(l types.Line, dRow, dCol, size int) types.Line {
	rows, cols := gridDims(l.Orientation, size)
	l.Row = clamp(l.Row+dRow, 0, rows-1)
	l.Col = clamp(l.Col+dCol, 0, cols-1)
	return l
}

// flipLine switches orientation, keeping the position as close as possible.
func flipLine(l types.Line, size int) types.Line {
	if l.Orientation == types.Horizontal {
		l.Orientation = types.Vertical
	} else {
		l.Orientation = types.Horizontal
	}
	return moveLine(l, 0, 0, size)
}

func gridDims(o types.Orientation, size int) (rows, cols int) {
	if o == types.Vertical {
		return size - 1, size
	}
	return size, size - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func playerColor(p types.Player) tcell.Color {
	return tcell.GetColor(p.Color)
}

func initial(name string) rune {
	for _, r := range strings.ToUpper(name) {
		return r
	}
	return ' '
}

func plural(n int, suffix string) string {
	if n == 1 {
		return ""
	}
	return suffix
}
