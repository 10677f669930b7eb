package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dotsboxes-local/config"
	"dotsboxes-local/types"
)

// ColorConfigUI lets the player pick the board and dot colors with a live
// preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func(error)

	board    int
	dot      int
	editDots bool
}

type namedColor struct {
	code int
	name string
}

// Dark backgrounds keep the player colors readable.
var boardColors = []namedColor{
	{232, "Black"},
	{234, "Charcoal"},
	{236, "Dark Gray"},
	{238, "Slate"},
	{17, "Navy"},
	{22, "Forest"},
	{23, "Deep Teal"},
	{52, "Maroon"},
	{54, "Plum"},
	{58, "Olive"},
}

var dotColors = []namedColor{
	{255, "White"},
	{250, "Light Gray"},
	{246, "Gray"},
	{230, "Cream"},
	{229, "Pale Yellow"},
	{159, "Ice"},
	{218, "Pink"},
	{156, "Mint"},
}

// NewColorConfig creates the color screen. onDone receives the result of
// saving the chosen colors.
func NewColorConfig(cfg *config.Config, onDone func(error)) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:    cfg,
		onDone: onDone,
		board:  cfg.Theme.Colors.BoardColor,
		dot:    cfg.Theme.Colors.DotColor,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if c, ok := cc.choice(index); ok {
			if cc.editDots {
				cc.dot = c.code
			} else {
				cc.board = c.code
			}
		}
	})

	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if _, ok := cc.choice(index); !ok {
			return
		}
		if !cc.editDots {
			cc.editDots = true
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColor = cc.board
		cc.cfg.Theme.Colors.DotColor = cc.dot
		cc.editDots = false
		cc.populateColorList()
		onDone(cc.cfg.Save())
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

func (cc *ColorConfigUI) palette() []namedColor {
	if cc.editDots {
		return dotColors
	}
	return boardColors
}

func (cc *ColorConfigUI) choice(index int) (namedColor, bool) {
	p := cc.palette()
	if index < 0 || index >= len(p) {
		return namedColor{}, false
	}
	return p[index], true
}

func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.board
	title := " Board Color (Tab: dots) "
	if cc.editDots {
		current = cc.dot
		title = " Dot Color (Tab: board) "
	}
	cc.colorList.SetTitle(title)

	for i, c := range cc.palette() {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
		}
	}
}

// drawPreview draws a 4x4 dot grid with a few lines and captured boxes.
func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 4
	if width < 20 || height < 10 {
		return x, y, width, height
	}

	sym := cc.cfg.Theme.Symbols
	bg := tcell.StyleDefault.Background(tcell.PaletteColor(cc.board))
	lineStyle := bg.Foreground(tcell.PaletteColor(cc.dot))
	startX, startY := x+3, y+2

	owned := map[types.BoxPos]int{{Row: 0, Col: 0}: 0, {Row: 1, Col: 0}: 1}
	for p, seat := range owned {
		style := bg.Foreground(tcell.GetColor(types.PlayerColors[seat]))
		for i := 1; i < cellW; i++ {
			screen.SetContent(startX+p.Col*cellW+i, startY+p.Row*cellH+1, sym.BoxFill, nil, style)
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size-1; c++ {
			drawn := c == 0 && r < 3
			for i := 1; i < cellW; i++ {
				ch := ' '
				if drawn {
					ch = sym.Horizontal
				}
				screen.SetContent(startX+c*cellW+i, startY+r*cellH, ch, nil, lineStyle)
			}
		}
	}
	for r := 0; r < size-1; r++ {
		for c := 0; c < size; c++ {
			if r < 2 && c < 2 {
				screen.SetContent(startX+c*cellW, startY+r*cellH+1, sym.Vertical, nil, lineStyle)
			}
		}
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			screen.SetContent(startX+c*cellW, startY+r*cellH, sym.Dot, nil, lineStyle)
		}
	}

	info := fmt.Sprintf("Board: %d  Dots: %d", cc.board, cc.dot)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size*cellH, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between board color and dot color editing.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editDots = !cc.editDots
	cc.populateColorList()
}
