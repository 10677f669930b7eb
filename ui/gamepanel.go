package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"dotsboxes-local/engine/dots"
	"dotsboxes-local/types"
)

// GameInfoPanel displays scores and move history alongside the board.
type GameInfoPanel struct {
	box   *tview.TextView
	state *types.GameState
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current game state.
func (p *GameInfoPanel) SetState(state *types.GameState) {
	p.state = state
	p.box.SetText(panelText(state))
}

func panelText(s *types.GameState) string {
	if s == nil || s.Phase == types.Setup {
		return ""
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Grid:[-:-:-] %dx%d\n", s.GridSize, s.GridSize)
	if len(s.ID) >= 8 {
		text += fmt.Sprintf("[white]Game:[-:-:-] [dimgray]%s[-]\n", s.ID[:8])
	}
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", len(s.Moves))

	text += "\n[white::b]Scores[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	for i, pl := range s.Players {
		marker := " "
		if i == s.Current && s.Phase == types.Playing {
			marker = "[white]>[-]"
		}
		text += fmt.Sprintf("%s[%s]●[-] %-12s %3d\n", marker, pl.Color, tview.Escape(truncate(pl.Name, 12)), s.Scores[i])
	}

	if len(s.Moves) > 0 {
		text += "\n[white::b]Moves[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"

		maxVisible := 10
		start := 0
		if len(s.Moves) > maxVisible {
			start = len(s.Moves) - maxVisible
		}
		for i := start; i < len(s.Moves); i++ {
			m := s.Moves[i]
			marker := " "
			if i == len(s.Moves)-1 {
				marker = "[white]>[-]"
			}
			text += fmt.Sprintf("%s[dimgray]%3d.[-] [%s]%c[-] %s\n",
				marker, i+1, s.Players[m.Player].Color, initial(s.Players[m.Player].Name), dots.FormatLine(m.Line))
		}
		if start > 0 {
			text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
		}
	}

	var undo, redo string
	if s.CanUndo {
		undo = "u undo"
	}
	if s.CanRedo {
		redo = "r redo"
	}
	if undo != "" || redo != "" {
		text += fmt.Sprintf("\n[dimgray]%s  %s[-]\n", undo, redo)
	}
	return text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *DotsBoardUI, hint *tview.TextView) *tview.Flex {
	infoPanel := NewGameInfoPanel()
	board.infoPanel = infoPanel
	infoPanel.SetState(&board.State)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 4, 0, false)

	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}
