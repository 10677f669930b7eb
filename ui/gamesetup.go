package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dotsboxes-local/config"
	"dotsboxes-local/engine"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig, bool)
	onCancel func()

	gridSize    int
	playerCount int
	names       []string
	sound       bool
}

// NewGameSetup creates a new game setup form pre-filled from c. onStart gets
// the chosen game and whether sound is on.
func NewGameSetup(c *config.Config, onStart func(engine.GameConfig, bool), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:     onStart,
		onCancel:    onCancel,
		gridSize:    c.Game.GridSize,
		playerCount: c.Game.PlayerCount,
		names:       make([]string, engine.MaxPlayers),
		sound:       c.Game.Sound,
	}
	copy(setup.names, c.Game.PlayerNames)

	var gridSizes []string
	for n := engine.MinGridSize; n <= engine.MaxGridSize; n++ {
		gridSizes = append(gridSizes, fmt.Sprintf("%dx%d", n, n))
	}
	var counts []string
	for n := engine.MinPlayers; n <= engine.MaxPlayers; n++ {
		counts = append(counts, fmt.Sprintf("%d", n))
	}

	form := tview.NewForm()

	form.AddDropDown("Grid Size", gridSizes, setup.gridSize-engine.MinGridSize, func(option string, index int) {
		setup.gridSize = engine.MinGridSize + index
	})

	form.AddDropDown("Players", counts, setup.playerCount-engine.MinPlayers, func(option string, index int) {
		setup.playerCount = engine.MinPlayers + index
	})

	for i := 0; i < engine.MaxPlayers; i++ {
		i := i
		form.AddInputField(fmt.Sprintf("Player %d", i+1), setup.names[i], 16, nil, func(text string) {
			setup.names[i] = text
		})
	}

	form.AddCheckbox("Sound", setup.sound, func(checked bool) {
		setup.sound = checked
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig(), setup.sound)
	})

	form.AddButton("Colors", func() {
		onColors()
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Only the first N names are used  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(tcell.ColorGray)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// GameConfig returns the game described by the form's current values.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	names := make([]string, s.playerCount)
	copy(names, s.names)
	return engine.GameConfig{GridSize: s.gridSize, PlayerNames: names}
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
