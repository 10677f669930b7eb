package ui

import "github.com/gdamore/tcell/v2"

// MenuColors defines the Nord-inspired color palette for the menu UI.
var MenuColors = struct {
	CardBG     tcell.Color // Dark gray background
	Title      tcell.Color // Bright white for title
	Label      tcell.Color // Light gray for labels
	ButtonBG   tcell.Color // Button background
	ButtonText tcell.Color // Button text
}{
	CardBG:     tcell.PaletteColor(236),
	Title:      tcell.PaletteColor(255),
	Label:      tcell.PaletteColor(250),
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}
