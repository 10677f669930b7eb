package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"dotsboxes-local/types"
)

const (
	buttonPlayAgain = "Play Again"
	buttonNewGame   = "New Game"
)

// OutcomeText names the winner, or reports a tie.
func OutcomeText(s types.GameState) string {
	winners := types.Winners(s.Scores)
	switch {
	case len(winners) == 0:
		return ""
	case len(winners) > 1:
		return "It's a Tie!"
	default:
		return fmt.Sprintf("%s Wins!", s.Players[winners[0]].Name)
	}
}

// scoreLines lists every player with their score, winners starred.
func scoreLines(s types.GameState) string {
	best := map[int]bool{}
	for _, w := range types.Winners(s.Scores) {
		best[w] = true
	}
	var b strings.Builder
	for i, p := range s.Players {
		star := " "
		if best[i] {
			star = "★"
		}
		fmt.Fprintf(&b, "%s %s  %d\n", star, p.Name, s.Scores[i])
	}
	return b.String()
}

// NewGameOverModal builds the end-of-game dialog.
func NewGameOverModal(s types.GameState, onPlayAgain, onNewGame func()) *tview.Modal {
	modal := tview.NewModal().
		SetText(OutcomeText(s) + "\n\n" + scoreLines(s)).
		AddButtons([]string{buttonPlayAgain, buttonNewGame}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			switch buttonLabel {
			case buttonPlayAgain:
				onPlayAgain()
			case buttonNewGame:
				onNewGame()
			}
		})
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetTextColor(MenuColors.Title)
	modal.SetButtonBackgroundColor(MenuColors.ButtonBG)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	return modal
}
