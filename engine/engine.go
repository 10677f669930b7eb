// Package engine defines the interface between the dots-and-boxes rules and
// whatever presents them.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"dotsboxes-local/types"
)

const (
	MinGridSize = 6
	MaxGridSize = 12
	MinPlayers  = 2
	MaxPlayers  = 6
)

var (
	ErrGridSize    = errors.New("grid size out of range")
	ErrPlayerCount = errors.New("player count out of range")
)

// GameEngine is the command and query surface used by the UI.
type GameEngine interface {
	// StartGame resets everything and begins a game with cfg.
	StartGame(cfg GameConfig) error

	// ApplyMove draws a line for the current player. Moves outside a game or
	// on a drawn line are ignored and return a result with Applied == false.
	ApplyMove(l types.Line) types.MoveResult

	// Undo and Redo step the history cursor. They return false when there
	// is nothing to step to.
	Undo() bool
	Redo() bool

	// PlayAgain restarts with the same grid and players.
	PlayAgain()

	// NewGame returns to setup and forgets the grid and players.
	NewGame()

	// State returns a copy of everything needed to draw the game.
	State() types.GameState

	// OnMove registers a callback run after every accepted move.
	OnMove(func(result types.MoveResult))

	// OnGameEnd registers a callback run when the last box is taken.
	OnGameEnd(func(final types.GameState))
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	GridSize    int      // dots per side, 6-12
	PlayerNames []string // one per seat, 2-6; blank names get "Player k"
}

// DefaultConfig returns a two-player game on a 6x6 grid.
func DefaultConfig() GameConfig {
	return GameConfig{
		GridSize:    MinGridSize,
		PlayerNames: []string{"Player 1", "Player 2"},
	}
}

// Validate checks the grid size and seat count.
func (c GameConfig) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrGridSize, c.GridSize, MinGridSize, MaxGridSize)
	}
	if n := len(c.PlayerNames); n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrPlayerCount, n, MinPlayers, MaxPlayers)
	}
	return nil
}

// Players turns the configured names into seats with palette colors.
func (c GameConfig) Players() []types.Player {
	players := make([]types.Player, len(c.PlayerNames))
	for i, name := range c.PlayerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = types.Player{Name: name, Color: types.PlayerColors[i%len(types.PlayerColors)]}
	}
	return players
}
