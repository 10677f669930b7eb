// Package types contains shared data structures for dotsboxes-local.
package types

import "fmt"

// Orientation tells which of the two line grids a line belongs to.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Line identifies one edge between two adjacent dots.
// Horizontal lines live in an N x (N-1) grid, vertical lines in (N-1) x N.
type Line struct {
	Orientation Orientation
	Row         int
	Col         int
}

// H returns the horizontal line at (row, col).
func H(row, col int) Line {
	return Line{Orientation: Horizontal, Row: row, Col: col}
}

// V returns the vertical line at (row, col).
func V(row, col int) Line {
	return Line{Orientation: Vertical, Row: row, Col: col}
}

func (l Line) String() string {
	return fmt.Sprintf("%s(%d,%d)", l.Orientation, l.Row, l.Col)
}

// BoxPos is the position of a box; the box at (Row, Col) has its top-left
// corner on dot (Row, Col).
type BoxPos struct {
	Row int
	Col int
}

// NoOwner marks a box nobody has completed yet.
const NoOwner = -1

// Phase is the lifecycle state of a game.
type Phase int

const (
	Setup Phase = iota
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "setup"
	}
}

// PlayerColors is the fixed seat palette. Seat k always gets PlayerColors[k].
var PlayerColors = []string{"#E63946", "#2A9D8F", "#E9C46A", "#9B5DE5", "#F77F00", "#4361EE"}

// Player is a seat at the table.
type Player struct {
	Name  string
	Color string // hex, from PlayerColors
}

// Move is a line drawn by a player.
type Move struct {
	Line   Line
	Player int
}

// MoveResult reports what a call to ApplyMove did, so the presentation layer
// can react (stroke sound, box sound, game-over dialog).
type MoveResult struct {
	Applied   bool
	Move      Move
	Completed []BoxPos
	Next      int // player to act after the move
	Finished  bool
}

// LineDrawn returns true if the move was accepted.
func (r MoveResult) LineDrawn() bool {
	return r.Applied
}

// BoxesCompleted returns the number of boxes awarded by the move.
func (r MoveResult) BoxesCompleted() int {
	return len(r.Completed)
}

// ExtraTurn returns true if the mover goes again.
func (r MoveResult) ExtraTurn() bool {
	return r.Applied && len(r.Completed) > 0
}

// GameState is a read-only copy of everything the presentation layer draws.
// Boxes holds NoOwner or the owning seat index.
type GameState struct {
	ID         string
	Phase      Phase
	GridSize   int
	Players    []Player
	Horizontal [][]bool
	Vertical   [][]bool
	Boxes      [][]int
	Scores     []int
	Current    int
	CanUndo    bool
	CanRedo    bool
	LastMove   *Move
	Moves      []Move
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == Finished
}

// BoxCount returns the number of boxes per side.
func (s *GameState) BoxCount() int {
	if s.GridSize == 0 {
		return 0
	}
	return s.GridSize - 1
}

// CurrentPlayer returns the player to move, or nil outside a game.
func (s *GameState) CurrentPlayer() *Player {
	if s.Current < 0 || s.Current >= len(s.Players) {
		return nil
	}
	return &s.Players[s.Current]
}

// Winners returns the seats holding the top score, in seat order. More than
// one seat means a tie.
func Winners(scores []int) []int {
	if len(scores) == 0 {
		return nil
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s > best {
			best = s
		}
	}
	var winners []int
	for i, s := range scores {
		if s == best {
			winners = append(winners, i)
		}
	}
	return winners
}
