// Package board holds the dots-and-boxes grid: drawn lines and box owners.
package board

import (
	"fmt"

	"dotsboxes-local/types"
)

// Board is indexed as Horizontal[row][col], Vertical[row][col] and
// Boxes[row][col]. A drawn line never reverts and an owned box never changes
// hands; only restoring an older copy undoes either.
type Board struct {
	Size       int
	Horizontal [][]bool // Size rows x Size-1 cols
	Vertical   [][]bool // Size-1 rows x Size cols
	Boxes      [][]int  // Size-1 x Size-1, types.NoOwner when unowned
}

// New creates an empty board with size dots per side.
func New(size int) *Board {
	if size < 2 {
		panic(fmt.Sprintf("board: size %d too small", size))
	}
	n := size - 1
	b := &Board{
		Size:       size,
		Horizontal: boolGrid(size, n),
		Vertical:   boolGrid(n, size),
		Boxes:      make([][]int, n),
	}
	for r := range b.Boxes {
		b.Boxes[r] = make([]int, n)
		for c := range b.Boxes[r] {
			b.Boxes[r][c] = types.NoOwner
		}
	}
	return b
}

func boolGrid(rows, cols int) [][]bool {
	g := make([][]bool, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	return g
}

// BoxCount returns the number of boxes per side.
func (b *Board) BoxCount() int {
	return b.Size - 1
}

// TotalBoxes returns the number of boxes on the board.
func (b *Board) TotalBoxes() int {
	return b.BoxCount() * b.BoxCount()
}

// InBounds reports whether l names a line of this board.
func (b *Board) InBounds(l types.Line) bool {
	grid := b.grid(l.Orientation)
	return l.Row >= 0 && l.Row < len(grid) && l.Col >= 0 && l.Col < len(grid[l.Row])
}

func (b *Board) grid(o types.Orientation) [][]bool {
	if o == types.Vertical {
		return b.Vertical
	}
	return b.Horizontal
}

// IsLineDrawn returns false for lines outside the board.
func (b *Board) IsLineDrawn(l types.Line) bool {
	if !b.InBounds(l) {
		return false
	}
	return b.grid(l.Orientation)[l.Row][l.Col]
}

// SetLine draws l. Drawing a line twice or off the board is a caller bug.
func (b *Board) SetLine(l types.Line) {
	if !b.InBounds(l) {
		panic(fmt.Sprintf("board: %v out of range for size %d", l, b.Size))
	}
	grid := b.grid(l.Orientation)
	if grid[l.Row][l.Col] {
		panic(fmt.Sprintf("board: %v already drawn", l))
	}
	grid[l.Row][l.Col] = true
}

func (b *Board) boxInBounds(p types.BoxPos) bool {
	n := b.BoxCount()
	return p.Row >= 0 && p.Row < n && p.Col >= 0 && p.Col < n
}

// BoxAt returns the owner of the box at p, if any.
func (b *Board) BoxAt(p types.BoxPos) (int, bool) {
	if !b.boxInBounds(p) {
		return types.NoOwner, false
	}
	owner := b.Boxes[p.Row][p.Col]
	return owner, owner != types.NoOwner
}

// SetOwner gives the box at p to player. It returns false if the box was
// already owned and leaves it untouched.
func (b *Board) SetOwner(p types.BoxPos, player int) bool {
	if !b.boxInBounds(p) {
		panic(fmt.Sprintf("board: box %v out of range for size %d", p, b.Size))
	}
	if b.Boxes[p.Row][p.Col] != types.NoOwner {
		return false
	}
	b.Boxes[p.Row][p.Col] = player
	return true
}

// Edges returns the four sides of the box at p: top, bottom, left, right.
func Edges(p types.BoxPos) [4]types.Line {
	return [4]types.Line{
		types.H(p.Row, p.Col),
		types.H(p.Row+1, p.Col),
		types.V(p.Row, p.Col),
		types.V(p.Row, p.Col+1),
	}
}

// IsComplete reports whether all four sides of the box at p are drawn.
func (b *Board) IsComplete(p types.BoxPos) bool {
	for _, e := range Edges(p) {
		if !b.IsLineDrawn(e) {
			return false
		}
	}
	return true
}

// OwnedCount returns how many boxes have an owner.
func (b *Board) OwnedCount() int {
	count := 0
	for _, row := range b.Boxes {
		for _, owner := range row {
			if owner != types.NoOwner {
				count++
			}
		}
	}
	return count
}

// Full returns true once every box is owned.
func (b *Board) Full() bool {
	return b.OwnedCount() == b.TotalBoxes()
}

// Clone returns a deep copy that shares no rows with b.
func (b *Board) Clone() *Board {
	cp := &Board{
		Size:       b.Size,
		Horizontal: make([][]bool, len(b.Horizontal)),
		Vertical:   make([][]bool, len(b.Vertical)),
		Boxes:      make([][]int, len(b.Boxes)),
	}
	for i, row := range b.Horizontal {
		cp.Horizontal[i] = append([]bool(nil), row...)
	}
	for i, row := range b.Vertical {
		cp.Vertical[i] = append([]bool(nil), row...)
	}
	for i, row := range b.Boxes {
		cp.Boxes[i] = append([]int(nil), row...)
	}
	return cp
}
