package dots

import (
	"dotsboxes-local/board"
	"dotsboxes-local/types"
)

// snapshot is the game state right after one accepted move.
type snapshot struct {
	board   *board.Board
	current int
	scores  []int
	move    types.Move
}

func (s snapshot) clone() snapshot {
	return snapshot{
		board:   s.board.Clone(),
		current: s.current,
		scores:  append([]int(nil), s.scores...),
		move:    s.move,
	}
}

// History is a linear list of snapshots with a cursor on the current one.
// Entries are copied on the way in and on the way out, so nothing outside
// can reach a stored snapshot. The cursor is -1 only while the list is empty.
type History struct {
	entries []snapshot
	cursor  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push records s after the cursor, dropping anything that could have been
// redone, and moves the cursor onto it.
func (h *History) Push(s snapshot) {
	h.entries = append(h.entries[:h.cursor+1], s.clone())
	h.cursor = len(h.entries) - 1
}

// Back moves the cursor to the previous snapshot and returns it. Returns
// false at the first snapshot: the empty board before it is never stored.
func (h *History) Back() (snapshot, bool) {
	if h.cursor <= 0 {
		return snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor].clone(), true
}

// Forward moves the cursor to the next snapshot and returns it. Returns
// false at the last snapshot.
func (h *History) Forward() (snapshot, bool) {
	if h.cursor >= len(h.entries)-1 {
		return snapshot{}, false
	}
	h.cursor++
	return h.entries[h.cursor].clone(), true
}

// CanBack returns true if Back would move.
func (h *History) CanBack() bool {
	return h.cursor > 0
}

// CanForward returns true if Forward would move.
func (h *History) CanForward() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the current snapshot, -1 when empty.
func (h *History) Cursor() int {
	return h.cursor
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
	h.cursor = -1
}

// PathFromRoot returns the moves that led to the current snapshot.
func (h *History) PathFromRoot() []types.Move {
	path := make([]types.Move, 0, h.cursor+1)
	for i := 0; i <= h.cursor; i++ {
		path = append(path, h.entries[i].move)
	}
	return path
}
