package dots

import (
	"dotsboxes-local/board"
	"dotsboxes-local/types"
)

// CompletedBoxes returns the boxes closed by l, which must already be drawn
// on b. A line borders at most two boxes, so the result has 0, 1 or 2
// entries; lines on the outer edge only have a neighbour on one side.
func CompletedBoxes(b *board.Board, l types.Line) []types.BoxPos {
	n := b.BoxCount()
	var candidates []types.BoxPos
	if l.Orientation == types.Horizontal {
		if l.Row > 0 {
			candidates = append(candidates, types.BoxPos{Row: l.Row - 1, Col: l.Col})
		}
		if l.Row < n {
			candidates = append(candidates, types.BoxPos{Row: l.Row, Col: l.Col})
		}
	} else {
		if l.Col > 0 {
			candidates = append(candidates, types.BoxPos{Row: l.Row, Col: l.Col - 1})
		}
		if l.Col < n {
			candidates = append(candidates, types.BoxPos{Row: l.Row, Col: l.Col})
		}
	}

	var completed []types.BoxPos
	for _, p := range candidates {
		if b.IsComplete(p) {
			completed = append(completed, p)
		}
	}
	return completed
}
