package dots

import (
	"fmt"
	"strconv"
	"strings"

	"dotsboxes-local/types"
)

// Line notation:
// - Orientation letter: h (horizontal) or v (vertical), case-insensitive
// - Row and column, 0-indexed from the top-left dot, separated by a comma
// - Example: h0,0 is the top edge of the top-left box, v2,5 a vertical
//   line in the third box row, sixth dot column

// FormatLine returns the notation for l.
func FormatLine(l types.Line) string {
	o := 'h'
	if l.Orientation == types.Vertical {
		o = 'v'
	}
	return fmt.Sprintf("%c%d,%d", o, l.Row, l.Col)
}

// ParseLine reads a single line in notation. It does not check the line
// against any board size.
func ParseLine(s string) (types.Line, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 4 {
		return types.Line{}, fmt.Errorf("invalid line: %q", s)
	}

	var l types.Line
	switch s[0] {
	case 'h':
		l.Orientation = types.Horizontal
	case 'v':
		l.Orientation = types.Vertical
	default:
		return types.Line{}, fmt.Errorf("invalid orientation in line: %q", s)
	}

	rowStr, colStr, ok := strings.Cut(s[1:], ",")
	if !ok {
		return types.Line{}, fmt.Errorf("missing comma in line: %q", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil || row < 0 {
		return types.Line{}, fmt.Errorf("invalid row in line: %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil || col < 0 {
		return types.Line{}, fmt.Errorf("invalid column in line: %q", s)
	}
	l.Row, l.Col = row, col
	return l, nil
}

// ParseLines reads a whitespace or semicolon separated list of lines.
func ParseLines(s string) ([]types.Line, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	lines := make([]types.Line, 0, len(fields))
	for _, f := range fields {
		l, err := ParseLine(f)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// FitsGrid reports whether l exists on a grid with size dots per side.
func FitsGrid(l types.Line, size int) bool {
	rows, cols := size, size-1
	if l.Orientation == types.Vertical {
		rows, cols = size-1, size
	}
	return l.Row >= 0 && l.Row < rows && l.Col >= 0 && l.Col < cols
}
