package maze

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Wall bits of the text encoding. A cell is written as '0' plus its bits.
const (
	rightWallBit byte = 1 << iota
	bottomWallBit
)

var (
	ErrMalformedEncoding = errors.New("malformed maze encoding")
	ErrNotPerfect        = errors.New("maze is not a spanning tree")
)

// Rows returns the text encoding of every row, top to bottom.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	line := make([]byte, g.width)
	for y := range g.cells {
		for x := range g.cells[y] {
			line[x] = '0' + g.cells[y][x].bits()
		}
		rows[y] = string(line)
	}
	return rows
}

// MarshalText implements encoding.TextMarshaler. Each row becomes one line.
func (g *Grid) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow((g.width + 1) * g.height)
	for _, row := range g.Rows() {
		buf.WriteString(row)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Grid) UnmarshalText(data []byte) error {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return fmt.Errorf("%w: empty input", ErrMalformedEncoding)
	}

	parsed, err := GridFromRows(strings.Split(text, "\n"))
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}

// UnmarshalGrid decodes a grid written by MarshalText.
func UnmarshalGrid(data []byte) (*Grid, error) {
	g := &Grid{}
	if err := g.UnmarshalText(data); err != nil {
		return nil, err
	}
	return g, nil
}

// GridFromRows builds a grid from row encodings as returned by Rows.
func GridFromRows(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedEncoding)
	}

	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEncoding, err)
	}

	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedEncoding, y, len(row), g.width)
		}
		for x := 0; x < len(row); x++ {
			bits := row[x] - '0'
			if row[x] < '0' || bits > rightWallBit|bottomWallBit {
				return nil, fmt.Errorf("%w: invalid cell %q at (%d, %d)", ErrMalformedEncoding, row[x], x, y)
			}
			g.cells[y][x].RightWall = bits&rightWallBit != 0
			g.cells[y][x].BottomWall = bits&bottomWallBit != 0
		}
	}

	return g, nil
}

// Validate checks that g is a perfect maze: every cell reachable from the
// top-left corner through exactly width*height-1 passages.
func Validate(g *Grid) error {
	total := g.width * g.height
	if passages := g.Passages(); passages != total-1 {
		return fmt.Errorf("%w: %d passages for %d cells", ErrNotPerfect, passages, total)
	}

	seen := make([]bool, total)
	seen[0] = true
	reached := 1
	stack := []CellPosition{{X: 0, Y: 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dir := range directions {
			next := CellPosition{X: current.X + dir.X, Y: current.Y + dir.Y}
			if !g.Connected(current, next) || seen[next.Y*g.width+next.X] {
				continue
			}
			seen[next.Y*g.width+next.X] = true
			reached++
			stack = append(stack, next)
		}
	}

	if reached != total {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrNotPerfect, reached, total)
	}
	return nil
}
