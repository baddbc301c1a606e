// Package pb encodes mazes in the protobuf wire format for renderers.
//
// The message layout is
//
//	message Maze {
//	  uint32 width     = 1;
//	  uint32 height    = 2;
//	  uint32 cell_size = 3;
//	  bytes  walls     = 4; // one byte per cell, row-major, bit0 right, bit1 bottom
//	  bytes  path      = 5; // packed varints x0, y0, x1, y1, ...
//	}
package pb

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	widthField    protowire.Number = 1
	heightField   protowire.Number = 2
	cellSizeField protowire.Number = 3
	wallsField    protowire.Number = 4
	pathField     protowire.Number = 5
)

var ErrMalformedPayload = errors.New("malformed maze payload")

// Maze is a decoded payload.
type Maze struct {
	Grid     *maze.Grid
	CellSize int
	Path     maze.Path
}

// Protobuf marshals mazes to and from the wire format.
type Protobuf struct{}

// MarshalMaze encodes the grid, its cell size and an optional path.
func (p *Protobuf) MarshalMaze(g *maze.Grid, cellSize int, path maze.Path) ([]byte, error) {
	if cellSize < 0 {
		return nil, fmt.Errorf("negative cell size %d", cellSize)
	}

	walls := make([]byte, 0, g.Width()*g.Height())
	for _, row := range g.Rows() {
		for i := 0; i < len(row); i++ {
			walls = append(walls, row[i]-'0')
		}
	}

	var packed []byte
	for _, pos := range path {
		if pos.X < 0 || pos.Y < 0 {
			return nil, fmt.Errorf("negative path position %v", pos)
		}
		packed = protowire.AppendVarint(packed, uint64(pos.X))
		packed = protowire.AppendVarint(packed, uint64(pos.Y))
	}

	var b []byte
	b = protowire.AppendTag(b, widthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Width()))
	b = protowire.AppendTag(b, heightField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Height()))
	b = protowire.AppendTag(b, cellSizeField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(cellSize))
	b = protowire.AppendTag(b, wallsField, protowire.BytesType)
	b = protowire.AppendBytes(b, walls)
	if len(packed) > 0 {
		b = protowire.AppendTag(b, pathField, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b, nil
}

// UnmarshalMaze decodes a payload written by MarshalMaze. Unknown fields are
// skipped.
func (p *Protobuf) UnmarshalMaze(b []byte) (*Maze, error) {
	var (
		width, height, cellSize uint64
		walls, packed           []byte
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == widthField && typ == protowire.VarintType:
			width, n = protowire.ConsumeVarint(b)
		case num == heightField && typ == protowire.VarintType:
			height, n = protowire.ConsumeVarint(b)
		case num == cellSizeField && typ == protowire.VarintType:
			cellSize, n = protowire.ConsumeVarint(b)
		case num == wallsField && typ == protowire.BytesType:
			walls, n = protowire.ConsumeBytes(b)
		case num == pathField && typ == protowire.BytesType:
			packed, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %w", ErrMalformedPayload, num, protowire.ParseError(n))
		}
		b = b[n:]
	}

	// Both fields are uint32 on the wire, which also keeps width*height
	// from overflowing.
	if width > math.MaxUint32 || height > math.MaxUint32 {
		return nil, fmt.Errorf("%w: dimensions %dx%d exceed uint32", ErrMalformedPayload, width, height)
	}
	if width == 0 || height == 0 || uint64(len(walls)) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d wall bytes", ErrMalformedPayload, width, height, len(walls))
	}

	rows := make([]string, height)
	line := make([]byte, width)
	for y := range rows {
		for x := range line {
			line[x] = '0' + walls[uint64(y)*width+uint64(x)]
		}
		rows[y] = string(line)
	}
	grid, err := maze.GridFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	var path maze.Path
	for len(packed) > 0 {
		x, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return nil, fmt.Errorf("%w: path: %w", ErrMalformedPayload, protowire.ParseError(n))
		}
		packed = packed[n:]
		y, n := protowire.ConsumeVarint(packed)
		if n < 0 {
			return nil, fmt.Errorf("%w: path: %w", ErrMalformedPayload, protowire.ParseError(n))
		}
		packed = packed[n:]
		path = append(path, maze.CellPosition{X: int(x), Y: int(y)})
	}

	return &Maze{
		Grid:     grid,
		CellSize: int(cellSize),
		Path:     path,
	}, nil
}
