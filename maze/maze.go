/*
Package maze provides tools for creating and solving perfect rectangular mazes.

A Grid holds the wall state of every cell. A Generator carves a Grid row by
row, keeping the equivalence classes of the current row in two linked-list
buffers, so the result is always a spanning tree: exactly one path joins any
two cells. FindPath walks a carved Grid breadth first and returns that path.

Grids can be written to and read from a compact text form (one character per
cell) and rendered as ASCII for debugging.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfBounds       = errors.New("coordinate out of maze bounds")
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrNoPathFound       = errors.New("no path between cells")
)

// Grid represents a rectangular maze of Width x Height cells.
type Grid struct {
	width  int
	height int
	cells  [][]Cell // cells[y][x]
}

// NewGrid allocates a grid of the given dimensions with every wall closed.
func NewGrid(width, height int) (*Grid, error) {
	if min(width, height) <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{
				RightWall:  true,
				BottomWall: true,
				parentX:    unvisited,
				parentY:    unvisited,
			}
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// New allocates a grid and carves a maze into it using src for every random
// decision.
func New(width, height int, src RandomSource, opts ...Option) (*Grid, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	gen, err := NewGenerator(src, opts...)
	if err != nil {
		return nil, err
	}

	gen.Carve(grid)
	return grid, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBound reports whether (x, y) lies inside the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns a copy of the cell at (x, y).
func (g *Grid) Cell(x, y int) (Cell, error) {
	if !g.InBound(x, y) {
		return Cell{}, outOfBounds(x, y)
	}
	return g.cells[y][x], nil
}

// WallRight reports whether (x, y) is walled off from (x+1, y).
func (g *Grid) WallRight(x, y int) (bool, error) {
	if !g.InBound(x, y) {
		return false, outOfBounds(x, y)
	}
	return g.cells[y][x].RightWall, nil
}

// WallBottom reports whether (x, y) is walled off from (x, y+1).
func (g *Grid) WallBottom(x, y int) (bool, error) {
	if !g.InBound(x, y) {
		return false, outOfBounds(x, y)
	}
	return g.cells[y][x].BottomWall, nil
}

// SetWallRight sets the wall between (x, y) and (x+1, y).
func (g *Grid) SetWallRight(x, y int, wall bool) error {
	if !g.InBound(x, y) {
		return outOfBounds(x, y)
	}
	g.cells[y][x].RightWall = wall
	return nil
}

// SetWallBottom sets the wall between (x, y) and (x, y+1).
func (g *Grid) SetWallBottom(x, y int, wall bool) error {
	if !g.InBound(x, y) {
		return outOfBounds(x, y)
	}
	g.cells[y][x].BottomWall = wall
	return nil
}

// Passages counts the open walls between cells. Wall bits on the right and
// bottom border are ignored.
func (g *Grid) Passages() int {
	count := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := &g.cells[y][x]
			if x+1 < g.width && !cell.RightWall {
				count++
			}
			if y+1 < g.height && !cell.BottomWall {
				count++
			}
		}
	}
	return count
}

// ResetSearch clears the back-pointers left behind by a previous search.
func (g *Grid) ResetSearch() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x].resetParent()
		}
	}
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	return g.render(nil)
}

// RenderPath draws the maze with the cells of path marked by '*'.
func (g *Grid) RenderPath(path Path) string {
	onPath := make(map[CellPosition]struct{}, len(path))
	for _, pos := range path {
		onPath[pos] = struct{}{}
	}
	return g.render(onPath)
}

func (g *Grid) render(onPath map[CellPosition]struct{}) string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for y := 0; y < g.height; y++ {
		cellRow := "|"
		wallRow := "+"
		for x := 0; x < g.width; x++ {
			cell := g.cells[y][x]

			if _, ok := onPath[CellPosition{X: x, Y: y}]; ok {
				cellRow += " * "
			} else {
				cellRow += "   "
			}

			if cell.RightWall || x == g.width-1 {
				cellRow += "|"
			} else {
				cellRow += " "
			}

			if cell.BottomWall || y == g.height-1 {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}

func outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
}
