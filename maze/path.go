package maze

import (
	"fmt"
	"slices"
)

// Path is an ordered list of cell positions where every two consecutive
// positions are joined by a passage.
type Path []CellPosition

// Reversed returns a copy of the path in the opposite order.
func (p Path) Reversed() Path {
	reversed := slices.Clone(p)
	slices.Reverse(reversed)
	return reversed
}

// directions are the axis-aligned steps tried from every cell, in order.
var directions = [4]CellPosition{
	{X: 0, Y: 1},
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
}

// FindPath returns the path from start to goal, both included.
//
// The search is breadth first and records back-pointers in the cells of g,
// overwriting whatever a previous search left there. Since a generated
// maze is a tree the returned path is the only simple one.
func FindPath(g *Grid, start, goal CellPosition) (Path, error) {
	if !g.InBound(start.X, start.Y) {
		return nil, outOfBounds(start.X, start.Y)
	}
	if !g.InBound(goal.X, goal.Y) {
		return nil, outOfBounds(goal.X, goal.Y)
	}

	g.ResetSearch()
	g.cells[start.Y][start.X].parentX = start.X
	g.cells[start.Y][start.X].parentY = start.Y

	reached := false
	queue := []CellPosition{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			reached = true
			break
		}

		for _, dir := range directions {
			next := CellPosition{X: current.X + dir.X, Y: current.Y + dir.Y}
			if !g.Connected(current, next) {
				continue
			}

			cell := &g.cells[next.Y][next.X]
			if cell.visited() {
				continue
			}
			cell.parentX = current.X
			cell.parentY = current.Y
			queue = append(queue, next)
		}
	}

	if !reached {
		return nil, fmt.Errorf("%w: (%d, %d) -> (%d, %d)", ErrNoPathFound, start.X, start.Y, goal.X, goal.Y)
	}

	// Walk the back-pointers from the goal, then flip.
	var path Path
	for pos := goal; pos != start; {
		path = append(path, pos)
		cell := &g.cells[pos.Y][pos.X]
		pos = CellPosition{X: cell.parentX, Y: cell.parentY}
	}
	path = append(path, start)
	slices.Reverse(path)

	return path, nil
}

// Connected reports whether a and b are neighbors inside the grid with no
// wall between them.
func (g *Grid) Connected(a, b CellPosition) bool {
	if !g.InBound(a.X, a.Y) || !g.InBound(b.X, b.Y) || !a.adjacent(b) {
		return false
	}

	switch {
	case b.X > a.X:
		return !g.cells[a.Y][a.X].RightWall
	case b.Y > a.Y:
		return !g.cells[a.Y][a.X].BottomWall
	case b.X < a.X:
		return !g.cells[b.Y][b.X].RightWall
	default:
		return !g.cells[b.Y][b.X].BottomWall
	}
}
