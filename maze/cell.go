package maze

// unvisited marks a cell that the path search has not reached yet.
const unvisited = -1

// Cell represents a single cell in a maze grid.
// Walls are stored on the lower-indexed cell of each pair only, so a cell
// knows about its right and bottom sides.
type Cell struct {
	// RightWall indicates there is no passage to the cell on the right.
	RightWall bool
	// BottomWall indicates there is no passage to the cell below.
	BottomWall bool

	parentX int
	parentY int
}

// HasRightWall returns true if there is a wall on the right side of the cell.
func (c *Cell) HasRightWall() bool {
	return c.RightWall
}

// HasBottomWall returns true if there is a wall on the bottom side of the cell.
func (c *Cell) HasBottomWall() bool {
	return c.BottomWall
}

// bits packs the walls into the two-bit value used by the text encoding.
func (c *Cell) bits() byte {
	var b byte
	if c.RightWall {
		b |= rightWallBit
	}
	if c.BottomWall {
		b |= bottomWallBit
	}
	return b
}

func (c *Cell) visited() bool {
	return c.parentX != unvisited
}

func (c *Cell) resetParent() {
	c.parentX, c.parentY = unvisited, unvisited
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// adjacent reports whether p and o differ by exactly one step on one axis.
func (p CellPosition) adjacent(o CellPosition) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	return dx*dx+dy*dy == 1
}
