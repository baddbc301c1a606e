package maze

// Defaults used when a caller leaves the maze options empty.
const (
	DefaultWidth    = 200
	DefaultHeight   = 150
	DefaultCellSize = 4
)

// Layout describes how a renderer should size the maze. CellSize is the
// inner size of a cell in pixels; walls are one pixel wide.
type Layout struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	CellSize int `json:"cell_size"`
}

// Layout returns the renderer layout of g for the given cell size.
func (g *Grid) Layout(cellSize int) Layout {
	return Layout{Width: g.width, Height: g.height, CellSize: cellSize}
}

// CanvasSize returns the pixel dimensions needed to draw every cell and the
// walls around it.
func (l Layout) CanvasSize() (int, int) {
	return l.Width*l.CellSize + l.Width + 1, l.Height*l.CellSize + l.Height + 1
}
