// Package domain holds the records persisted by the maze service.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
	ErrUserNotFound = errors.New("user not found")
)

// MazeRecord is a generated or imported maze together with what is needed to
// draw it. Walls holds the text encoding of the grid, one string per row.
type MazeRecord struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	OwnerID   uuid.UUID `bson:"ownerID" json:"owner_id"`
	Width     int       `bson:"width" json:"width"`
	Height    int       `bson:"height" json:"height"`
	CellSize  int       `bson:"cellSize" json:"cell_size"`
	Seed      int64     `bson:"seed" json:"seed"`
	Ratio     float64   `bson:"ratio" json:"ratio"`
	Imported  bool      `bson:"imported" json:"imported"`
	Walls     []string  `bson:"walls" json:"walls"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// NewMazeRecord captures a grid for storage.
func NewMazeRecord(owner uuid.UUID, g *maze.Grid, cellSize int) *MazeRecord {
	return &MazeRecord{
		ID:        uuid.New(),
		OwnerID:   owner,
		Width:     g.Width(),
		Height:    g.Height(),
		CellSize:  cellSize,
		Walls:     g.Rows(),
		CreatedAt: time.Now().UTC(),
	}
}

// Grid rebuilds the maze grid from the stored walls.
func (r *MazeRecord) Grid() (*maze.Grid, error) {
	return maze.GridFromRows(r.Walls)
}

// Layout returns the renderer layout of the record.
func (r *MazeRecord) Layout() maze.Layout {
	return maze.Layout{Width: r.Width, Height: r.Height, CellSize: r.CellSize}
}
