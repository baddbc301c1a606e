package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest holds the options of a new maze. Zero values pick defaults.
type GenerateRequest struct {
	Width    int
	Height   int
	CellSize int
	Seed     *int64
	Ratio    *float64
}

// MazeService generates, stores and solves mazes.
type MazeService interface {
	Generate(ctx context.Context, owner uuid.UUID, req GenerateRequest) (*dmn.MazeRecord, error)
	Import(ctx context.Context, owner uuid.UUID, walls []string, cellSize int) (*dmn.MazeRecord, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)

	// Solve finds the path between from and to. A nil endpoint defaults to
	// the top-left (from) or bottom-right (to) corner.
	Solve(ctx context.Context, id uuid.UUID, from, to *maze.CellPosition) (maze.Path, error)

	// Binary returns the wire encoding of the maze with its corner-to-corner path.
	Binary(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Recent returns the latest mazes, newest first.
	Recent(ctx context.Context) ([]*dmn.MazeRecord, error)
}

// MazeEncoder encodes a maze for renderers.
type MazeEncoder interface {
	MarshalMaze(g *maze.Grid, cellSize int, path maze.Path) ([]byte, error)
}
