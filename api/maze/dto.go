// Package mazeapi exposes maze generation, storage and solving over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest is the body of a maze generation request. Omitted fields
// take the service defaults.
type GenerateRequest struct {
	Width    int      `json:"width" binding:"gte=0"`
	Height   int      `json:"height" binding:"gte=0"`
	CellSize int      `json:"cell_size" binding:"gte=0"`
	Seed     *int64   `json:"seed"`
	Ratio    *float64 `json:"ratio" binding:"omitempty,gte=0,lte=1"`
}

// ImportRequest carries a maze in its text encoding, one string per row.
type ImportRequest struct {
	Walls    []string `json:"walls" binding:"required,min=1"`
	CellSize int      `json:"cell_size" binding:"gte=0"`
}

// PathQuery holds the optional endpoints of a path request.
type PathQuery struct {
	FromX *int `form:"from_x"`
	FromY *int `form:"from_y"`
	ToX   *int `form:"to_x"`
	ToY   *int `form:"to_y"`
}

// MazeResponse describes a stored maze and the canvas needed to draw it.
type MazeResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CellSize     int       `json:"cell_size"`
	CanvasWidth  int       `json:"canvas_width"`
	CanvasHeight int       `json:"canvas_height"`
	Seed         int64     `json:"seed"`
	Ratio        float64   `json:"ratio"`
	Imported     bool      `json:"imported"`
	Walls        []string  `json:"walls"`
	CreatedAt    time.Time `json:"created_at"`
}

// MazeSummary is the short form used in listings.
type MazeSummary struct {
	ID        uuid.UUID `json:"id"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Imported  bool      `json:"imported"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentResponse lists the latest mazes, newest first.
type RecentResponse struct {
	Mazes []MazeSummary `json:"mazes"`
}

// PathResponse is a path from its first to its last cell.
type PathResponse struct {
	Length int                 `json:"length"`
	Path   []maze.CellPosition `json:"path"`
}

func newMazeResponse(r *dmn.MazeRecord) *MazeResponse {
	canvasWidth, canvasHeight := r.Layout().CanvasSize()
	return &MazeResponse{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Width:        r.Width,
		Height:       r.Height,
		CellSize:     r.CellSize,
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		Seed:         r.Seed,
		Ratio:        r.Ratio,
		Imported:     r.Imported,
		Walls:        r.Walls,
		CreatedAt:    r.CreatedAt,
	}
}

func newMazeSummary(r *dmn.MazeRecord) MazeSummary {
	return MazeSummary{
		ID:        r.ID,
		Width:     r.Width,
		Height:    r.Height,
		Imported:  r.Imported,
		CreatedAt: r.CreatedAt,
	}
}
