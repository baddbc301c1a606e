package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 500
	defaultRecentKey    = "mazes:recent"
	defaultRecentLimit  = 20
)

var (
	ErrMazeTooLarge     = errors.New("maze dimensions exceed the limit")
	ErrInvalidCellSize  = errors.New("cell size must not be negative")
	ErrNilDependency    = errors.New("maze service dependency is missing")
	ErrInvalidEndpoints = errors.New("path endpoints outside the maze")
)

// Options tunes a MazeService. Zero values pick defaults.
type Options struct {
	MaxDimension int          // Largest accepted width or height
	RecentKey    string       // Key of the recent mazes index
	RecentLimit  int64        // Number of mazes kept in the recent index
	SeedFunc     func() int64 // Seed used when a request does not carry one
}

// Config holds the dependencies of a MazeService.
type Config struct {
	Repo    i.MazeRepo
	Cache   i.MazeCache
	Recent  i.SortedQueue
	Encoder i.MazeEncoder
	Logger  i.Logger
	Options *Options
}

// MazeService generates mazes, keeps them and answers path queries.
type MazeService struct {
	repo    i.MazeRepo
	cache   i.MazeCache
	recent  i.SortedQueue
	encoder i.MazeEncoder
	logger  i.Logger
	opts    *Options
}

var _ i.MazeService = &MazeService{}

// NewMazeService creates a MazeService from c.
func NewMazeService(c *Config) (*MazeService, error) {
	if c == nil || c.Repo == nil || c.Cache == nil || c.Recent == nil || c.Encoder == nil || c.Logger == nil {
		return nil, ErrNilDependency
	}

	opts := &Options{}
	if c.Options != nil {
		*opts = *c.Options
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}
	if opts.RecentKey == "" {
		opts.RecentKey = defaultRecentKey
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	if opts.SeedFunc == nil {
		opts.SeedFunc = rand.Int64
	}

	return &MazeService{
		repo:    c.Repo,
		cache:   c.Cache,
		recent:  c.Recent,
		encoder: c.Encoder,
		logger:  c.Logger,
		opts:    opts,
	}, nil
}

// Generate carves a new maze for owner and stores it.
func (s *MazeService) Generate(ctx context.Context, owner uuid.UUID, req i.GenerateRequest) (*dmn.MazeRecord, error) {
	width, height, cellSize := req.Width, req.Height, req.CellSize
	if width == 0 {
		width = maze.DefaultWidth
	}
	if height == 0 {
		height = maze.DefaultHeight
	}
	if cellSize == 0 {
		cellSize = maze.DefaultCellSize
	}
	if err := s.checkSize(width, height, cellSize); err != nil {
		return nil, err
	}

	seed := s.opts.SeedFunc()
	if req.Seed != nil {
		seed = *req.Seed
	}
	ratio := maze.DefaultRatio
	if req.Ratio != nil {
		ratio = *req.Ratio
	}

	grid, err := maze.New(width, height, maze.NewSource(seed), maze.WithRatio(ratio))
	if err != nil {
		return nil, err
	}

	record := dmn.NewMazeRecord(owner, grid, cellSize)
	record.Seed = seed
	record.Ratio = ratio

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Saving maze %s: %s", record.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Generated maze: ID=%s Size=%dx%d Seed=%d", record.ID, width, height, seed))
	s.remember(ctx, record)
	return record, nil
}

// Import stores a maze built elsewhere after checking that it is perfect.
func (s *MazeService) Import(ctx context.Context, owner uuid.UUID, walls []string, cellSize int) (*dmn.MazeRecord, error) {
	grid, err := maze.GridFromRows(walls)
	if err != nil {
		return nil, err
	}
	if cellSize == 0 {
		cellSize = maze.DefaultCellSize
	}
	if err := s.checkSize(grid.Width(), grid.Height(), cellSize); err != nil {
		return nil, err
	}
	if err := maze.Validate(grid); err != nil {
		return nil, err
	}

	record := dmn.NewMazeRecord(owner, grid, cellSize)
	record.Imported = true

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Saving imported maze %s: %s", record.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("Imported maze: ID=%s Size=%dx%d", record.ID, grid.Width(), grid.Height()))
	s.remember(ctx, record)
	return record, nil
}

// ByID returns the maze from the cache, falling back to the repository.
func (s *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Reading maze %s from cache: %s", id, err))
	}
	if record != nil {
		return record, nil
	}

	record, err = s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching maze %s: %s", id, err))
	}
	return record, nil
}

// Solve returns the path between two cells of a stored maze.
func (s *MazeService) Solve(ctx context.Context, id uuid.UUID, from, to *maze.CellPosition) (maze.Path, error) {
	record, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grid, err := record.Grid()
	if err != nil {
		s.logger.Error(fmt.Sprintf("Decoding stored maze %s: %s", id, err))
		return nil, err
	}

	start, goal := corners(grid)
	if from != nil {
		start = *from
	}
	if to != nil {
		goal = *to
	}

	path, err := maze.FindPath(grid, start, goal)
	if errors.Is(err, maze.ErrOutOfBounds) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoints, err)
	}
	if err != nil {
		s.logger.Error(fmt.Sprintf("Solving maze %s: %s", id, err))
		return nil, err
	}
	return path, nil
}

// Binary returns the wire encoding of a stored maze and its corner-to-corner path.
func (s *MazeService) Binary(ctx context.Context, id uuid.UUID) ([]byte, error) {
	record, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grid, err := record.Grid()
	if err != nil {
		return nil, err
	}

	start, goal := corners(grid)
	path, err := maze.FindPath(grid, start, goal)
	if err != nil {
		return nil, err
	}

	return s.encoder.MarshalMaze(grid, record.CellSize, path)
}

// Recent returns the latest mazes, newest first. Entries that can no longer
// be loaded are skipped.
func (s *MazeService) Recent(ctx context.Context) ([]*dmn.MazeRecord, error) {
	members, err := s.recent.Tops(ctx, s.opts.RecentKey, s.opts.RecentLimit)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Reading recent mazes: %s", err))
		return nil, err
	}

	records := make([]*dmn.MazeRecord, 0, len(members))
	for _, member := range members {
		id, err := uuid.Parse(member)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("Non-UUID value in recent mazes: %s", member))
			continue
		}

		record, err := s.ByID(ctx, id)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("Loading recent maze %s: %s", id, err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// remember caches a fresh record and indexes it as recent. Failures only
// cost speed, so they are logged and dropped.
func (s *MazeService) remember(ctx context.Context, record *dmn.MazeRecord) {
	if err := s.cache.Set(ctx, record); err != nil {
		s.logger.Warning(fmt.Sprintf("Caching maze %s: %s", record.ID, err))
	}

	score := float64(record.CreatedAt.UnixNano())
	if record.CreatedAt.IsZero() {
		score = float64(time.Now().UnixNano())
	}
	if err := s.recent.Enqueue(ctx, s.opts.RecentKey, score, record.ID.String(), s.opts.RecentLimit); err != nil {
		s.logger.Warning(fmt.Sprintf("Indexing maze %s as recent: %s", record.ID, err))
	}
}

func (s *MazeService) checkSize(width, height, cellSize int) error {
	if max(width, height) > s.opts.MaxDimension {
		return fmt.Errorf("%w: %dx%d, limit %d", ErrMazeTooLarge, width, height, s.opts.MaxDimension)
	}
	if cellSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCellSize, cellSize)
	}
	return nil
}

// corners returns the default endpoints of a path: top-left to bottom-right.
func corners(g *maze.Grid) (maze.CellPosition, maze.CellPosition) {
	return maze.CellPosition{X: 0, Y: 0}, maze.CellPosition{X: g.Width() - 1, Y: g.Height() - 1}
}
