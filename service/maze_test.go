package service

import (
	"context"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	pb "github.com/beka-birhanu/vinom-maze/maze/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mazeFixture struct {
	svc    *MazeService
	repo   *memMazeRepo
	cache  *memCache
	queue  *memQueue
	logger *recordingLogger
}

func newMazeFixture(t *testing.T, opts *Options) *mazeFixture {
	t.Helper()
	f := &mazeFixture{
		repo:   newMemMazeRepo(),
		cache:  newMemCache(),
		queue:  newMemQueue(),
		logger: &recordingLogger{},
	}
	svc, err := NewMazeService(&Config{
		Repo:    f.repo,
		Cache:   f.cache,
		Recent:  f.queue,
		Encoder: &pb.Protobuf{},
		Logger:  f.logger,
		Options: opts,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func ptr[T any](v T) *T { return &v }

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(nil)
	assert.ErrorIs(t, err, ErrNilDependency)

	_, err = NewMazeService(&Config{Repo: newMemMazeRepo()})
	assert.ErrorIs(t, err, ErrNilDependency)
}

func TestMazeServiceGenerate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("stores caches and indexes", func(t *testing.T) {
		f := newMazeFixture(t, nil)

		record, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 12, Height: 8, Seed: ptr(int64(31))})
		require.NoError(t, err)

		assert.Equal(t, owner, record.OwnerID)
		assert.Equal(t, 12, record.Width)
		assert.Equal(t, 8, record.Height)
		assert.Equal(t, maze.DefaultCellSize, record.CellSize)
		assert.Equal(t, int64(31), record.Seed)
		assert.InDelta(t, maze.DefaultRatio, record.Ratio, 1e-12)
		assert.Contains(t, f.repo.records, record.ID)
		assert.Contains(t, f.cache.records, record.ID)
		assert.Equal(t, int64(1), f.queue.Count(ctx, defaultRecentKey))

		grid, err := record.Grid()
		require.NoError(t, err)
		assert.NoError(t, maze.Validate(grid))
	})

	t.Run("same seed same maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)

		a, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 5, Height: 5, Seed: ptr(int64(7))})
		require.NoError(t, err)
		b, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 5, Height: 5, Seed: ptr(int64(7))})
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.Walls, b.Walls)
	})

	t.Run("defaults and seed function", func(t *testing.T) {
		f := newMazeFixture(t, &Options{SeedFunc: func() int64 { return 1234 }})

		record, err := f.svc.Generate(ctx, owner, i.GenerateRequest{})
		require.NoError(t, err)
		assert.Equal(t, maze.DefaultWidth, record.Width)
		assert.Equal(t, maze.DefaultHeight, record.Height)
		assert.Equal(t, int64(1234), record.Seed)
	})

	t.Run("custom ratio", func(t *testing.T) {
		f := newMazeFixture(t, nil)

		record, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 6, Height: 6, Ratio: ptr(0.8)})
		require.NoError(t, err)
		assert.InDelta(t, 0.8, record.Ratio, 1e-12)

		_, err = f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 6, Height: 6, Ratio: ptr(2.0)})
		assert.ErrorIs(t, err, maze.ErrInvalidRatio)
	})

	t.Run("rejects bad sizes", func(t *testing.T) {
		f := newMazeFixture(t, &Options{MaxDimension: 50})

		_, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 51, Height: 10})
		assert.ErrorIs(t, err, ErrMazeTooLarge)
		_, err = f.svc.Generate(ctx, owner, i.GenerateRequest{Width: -1, Height: 10})
		assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
		_, err = f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 10, Height: 10, CellSize: -2})
		assert.ErrorIs(t, err, ErrInvalidCellSize)
		assert.Empty(t, f.repo.records)
	})

	t.Run("repo failure is returned", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		f.repo.saveErr = errUnavailable

		_, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 3, Height: 3})
		assert.ErrorIs(t, err, errUnavailable)
		assert.Empty(t, f.cache.records)
	})

	t.Run("cache and index failures are tolerated", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		f.cache.setErr = errUnavailable
		f.queue.err = errUnavailable

		record, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 3, Height: 3})
		require.NoError(t, err)
		assert.Contains(t, f.repo.records, record.ID)
		assert.NotEmpty(t, f.logger.lines)
	})
}

func TestMazeServiceImport(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("perfect maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		grid, err := maze.New(6, 4, maze.NewSource(2))
		require.NoError(t, err)

		record, err := f.svc.Import(ctx, owner, grid.Rows(), 0)
		require.NoError(t, err)
		assert.True(t, record.Imported)
		assert.Equal(t, grid.Rows(), record.Walls)
		assert.Equal(t, maze.DefaultCellSize, record.CellSize)
		assert.Contains(t, f.repo.records, record.ID)
	})

	t.Run("maze with a loop", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		_, err := f.svc.Import(ctx, owner, []string{"01", "23"}, 3)
		assert.ErrorIs(t, err, maze.ErrNotPerfect)
		assert.Empty(t, f.repo.records)
	})

	t.Run("malformed rows", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		_, err := f.svc.Import(ctx, owner, []string{"01", "2"}, 3)
		assert.ErrorIs(t, err, maze.ErrMalformedEncoding)
	})

	t.Run("too large", func(t *testing.T) {
		f := newMazeFixture(t, &Options{MaxDimension: 2})
		_, err := f.svc.Import(ctx, owner, []string{"223"}, 3)
		assert.ErrorIs(t, err, ErrMazeTooLarge)
	})
}

func TestMazeServiceByID(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss fills the cache", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		grid, err := maze.New(4, 4, maze.NewSource(1))
		require.NoError(t, err)
		record := dmn.NewMazeRecord(uuid.New(), grid, 4)
		f.repo.records[record.ID] = record

		got, err := f.svc.ByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)
		assert.Contains(t, f.cache.records, record.ID)

		_, err = f.svc.ByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, f.repo.loads)
	})

	t.Run("cache failure falls back to repo", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		f.cache.getErr = errUnavailable
		grid, err := maze.New(2, 2, maze.NewSource(1))
		require.NoError(t, err)
		record := dmn.NewMazeRecord(uuid.New(), grid, 4)
		f.repo.records[record.ID] = record

		got, err := f.svc.ByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
	})

	t.Run("unknown maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		_, err := f.svc.ByID(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrMazeNotFound)
	})
}

func TestMazeServiceSolve(t *testing.T) {
	ctx := context.Background()
	f := newMazeFixture(t, nil)
	record, err := f.svc.Generate(ctx, uuid.New(), i.GenerateRequest{Width: 10, Height: 7, Seed: ptr(int64(5))})
	require.NoError(t, err)

	t.Run("corner to corner by default", func(t *testing.T) {
		path, err := f.svc.Solve(ctx, record.ID, nil, nil)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		assert.Equal(t, maze.CellPosition{X: 0, Y: 0}, path[0])
		assert.Equal(t, maze.CellPosition{X: 9, Y: 6}, path[len(path)-1])
	})

	t.Run("explicit endpoints", func(t *testing.T) {
		from := &maze.CellPosition{X: 3, Y: 3}
		to := &maze.CellPosition{X: 7, Y: 1}
		path, err := f.svc.Solve(ctx, record.ID, from, to)
		require.NoError(t, err)
		back, err := f.svc.Solve(ctx, record.ID, to, from)
		require.NoError(t, err)
		assert.Equal(t, path.Reversed(), back)
	})

	t.Run("endpoint outside the maze", func(t *testing.T) {
		_, err := f.svc.Solve(ctx, record.ID, &maze.CellPosition{X: 10, Y: 0}, nil)
		assert.ErrorIs(t, err, ErrInvalidEndpoints)
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("unknown maze", func(t *testing.T) {
		_, err := f.svc.Solve(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, dmn.ErrMazeNotFound)
	})
}

func TestMazeServiceBinary(t *testing.T) {
	ctx := context.Background()
	f := newMazeFixture(t, nil)
	record, err := f.svc.Generate(ctx, uuid.New(), i.GenerateRequest{Width: 8, Height: 3, CellSize: 6})
	require.NoError(t, err)

	payload, err := f.svc.Binary(ctx, record.ID)
	require.NoError(t, err)

	decoded, err := (&pb.Protobuf{}).UnmarshalMaze(payload)
	require.NoError(t, err)
	assert.Equal(t, record.Walls, decoded.Grid.Rows())
	assert.Equal(t, 6, decoded.CellSize)
	require.NotEmpty(t, decoded.Path)
	assert.Equal(t, maze.CellPosition{X: 7, Y: 2}, decoded.Path[len(decoded.Path)-1])
}

func TestMazeServiceRecent(t *testing.T) {
	ctx := context.Background()
	f := newMazeFixture(t, &Options{RecentLimit: 2})
	owner := uuid.New()

	var ids []uuid.UUID
	for n := 0; n < 3; n++ {
		record, err := f.svc.Generate(ctx, owner, i.GenerateRequest{Width: 3, Height: 3})
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}
	require.NoError(t, f.queue.Enqueue(ctx, defaultRecentKey, 1e30, "not-a-uuid", 3))

	records, err := f.svc.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, ids[2], records[0].ID)

	f.queue.err = errUnavailable
	_, err = f.svc.Recent(ctx)
	assert.ErrorIs(t, err, errUnavailable)
}
