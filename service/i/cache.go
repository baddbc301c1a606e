package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeCache keeps recently used maze records close at hand.
type MazeCache interface {
	// Get returns nil and no error on a miss.
	Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
	Set(ctx context.Context, record *dmn.MazeRecord) error
}

// SortedQueue is a capped set of members ordered by score.
type SortedQueue interface {
	// Enqueue adds member with score and drops the lowest scores beyond limit.
	Enqueue(ctx context.Context, queueKey string, score float64, member string, limit int64) error

	// Tops returns up to amount members with the highest scores, highest first.
	Tops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members in the queue.
	Count(ctx context.Context, queueKey string) int64
}
