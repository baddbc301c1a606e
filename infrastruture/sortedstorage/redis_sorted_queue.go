package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedQueue manages capped sorted sets in Redis with TTL support.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

var _ i.SortedQueue = &RedisSortedQueue{}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) *RedisSortedQueue {
	return &RedisSortedQueue{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Enqueue adds a member with a given score, drops the lowest scores beyond
// limit and refreshes the expiration of the set.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string, limit int64) error {
	mutex := rsq.locker.NewMutex(queueKey + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	_, err := rsq.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member})
		if limit > 0 {
			// Ranks are ascending: keep the top limit members only.
			pipe.ZRemRangeByRank(ctx, queueKey, 0, -limit-1)
		}
		if rsq.ttl > 0 {
			pipe.Expire(ctx, queueKey, rsq.ttl)
		}
		return nil
	})
	return err
}

// Tops retrieves up to amount members with the highest scores.
func (rsq *RedisSortedQueue) Tops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	if amount <= 0 {
		return nil, nil
	}
	return rsq.client.ZRevRange(ctx, queueKey, 0, amount-1).Result()
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
