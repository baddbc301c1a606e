// Package cache keeps maze records in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const mazeKeyFmt = "%s:maze:%s"

// RedisMazeCache stores JSON encoded maze records under a key prefix.
type RedisMazeCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ i.MazeCache = &RedisMazeCache{}

// NewRedisMazeCache creates a cache whose entries live for ttlSeconds.
func NewRedisMazeCache(client *redis.Client, prefix string, ttlSeconds int) *RedisMazeCache {
	return &RedisMazeCache{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get returns the cached record, or nil when it is not cached.
func (c *RedisMazeCache) Get(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record dmn.MazeRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decoding cached maze %s: %w", id, err)
	}
	return &record, nil
}

// Set caches the record, replacing any previous entry.
func (c *RedisMazeCache) Set(ctx context.Context, record *dmn.MazeRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(record.ID), raw, c.ttl).Err()
}

func (c *RedisMazeCache) key(id uuid.UUID) string {
	return fmt.Sprintf(mazeKeyFmt, c.prefix, id)
}
