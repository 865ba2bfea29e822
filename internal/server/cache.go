package server

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// ScoreCache keeps the latest final scoreboard of each game.
type ScoreCache interface {
	CacheScores(ctx context.Context, gameID string, data []byte) error
	CachedScores(ctx context.Context, gameID string) ([]byte, bool, error)
}

// redisScoreCache stores scoreboards as JSON strings with a TTL.
type redisScoreCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (c redisScoreCache) CacheScores(ctx context.Context, gameID string, data []byte) error {
	return c.client.Set(ctx, c.prefix+gameID, data, c.ttl).Err()
}

func (c redisScoreCache) CachedScores(ctx context.Context, gameID string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+gameID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
