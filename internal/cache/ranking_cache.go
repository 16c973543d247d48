package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pokerdesk/club_ledger/internal/ranking"
	"github.com/pokerdesk/club_ledger/pkg/errors"
)

const rankingKey = "ranking:primary"

// RankingCache keeps the last computed ranking snapshot in Redis so repeated
// reads do not rescan the whole outcome history. Settlement invalidates it;
// staleness up to the TTL is acceptable by design of the ranking engine.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(url string, ttl time.Duration) (*RankingCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeValidation, "invalid redis url")
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to connect to redis")
	}

	return &RankingCache{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client (for testing).
func NewWithClient(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

func (c *RankingCache) Close() error {
	return c.client.Close()
}

// Get returns the cached rows, or (nil, nil) on a miss.
func (c *RankingCache) Get(ctx context.Context) ([]ranking.Row, error) {
	data, err := c.client.Get(ctx, rankingKey).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to read ranking cache")
	}

	var rows []ranking.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		// A corrupt entry is treated as a miss; the caller recomputes.
		return nil, nil
	}
	return rows, nil
}

// Set stores the rows with the configured TTL.
func (c *RankingCache) Set(ctx context.Context, rows []ranking.Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to encode ranking rows")
	}

	if err := c.client.Set(ctx, rankingKey, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to write ranking cache")
	}
	return nil
}

// Invalidate drops the snapshot. Called when a settlement lands.
func (c *RankingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rankingKey).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to invalidate ranking cache")
	}
	return nil
}
