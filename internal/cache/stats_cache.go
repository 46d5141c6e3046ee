package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsTTL = 5 * time.Minute

// StatsCache keeps the aggregate read endpoints (user distributions, events
// per month) off the database between writes. Values are JSON-encoded with a
// short TTL; writers invalidate the affected keys.
type StatsCache interface {
	GetDistribution(ctx context.Context, field string) (map[string]int, bool, error)
	SetDistribution(ctx context.Context, field string, distribution map[string]int) error
	GetTotalUsers(ctx context.Context) (int, bool, error)
	SetTotalUsers(ctx context.Context, total int) error
	GetMonthCounts(ctx context.Context) ([]byte, bool, error)
	SetMonthCounts(ctx context.Context, payload []byte) error
	InvalidateUserStats(ctx context.Context) error
	InvalidateEventStats(ctx context.Context) error
}

type StatsCacheImpl struct {
	client *redis.Client
}

func NewStatsCache(client *redis.Client) StatsCache {
	return &StatsCacheImpl{
		client: client,
	}
}

func (c *StatsCacheImpl) distributionKey(field string) string {
	return fmt.Sprintf("stats:users:%s", field)
}

func (c *StatsCacheImpl) monthCountsKey() string {
	return "stats:events:by-month"
}

func (c *StatsCacheImpl) GetDistribution(ctx context.Context, field string) (map[string]int, bool, error) {
	val, err := c.client.Get(ctx, c.distributionKey(field)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var distribution map[string]int
	if err := json.Unmarshal([]byte(val), &distribution); err != nil {
		return nil, false, fmt.Errorf("invalid cached distribution: %w", err)
	}
	return distribution, true, nil
}

func (c *StatsCacheImpl) SetDistribution(ctx context.Context, field string, distribution map[string]int) error {
	payload, err := json.Marshal(distribution)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.distributionKey(field), payload, statsTTL).Err()
}

func (c *StatsCacheImpl) totalUsersKey() string {
	return "stats:users:total"
}

func (c *StatsCacheImpl) GetTotalUsers(ctx context.Context) (int, bool, error) {
	val, err := c.client.Get(ctx, c.totalUsersKey()).Int()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func (c *StatsCacheImpl) SetTotalUsers(ctx context.Context, total int) error {
	return c.client.Set(ctx, c.totalUsersKey(), total, statsTTL).Err()
}

func (c *StatsCacheImpl) GetMonthCounts(ctx context.Context) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.monthCountsKey()).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *StatsCacheImpl) SetMonthCounts(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, c.monthCountsKey(), payload, statsTTL).Err()
}

func (c *StatsCacheImpl) InvalidateUserStats(ctx context.Context) error {
	keys := []string{
		c.distributionKey("gender"),
		c.distributionKey("osigd"),
		c.distributionKey("migrant"),
		c.distributionKey("leader"),
		c.totalUsersKey(),
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *StatsCacheImpl) InvalidateEventStats(ctx context.Context) error {
	return c.client.Del(ctx, c.monthCountsKey()).Err()
}
