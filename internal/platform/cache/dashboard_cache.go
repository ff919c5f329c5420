// Package cache holds the Redis-backed read caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/fuelstation_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/fuelstation_backend/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const (
	DashboardCountsKey     = "credits:dashboard:counts"
	DashboardGenerationKey = "credits:dashboard:generation"
)

// setIfGeneration writes KEYS[2] only while KEYS[1] still holds ARGV[1].
// ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// RedisDashboardCache stores dashboard counts as JSON with a short TTL.
// A nil client turns every call into a no-op miss.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.DashboardCache = (*RedisDashboardCache)(nil)

// NewRedisClient connects to addr and pings it. On failure the client is
// closed and the error returned so the caller can run without a cache.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address not configured")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{client: client, ttl: ttl}
}

// GetDashboardCounts returns nil, nil on a miss.
func (c *RedisDashboardCache) GetDashboardCounts(ctx context.Context) (*domain.DashboardCounts, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, DashboardCountsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	var counts domain.DashboardCounts
	if err := json.Unmarshal(data, &counts); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = c.client.Del(ctx, DashboardCountsKey).Err()
		return nil, nil
	}
	return &counts, nil
}

// DashboardGeneration returns the current invalidation generation, 0 before
// the first invalidation.
func (c *RedisDashboardCache) DashboardGeneration(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, DashboardGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read dashboard cache generation: %w", err)
	}
	return gen, nil
}

// SetDashboardCounts stores counts unless the generation moved past generation.
func (c *RedisDashboardCache) SetDashboardCounts(ctx context.Context, counts domain.DashboardCounts, generation int64) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return false, fmt.Errorf("failed to encode dashboard counts: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{DashboardGenerationKey, DashboardCountsKey},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return stored == 1, nil
}

// InvalidateDashboard bumps the generation and drops the cached counts in one
// transaction.
func (c *RedisDashboardCache) InvalidateDashboard(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, DashboardGenerationKey)
		pipe.Del(ctx, DashboardCountsKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}
