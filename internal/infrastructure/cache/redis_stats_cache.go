package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rivalioo/internal/domain/entity"
	"rivalioo/pkg/logger"
)

const (
	snapshotKey     = "stream_stats:snapshot"
	defaultCacheTTL = 10 * time.Minute
)

// RedisStatsCache stores the latest stream stats snapshot so a restarted or
// second instance can serve stats before its first poll completes.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings, giving up after five seconds.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

// LoadSnapshot returns nil, nil on a cache miss.
func (c *RedisStatsCache) LoadSnapshot(ctx context.Context) (*entity.StreamSnapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		logger.Debug("Stats cache miss")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats snapshot: %w", err)
	}

	snapshot := entity.NewStreamSnapshot()
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode stats snapshot: %w", err)
	}
	return snapshot, nil
}

func (c *RedisStatsCache) SaveSnapshot(ctx context.Context, snapshot *entity.StreamSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write stats snapshot: %w", err)
	}
	return nil
}
