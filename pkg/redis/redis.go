package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"lectio/backend/config"
)

// Client wraps the Redis connection. It backs the course-module hours cache
// and the API rate limiter; callers treat a nil *Client as "cache disabled".
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and pings it once.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connect: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Hours-info cache ──

const hoursPrefix = "lesson:hours:"

// hoursTTL bounds staleness if an invalidation is ever missed.
const hoursTTL = 10 * time.Minute

// GetHoursInfo reads a cached hours snapshot for a course module into dest.
// Returns false on miss.
func (c *Client) GetHoursInfo(ctx context.Context, courseModuleID uint, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf("%s%d", hoursPrefix, courseModuleID)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetHoursInfo caches an hours snapshot for a course module.
func (c *Client) SetHoursInfo(ctx context.Context, courseModuleID uint, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf("%s%d", hoursPrefix, courseModuleID), raw, hoursTTL).Err()
}

// InvalidateHoursInfo drops the cached snapshot after a lesson write.
func (c *Client) InvalidateHoursInfo(ctx context.Context, courseModuleID uint) error {
	return c.rdb.Del(ctx, fmt.Sprintf("%s%d", hoursPrefix, courseModuleID)).Err()
}

// ── Rate limiting ──

// CheckRateLimit implements a fixed-window counter keyed by caller+route.
// Returns false when the window's request budget is exhausted.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
