package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"slotboard/backend/config"
)

// Client wraps the redis connection. It backs the JWT token blacklist and
// the resolved week-schedule cache.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to redis and pings it once.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores a JWT ID until the token would have expired anyway.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── week-schedule cache ──
//
// Resolved week schedules are cached per timetable under a version counter.
// Any mutation bumps the counter, orphaning every cached week of that
// timetable at once; orphaned entries age out via TTL.

const (
	schedulePrefix  = "schedule:"
	scheduleVerSfx  = ":ver"
	scheduleHardTTL = time.Hour
)

func (c *Client) scheduleKey(ctx context.Context, timetableID string, year, week int) string {
	ver, err := c.rdb.Get(ctx, schedulePrefix+timetableID+scheduleVerSfx).Int64()
	if err != nil {
		ver = 0
	}
	return fmt.Sprintf("%s%s:v%d:%d-W%02d", schedulePrefix, timetableID, ver, year, week)
}

// GetWeekSchedule returns a cached serialized week schedule, if present.
func (c *Client) GetWeekSchedule(ctx context.Context, timetableID string, year, week int) ([]byte, bool) {
	data, err := c.rdb.Get(ctx, c.scheduleKey(ctx, timetableID, year, week)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetWeekSchedule caches a serialized week schedule with the configured TTL.
func (c *Client) SetWeekSchedule(ctx context.Context, timetableID string, year, week int, payload []byte, ttl time.Duration) {
	if ttl <= 0 || ttl > scheduleHardTTL {
		ttl = scheduleHardTTL
	}
	if err := c.rdb.Set(ctx, c.scheduleKey(ctx, timetableID, year, week), payload, ttl).Err(); err != nil {
		c.logger.Warn("cache week schedule failed", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

// InvalidateTimetable drops every cached week of one timetable by bumping
// its version counter.
func (c *Client) InvalidateTimetable(ctx context.Context, timetableID string) {
	if err := c.rdb.Incr(ctx, schedulePrefix+timetableID+scheduleVerSfx).Err(); err != nil {
		c.logger.Warn("invalidate schedule cache failed", zap.String("timetable_id", timetableID), zap.Error(err))
	}
}

// ── rate limiting ──

// CheckRateLimit implements a fixed-window counter for the rate limit
// middleware. Returns false once the window holds more than limit hits.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, "rate_limit:"+key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		c.rdb.Expire(ctx, "rate_limit:"+key, window)
	}
	return n <= int64(limit), nil
}

// Close shuts down the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
