package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"phishguard-lab/internal/config"
	"phishguard-lab/internal/domain/models"
	"phishguard-lab/pkg/logger"
)

// RedisCache wraps the Redis client with typed operations
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *logger.Logger
}

// NewRedis creates a new Redis client
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	log = log.WithComponent("redis")
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("connecting to Redis")

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Info().Msg("connected to Redis successfully")

	return &RedisCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    log,
	}, nil
}

// Client returns the underlying Redis client
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	c.logger.Info().Msg("closing Redis connection")
	return c.client.Close()
}

// key prepends the namespace prefix to a key
func (c *RedisCache) key(k string) string {
	return c.keyPrefix + k
}

// Get retrieves a value from cache
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.key(key)).Result()
}

// GetJSON retrieves and unmarshals a JSON value from cache
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Set stores a value in cache with optional TTL
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.key(key), value, ttl).Err()
}

// SetJSON marshals and stores a value in cache
func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Delete removes a key from cache
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = c.key(k)
	}
	return c.client.Del(ctx, prefixedKeys...).Err()
}

// Incr increments an integer value
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, c.key(key)).Result()
}

// Pipeline returns a Redis pipeline for batch operations
func (c *RedisCache) Pipeline() redis.Pipeliner {
	return c.client.Pipeline()
}

// Cache key constants
const (
	// Analysis result cache, keyed by message digest and profile
	KeyAnalysisPrefix = "cache:analysis:"

	// Rate limiting keys
	KeyRateLimitPrefix = "rate_limit:"

	// Recent threat events list
	KeyThreatHistory = "history:threats"

	// Stats keys
	KeyStats = "cache:stats"
)

// AnalysisCacheKey derives the cache key for a message/profile pair.
// Identical inputs always map to the same key.
func AnalysisCacheKey(text string, profile models.UserProfile) string {
	sum := sha256.Sum256([]byte(text + "|" + string(profile.RiskTolerance) + "|" + string(profile.Industry)))
	return KeyAnalysisPrefix + hex.EncodeToString(sum[:])
}

// CacheAnalysis stores a completed analysis result
func (c *RedisCache) CacheAnalysis(ctx context.Context, key string, result any, ttl time.Duration) error {
	return c.SetJSON(ctx, key, result, ttl)
}

// GetCachedAnalysis retrieves a cached analysis result
func (c *RedisCache) GetCachedAnalysis(ctx context.Context, key string, dest any) error {
	return c.GetJSON(ctx, key, dest)
}

// PushThreatEvent prepends a threat event to the shared history list,
// trimming it to the given capacity.
func (c *RedisCache) PushThreatEvent(ctx context.Context, event models.ThreatEvent, capacity int64) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal threat event: %w", err)
	}

	pipe := c.Pipeline()
	pipe.LPush(ctx, c.key(KeyThreatHistory), data)
	pipe.LTrim(ctx, c.key(KeyThreatHistory), 0, capacity-1)
	_, err = pipe.Exec(ctx)
	return err
}

// RecentThreatEvents returns the newest-first threat events, up to limit
func (c *RedisCache) RecentThreatEvents(ctx context.Context, limit int64) ([]models.ThreatEvent, error) {
	raw, err := c.client.LRange(ctx, c.key(KeyThreatHistory), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]models.ThreatEvent, 0, len(raw))
	for _, item := range raw {
		var event models.ThreatEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed history entry")
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// ClearThreatEvents removes the shared history list
func (c *RedisCache) ClearThreatEvents(ctx context.Context) error {
	return c.Delete(ctx, KeyThreatHistory)
}

// CheckRateLimit checks and increments the rate limit counter
// Returns (allowed, remaining, resetTime, error)
func (c *RedisCache) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, time.Time, error) {
	now := time.Now()
	windowKey := fmt.Sprintf("%s%s:%d", KeyRateLimitPrefix, key, now.Unix()/int64(window.Seconds()))

	pipe := c.Pipeline()
	incr := pipe.Incr(ctx, c.key(windowKey))
	pipe.Expire(ctx, c.key(windowKey), window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	count := incr.Val()
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := now.Add(window)

	return count <= limit, remaining, resetTime, nil
}
