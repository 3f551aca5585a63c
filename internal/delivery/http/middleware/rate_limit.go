package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pickme-backend/pkg/logger"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in fixed windows. It uses Redis when a client is given and falls
// back to process memory when Redis is missing or failing.
type RateLimiter struct {
	cfg    RateLimitConfig
	client *goredis.Client
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*rateLimitEntry
}

// AuthRateLimitConfig is the strict config for login and verification-code endpoints.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:auth:",
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// UploadRateLimitConfig limits uploads per signed-in account, falling back to the client IP.
func UploadRateLimitConfig(limit int) RateLimitConfig {
	if limit <= 0 {
		limit = 10
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    time.Minute,
		KeyPrefix: "rl:upload:",
		KeyFunc: func(c *gin.Context) string {
			if caller := Caller(c); caller != nil {
				return "account:" + strconv.FormatInt(caller.ID, 10)
			}
			return "ip:" + c.ClientIP()
		},
	}
}

func NewRateLimiter(cfg RateLimitConfig, client *goredis.Client) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg,
		client:  client,
		now:     time.Now,
		entries: make(map[string]*rateLimitEntry),
	}
}

// Middleware rejects requests over the limit with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.cfg.KeyPrefix + c.FullPath() + ":" + l.cfg.KeyFunc(c)

		count, resetAt := l.hit(c.Request.Context(), key)

		c.Header("X-RateLimit-Limit", strconv.Itoa(l.cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > l.cfg.Limit {
			retryAfter := max(1, int(resetAt.Sub(l.now()).Seconds()))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logger.Log.Warn("Rate limit exceeded",
				zap.String("path", c.FullPath()),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded. Please try again later."})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(l.cfg.Limit-count))
		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string) (int, time.Time) {
	if l.client != nil {
		count, resetAt, err := l.hitRedis(ctx, key)
		if err == nil {
			return count, resetAt
		}
		logger.Log.Warn("Rate limiter falling back to memory", zap.Error(err))
	}
	return l.hitMemory(key)
}

// hitRedis checks rate limit using Redis with atomic Lua script
func (l *RateLimiter) hitRedis(ctx context.Context, key string) (int, time.Time, error) {
	ttlSeconds := int(l.cfg.Window.Seconds())

	result, err := l.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), l.now().Add(time.Duration(ttl) * time.Second), nil
}

func (l *RateLimiter) hitMemory(key string) (int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		entry = &rateLimitEntry{resetAt: now.Add(l.cfg.Window)}
		l.entries[key] = entry
	}
	entry.count++

	// drop stale keys so the fallback map stays bounded by active clients
	if len(l.entries) > 10_000 {
		for k, e := range l.entries {
			if !now.Before(e.resetAt) {
				delete(l.entries, k)
			}
		}
	}
	return entry.count, entry.resetAt
}
