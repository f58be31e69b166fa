package middlewares

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/miharina-tech/miharina_backend/config"
	"github.com/miharina-tech/miharina_backend/utils"
)

// Limiter decides whether a key may make another request in the current
// window. retryAfter is meaningful only when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// memoryLimiter is a rolling-window counter per key. Single-instance only;
// deployments with more than one replica should use the Redis variant.
type memoryLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	entries map[string][]time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) Limiter {
	return &memoryLimiter{
		window:  window,
		limit:   limit,
		entries: map[string][]time.Time{},
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-l.window)

	kept := l.entries[key][:0]
	for _, t := range l.entries[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.entries[key] = kept
		return false, kept[0].Sub(cutoff), nil
	}

	l.entries[key] = append(kept, now)
	return true, 0, nil
}

// redisLimiter uses INCR + EXPIRE, one counter per key per window.
type redisLimiter struct {
	window time.Duration
	limit  int
}

func NewRedisLimiter(limit int, window time.Duration) Limiter {
	return &redisLimiter{window: window, limit: limit}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rdb := config.GetRedisDB()
	if rdb == nil {
		return true, 0, nil
	}

	redisKey := "ratelimit:" + key
	count, err := rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		// fail open: a Redis outage should not take the API down
		return true, 0, err
	}
	if count == 1 {
		rdb.Expire(ctx, redisKey, l.window)
	}
	if count > int64(l.limit) {
		ttl, _ := rdb.TTL(ctx, redisKey).Result()
		if ttl < 0 {
			ttl = l.window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

// LimiterFromEnv picks the backend (RATE_LIMIT_BACKEND=redis|memory) and
// bounds (RATE_LIMIT_MAX requests per RATE_LIMIT_WINDOW_SECONDS).
func LimiterFromEnv() Limiter {
	limit := 100
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_MAX")); err == nil && v > 0 {
		limit = v
	}
	window := 15 * time.Minute
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_WINDOW_SECONDS")); err == nil && v > 0 {
		window = time.Duration(v) * time.Second
	}

	if os.Getenv("RATE_LIMIT_BACKEND") == "redis" {
		return NewRedisLimiter(limit, window)
	}
	return NewMemoryLimiter(limit, window)
}

// RateLimiter keys by authenticated uid when present, client IP otherwise.
// Health checks and CORS preflight are exempt.
func RateLimiter(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/healthz" || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		key := c.ClientIP()
		if uid, ok := utils.GetUidFromContext(c.Request.Context()); ok {
			key = uid
		}

		allowed, retryAfter, _ := limiter.Allow(c.Request.Context(), key)
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			lang := requestLanguage(c)
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":      utils.MsgTooManyRequests.ForLanguage(lang),
				"error_fr":   utils.MsgTooManyRequests.Fr,
				"error_mg":   utils.MsgTooManyRequests.Mg,
				"error_en":   utils.MsgTooManyRequests.En,
				"retryAfter": seconds,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
