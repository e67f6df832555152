// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements per-client rate limiting in front of the paid
// upstreams. Two stores are available:
//
//   - an in-memory token bucket per key (golang.org/x/time/rate) with
//     opportunistic garbage collection, for single-process deployments;
//   - a Redis fixed-window counter, shared by every replica, used when
//     REDIS_URL is configured. Redis failures fail open.
//
// The limiter is intended for abuse control and cost protection; it is not
// an authorization mechanism.
package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByIP keys buckets by client IP ("ip:<addr>"). The gateway has no user
// identity, so the address is the only stable key.
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// Store decides whether one more request for key is allowed now.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ---- in-memory token buckets ----

// visitor holds a single rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore is a per-key token-bucket store. Buckets are created on demand
// and idle ones are evicted after a TTL during lookups. It is safe for
// concurrent use.
type MemoryStore struct {
	rps      rate.Limit
	burst    int
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewMemoryStore builds a MemoryStore refilling rps tokens per second up to
// burst (values <= 0 are coerced to 1).
func NewMemoryStore(rps float64, burst int) *MemoryStore {
	if burst <= 0 {
		burst = 1
	}
	return &MemoryStore{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		ttl:      10 * time.Minute,
	}
}

// Allow implements Store.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	return s.getVisitor(key).Allow(), nil
}

// getVisitor returns (and updates) the limiter for key, creating it if
// absent. Every ~5000 lookups idle entries are evicted first, so a stale
// bucket can be dropped even when it is the one being fetched.
func (s *MemoryStore) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanupN++
	if s.cleanupN >= 5000 {
		for k, vv := range s.visitors {
			if now.Sub(vv.lastSeen) >= s.ttl {
				delete(s.visitors, k)
			}
		}
		s.cleanupN = 0
	}

	if v, ok := s.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// ---- Redis fixed window ----

// RedisStore allows burst requests per window of burst/rps seconds, which
// keeps the long-run rate at rps while permitting the same bursts as the
// in-memory store.
type RedisStore struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// NewRedisStore builds a RedisStore on rdb.
func NewRedisStore(rdb *redis.Client, rps float64, burst int) *RedisStore {
	if burst <= 0 {
		burst = 1
	}
	window := 24 * time.Hour
	if rps > 0 {
		window = time.Duration(math.Ceil(float64(burst) / rps * float64(time.Second)))
	}
	return &RedisStore{rdb: rdb, limit: int64(burst), window: window, prefix: "ratelimit:"}
}

// Allow implements Store.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	slot := time.Now().UnixNano() / int64(s.window)
	k := s.prefix + key + ":" + strconv.FormatInt(slot, 10)

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= s.limit, nil
}

// ---- middleware ----

// RateLimiter enforces a Store per request key.
type RateLimiter struct {
	store Store
	keyFn keyFunc
}

// NewRateLimiter constructs a RateLimiter over an in-memory token bucket.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	return NewRateLimiterWithStore(NewMemoryStore(rps, burst), keyFn)
}

// NewRateLimiterWithStore constructs a RateLimiter over any Store.
func NewRateLimiterWithStore(store Store, keyFn keyFunc) *RateLimiter {
	if keyFn == nil {
		keyFn = KeyByIP()
	}
	return &RateLimiter{store: store, keyFn: keyFn}
}

// Handler returns a Gin middleware that rejects requests over the limit:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 1
//	X-Error-Code: too_many_requests
//	{ "error": "rate limit exceeded" }
//
// Store errors are logged and the request is let through.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.keyFn(c)
		allowed, err := rl.store.Allow(c.Request.Context(), key)
		if err != nil {
			log.Ctx(c.Request.Context()).Warn().Err(err).Str("key", key).Msg("rate limit store unavailable; allowing request")
			allowed = true
		}
		if allowed {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.Header(errorCodeHeader, "too_many_requests")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
}
