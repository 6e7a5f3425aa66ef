package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"theatre-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter counts requests per caller in fixed windows stored in Redis.
// When Redis is not configured or fails, it falls back to in-process token
// buckets so a cache outage never blocks reservations.
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	local map[string]*localLimiter
}

type localLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(client *redis.Client, config utils.RateLimitConfig, log *zap.Logger) *RateLimiter {
	requests := config.Requests
	if requests <= 0 {
		requests = 30
	}
	window := config.Window
	if window <= 0 {
		window = time.Minute
	}

	return &RateLimiter{
		client:   client,
		requests: requests,
		window:   window,
		log:      log.With(zap.String("middleware", "ratelimit")),
		local:    make(map[string]*localLimiter),
	}
}

// Allow reports whether key may make another request and, if not, how long
// it should wait.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	if rl.client != nil {
		allowed, retryAfter, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed, retryAfter
		}
		rl.log.Warn("Redis rate limit failed, using local limiter", zap.Error(err))
	}

	return rl.allowLocal(key)
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := rateLimitPrefix + key

	count, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, 0, err
		}
	}

	if count <= int64(rl.requests) {
		return true, 0, nil
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if ttl < 0 {
		// key lost its expiry; restart the window
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, 0, err
		}
		ttl = rl.window
	}

	return false, ttl, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.local[key]
	if !ok {
		rl.pruneLocked(now)
		entry = &localLimiter{
			limiter: rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.requests)), rl.requests),
		}
		rl.local[key] = entry
	}
	entry.lastSeen = now

	reservation := entry.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, delay
}

// pruneLocked drops limiters idle for more than two windows.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	for key, entry := range rl.local {
		if now.Sub(entry.lastSeen) > 2*rl.window {
			delete(rl.local, key)
		}
	}
}

// Middleware keys callers by user id when authenticated, else by client IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "ip:" + clientIP(r)
		if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
			key = "user:" + userID.String()
		}

		allowed, retryAfter := rl.Allow(r.Context(), key)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.requests))
		if !allowed {
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			rl.log.Warn("Rate limit exceeded", zap.String("key", key), zap.String("path", r.URL.Path))
			utils.ResponseTooManyRequests(w, "Request was throttled. Expected available in "+strconv.Itoa(seconds)+" seconds.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
