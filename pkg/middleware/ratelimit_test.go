package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"theatre-booking/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func fire(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/theatre/reservations", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, utils.RateLimitConfig{Requests: 2, Window: time.Minute}, zap.NewNop())
	h := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusCreated, fire(t, h, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusCreated, fire(t, h, "10.0.0.1:5001").Code)

	rec := fire(t, h, "10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// other clients have their own window
	assert.Equal(t, http.StatusCreated, fire(t, h, "10.0.0.2:5000").Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusCreated, fire(t, h, "10.0.0.1:5003").Code)
}

func TestRateLimiter_FallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	t.Cleanup(func() { client.Close() })

	rl := NewRateLimiter(client, utils.RateLimitConfig{Requests: 1, Window: time.Hour}, zap.NewNop())
	h := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusCreated, fire(t, h, "10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusTooManyRequests, fire(t, h, "10.0.0.1:5000").Code)
}

func TestRateLimiter_LocalOnly(t *testing.T) {
	rl := NewRateLimiter(nil, utils.RateLimitConfig{Requests: 3, Window: time.Hour}, zap.NewNop())

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow(t.Context(), "user:a")
		require.True(t, allowed)
	}

	allowed, retryAfter := rl.Allow(t.Context(), "user:a")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))

	allowed, _ = rl.Allow(t.Context(), "user:b")
	assert.True(t, allowed)
}

func TestRateLimiter_LocalKeepsBucketAcrossCalls(t *testing.T) {
	rl := NewRateLimiter(nil, utils.RateLimitConfig{Requests: 1, Window: time.Hour}, zap.NewNop())

	allowed, _ := rl.Allow(t.Context(), "user:a")
	require.True(t, allowed)
	assert.Len(t, rl.local, 1)

	for i := 0; i < 5; i++ {
		allowed, _ = rl.Allow(t.Context(), "user:a")
		assert.False(t, allowed)
	}
	assert.Len(t, rl.local, 1)
}

func TestRateLimiter_PrunesIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(nil, utils.RateLimitConfig{Requests: 1, Window: time.Minute}, zap.NewNop())

	rl.Allow(t.Context(), "user:old")
	rl.local["user:old"].lastSeen = time.Now().Add(-3 * time.Minute)

	rl.Allow(t.Context(), "user:new")

	assert.NotContains(t, rl.local, "user:old")
	assert.Contains(t, rl.local, "user:new")
}
