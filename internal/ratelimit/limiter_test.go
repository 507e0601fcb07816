package ratelimit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestFixedWindowLimiter_NilClientAllows(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 3, time.Minute)
	for i := 0; i < 10; i++ {
		d, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
}

func TestFixedWindowLimiter_BlocksAfterLimit(t *testing.T) {
	mr, rdb := setupRedis(t)
	l := NewFixedWindowLimiter(rdb, 2, time.Minute)
	ctx := context.Background()

	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))

	// other keys are independent
	d, err = l.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	mr.FastForward(time.Minute + time.Second)
	d, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestFixedWindowLimiter_RedisDown(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()

	l := NewFixedWindowLimiter(rdb, 2, time.Minute)
	_, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	r.Header.Set("X-Real-IP", "5.6.7.8")
	assert.Equal(t, "ip:10.0.0.1", ClientIP(r))

	r.RemoteAddr = ""
	assert.Equal(t, "ip:unknown", ClientIP(r))
}

func TestClientIP_UsesPeerBeforeRealIP(t *testing.T) {
	var got string
	h := CapturePeer(middleware.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	})))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "ip:10.0.0.1", got)
}

func TestMiddleware_IgnoresRotatingForwardedFor(t *testing.T) {
	_, rdb := setupRedis(t)
	l := NewFixedWindowLimiter(rdb, 2, time.Minute)

	h := CapturePeer(middleware.RealIP(Middleware(l, "login", "slow down", nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))))

	codes := make([]int, 0, 4)
	for _, xff := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4"} {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusNoContent, http.StatusNoContent,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestMiddleware(t *testing.T) {
	_, rdb := setupRedis(t)
	l := NewFixedWindowLimiter(rdb, 1, time.Minute)

	h := Middleware(l, "login", "slow down", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slow down", body["message"])
}

func TestMiddleware_FailsOpen(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()
	l := NewFixedWindowLimiter(rdb, 1, time.Minute)

	h := Middleware(l, "login", "slow down", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
