package ratelimit

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/georgemunganga/praktikum-backend/internal/apperr"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// incrScript bumps the counter and starts the window on the first hit.
// Returns {count, ttl_ms}.
var incrScript = redis.NewScript(`
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// FixedWindowLimiter counts hits per key in Redis over a fixed window.
// A nil client disables limiting.
type FixedWindowLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewFixedWindowLimiter(rdb *redis.Client, limit int, window time.Duration) *FixedWindowLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &FixedWindowLimiter{rdb: rdb, limit: limit, window: window}
}

// Allow records one hit for key.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.rdb == nil || l.limit <= 0 {
		return Decision{Allowed: true, Remaining: l.limit}, nil
	}

	res, err := incrScript.Run(ctx, l.rdb, []string{key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit eval: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("ratelimit eval: unexpected result %v", res)
	}

	count := int(res[0])
	d := Decision{
		Allowed:   count <= l.limit,
		Remaining: max(0, l.limit-count),
	}
	if !d.Allowed {
		d.RetryAfter = time.Duration(res[1]) * time.Millisecond
		if d.RetryAfter <= 0 {
			d.RetryAfter = l.window
		}
	}
	return d, nil
}

// KeyFunc derives the limiter key from a request.
type KeyFunc func(*http.Request) string

type peerKey struct{}

// CapturePeer records the connection's remote address. Mount it before
// middleware.RealIP, which rewrites RemoteAddr from forwarding headers.
func CapturePeer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP keys by the connection's peer address. Forwarding headers are
// client-controlled and never used.
func ClientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if peer, ok := r.Context().Value(peerKey{}).(string); ok {
		addr = peer
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if host == "" {
		return "ip:unknown"
	}
	return "ip:" + host
}

// Middleware rejects requests over the limit with 429. Redis failures fail open.
func Middleware(l *FixedWindowLimiter, route, message string, key KeyFunc) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientIP
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := l.Allow(r.Context(), "rl:"+route+":"+key(r))
			if err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Str("route", route).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				apperr.Write(w, apperr.NewTooManyRequests(message), false)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
