package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"seatreservation/config"
	h "seatreservation/internal/delivery/http/helpers"

	"github.com/redis/go-redis/v9"
)

// RateDecision is the outcome of taking one token from a bucket.
type RateDecision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter takes a token from the bucket identified by key.
type RateLimiter interface {
	Take(ctx context.Context, key string) (RateDecision, error)
}

// tokenBucketScript refills by whole intervals, takes one token if available and
// reports {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
  tokens = math.min(capacity, tokens + intervals * refill_tokens)
  last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, tokens, retry_after_ms }
`)

type redisTokenBucket struct {
	client redis.Scripter
	cfg    config.RateLimitConfig
	now    func() time.Time
}

// NewRedisTokenBucket returns a RateLimiter whose buckets live in Redis, so every
// instance behind a load balancer shares the same budget.
func NewRedisTokenBucket(client redis.Scripter, cfg config.RateLimitConfig) RateLimiter {
	return &redisTokenBucket{client: client, cfg: cfg, now: time.Now}
}

func (b *redisTokenBucket) Take(ctx context.Context, key string) (RateDecision, error) {
	args := []any{
		b.now().UnixMilli(),
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL / time.Second),
	}
	vals, err := tokenBucketScript.Run(ctx, b.client, []string{key}, args...).Result()
	if err != nil {
		return RateDecision{}, fmt.Errorf("rate limit script: %w", err)
	}
	return parseBucketResult(vals)
}

func parseBucketResult(vals any) (RateDecision, error) {
	arr, ok := vals.([]any)
	if !ok || len(arr) != 3 {
		return RateDecision{}, fmt.Errorf("rate limit script: unexpected result %#v", vals)
	}
	return RateDecision{
		Allowed:    asInt64(arr[0]) == 1,
		Remaining:  asInt64(arr[1]),
		RetryAfter: time.Duration(asInt64(arr[2])) * time.Millisecond,
	}, nil
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// RateLimit returns a wrapper that charges one token per request. When the limiter
// itself fails the request is let through and the failure logged.
// A nil limiter or a disabled config yields a pass-through wrapper.
func RateLimit(limiter RateLimiter, cfg config.RateLimitConfig, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	if limiter == nil || !cfg.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(cfg, r)
			d, err := limiter.Take(r.Context(), key)
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable", "key", key, "err", err)
				next(w, r)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
			if !d.Allowed {
				secs := int(math.Ceil(d.RetryAfter.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.DebugContext(r.Context(), "rate limited", "key", key, "retry_after_s", secs)
				h.WriteJSONError(w, http.StatusTooManyRequests, h.ErrCodeTooManyRequests, "rate limit exceeded")
				return
			}
			next(w, r)
		}
	}
}

// rateKey builds the bucket key from the configured strategy. Requests reach the
// limiter after authentication, so the requester id is normally present.
func rateKey(cfg config.RateLimitConfig, r *http.Request) string {
	ip := clientIP(r)
	uid, ok := UserIDFromContext(r.Context())
	if !ok {
		uid = "anon"
	}
	route := r.Pattern
	if route == "" {
		route = r.Method + " " + r.URL.Path
	}

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", uid)
	case "ip_user":
		parts = append(parts, "ip", ip, "user", uid)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "ip_user_route":
		parts = append(parts, "ip", ip, "user", uid, "route", route)
	default:
		parts = append(parts, "user", uid, "route", route)
	}
	return strings.Join(parts, ":")
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	if r.RemoteAddr == "" {
		return "unknown"
	}
	return r.RemoteAddr
}
