package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akozyrev/folio/internal/handlers/render"
)

type RateLimitConfig struct {
	// Window length and allowed requests per window per client IP
	Window time.Duration
	Max    int

	// Key prefix distinguishing limiters, e.g. "ratelimit:login"
	Prefix string
}

// RateLimitMiddleware is a fixed window counter in redis, keyed by client
// IP. When redis is unreachable the limiter fails open: losing the
// protective layer is preferable to locking every client out
func RateLimitMiddleware(cfg RateLimitConfig, rdb *redis.Client, l logSink) func(http.Handler) http.Handler {
	// A window below one second would zero the divisor in the window number
	if rdb == nil || cfg.Max <= 0 || cfg.Window < time.Second {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			window := time.Now().Unix() / int64(cfg.Window/time.Second)
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, clientIP(r), window)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				l.Warn("rate limiter unavailable, failing open", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				_ = rdb.Expire(r.Context(), key, cfg.Window).Err()
			}

			remaining := int64(cfg.Max) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Max) {
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window/time.Second)))
				render.ServiceError(w, "Too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
