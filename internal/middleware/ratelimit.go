package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/booklyhq/bookly-api/internal/httperr"
)

// RateLimiter is a fixed-window limiter backed by Redis, shared across
// instances. On Redis failure it fails open: public availability lookups
// should not go down with the limiter.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	log    *slog.Logger
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, prefix string, log *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix, log: log}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.prefix + ":" + c.ClientIP()

		res, err := fixedWindowScript.Run(
			c.Request.Context(), rl.rdb,
			[]string{key}, rl.window.Milliseconds(),
		).Int64()

		if err != nil {
			if rl.log != nil {
				rl.log.Warn("rate limiter unavailable", "err", err)
			}
			c.Next()
			return
		}

		if res > int64(rl.limit) {
			httperr.TooManyRequests(c, "rate_limited", "Too many requests.")
			c.Abort()
			return
		}

		c.Next()
	}
}
