package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(c echo.Context) string

func ClientIP(c echo.Context) string {
	return c.RealIP()
}

// RateLimiter allows limit requests per key in each fixed window.
func RateLimiter(limit int, window time.Duration, key KeyFunc) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	if key == nil {
		key = ClientIP
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep time.Time
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			k := key(c)

			mu.Lock()
			if now.Sub(lastSweep) > window {
				for id, b := range buckets {
					if now.Sub(b.start) > window {
						delete(buckets, id)
					}
				}
				lastSweep = now
			}

			b, ok := buckets[k]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[k] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
