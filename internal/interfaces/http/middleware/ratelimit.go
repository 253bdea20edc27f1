package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// staticSuffixes are asset paths exempt from rate limiting
var staticSuffixes = []string{".css", ".js", ".png", ".jpg", ".svg", ".ico", ".woff2"}

// RateLimiter is a per-client fixed-window rate limiter
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per period
// per client. A background sweep drops idle windows.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for key, w := range rl.windows {
			if now.After(w.resetAt) {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// take consumes one slot for the client and reports the remainder
func (rl *RateLimiter) take(key string) (allowed bool, remaining int) {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(rl.period)}
		rl.windows[key] = w
	}
	if w.count >= rl.limit {
		return false, 0
	}
	w.count++
	return true, rl.limit - w.count
}

// Middleware enforces the limit on API routes. Static assets pass
// through uncounted.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, suffix := range staticSuffixes {
			if strings.HasSuffix(path, suffix) {
				c.Next()
				return
			}
		}

		allowed, remaining := rl.take(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeRateLimited, "Too many requests. Please slow down"))
			return
		}
		c.Next()
	}
}
