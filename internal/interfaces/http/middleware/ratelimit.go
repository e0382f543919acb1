package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SiteOrganizo/organize-your-catalog/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per key in fixed windows held in memory.
// Each replica limits on its own.
type RateLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	windows  map[string]*fixedWindow
	stop     chan struct{}
	stopOnce sync.Once
}

type fixedWindow struct {
	start time.Time
	used  int
}

// Decision is the outcome of one Take
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // until the window resets; set when not allowed
}

// NewRateLimiter starts a limiter and its sweeper. Stop releases the sweeper.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*fixedWindow),
		stop:    make(chan struct{}),
	}
	go rl.sweep(2 * window)
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// sweep drops windows that ended long enough ago to be irrelevant
func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, w := range rl.windows {
				if now.Sub(w.start) > 2*rl.window {
					delete(rl.windows, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Take consumes one request for key when the window has room
func (rl *RateLimiter) Take(key string) Decision {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.window {
		w = &fixedWindow{start: now}
		rl.windows[key] = w
	}
	if w.used >= rl.limit {
		return Decision{RetryAfter: w.start.Add(rl.window).Sub(now)}
	}
	w.used++
	return Decision{Allowed: true, Remaining: rl.limit - w.used}
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.Take(key).Allowed
}

// Remaining reports the requests key may still make in its current window
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || time.Since(w.start) >= rl.window {
		return rl.limit
	}
	return rl.limit - w.used
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		return c.ClientIP()
	})
}

// RateLimitByKey limits requests per key returned by keyFunc
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return limitBy(limiter, keyFunc, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
}

// AuthRateLimit is the stricter per-IP limiter for sign-up, sign-in and
// refresh. Its keys are prefixed so they never collide with the global
// limiter when both share a RateLimiter.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return limitBy(limiter, func(c *gin.Context) string {
		return "auth:" + c.ClientIP()
	}, dto.ErrCodeAuthRateLimited, "Too many authentication attempts. Please try again later.")
}

func limitBy(limiter *RateLimiter, keyFunc func(*gin.Context) string, code, message string) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.limit)

	return func(c *gin.Context) {
		d := limiter.Take(keyFunc(c))
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Next()
	}
}
