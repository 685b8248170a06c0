package web

import (
	"sync"
	"time"

	"mockgram/internal/domain"
	"mockgram/pkg/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	gonanoid "github.com/matoous/go-nanoid"
)

// RateLimiter tracks interaction requests per client IP in a sliding window.
type RateLimiter struct {
	hits   map[string][]time.Time
	mu     sync.Mutex
	limit  int
	window time.Duration
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a new rate limiter.
// A limit below 1 disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		stop:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow records a request for key and reports whether it fits in the window.
// Rejected requests are not recorded.
func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit < 1 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	recent := prune(rl.hits[key], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.hits[key] = recent
		return false
	}
	rl.hits[key] = append(recent, now)
	return true
}

// Middleware returns a Fiber middleware that rejects clients over the limit with 429.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl.Allow(c.IP()) {
			return c.Next()
		}

		log.GlobalWarnCtx(c.UserContext(), "rate limit exceeded", "ip", c.IP(), "path", c.Path())
		c.Set(fiber.HeaderRetryAfter, "60")
		return renderError(c, domain.ErrRateLimited)
	}
}

// Close stops the cleanup goroutine.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup periodically removes idle clients from the rate limiter.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for key, timestamps := range rl.hits {
				if recent := prune(timestamps, cutoff); len(recent) == 0 {
					delete(rl.hits, key)
				} else {
					rl.hits[key] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}

// prune drops timestamps at or before cutoff. Timestamps are in ascending order.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(timestamps) && !timestamps[i].After(cutoff) {
		i++
	}
	return timestamps[i:]
}

// RequestIDConfig returns the configuration for Fiber's requestid middleware.
// Uses X-Request-ID header, generates a nanoid if not present.
func RequestIDConfig() requestid.Config {
	return requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: "requestid",
		Generator:  newRequestID,
	}
}

func newRequestID() string {
	id, err := gonanoid.Nanoid()
	if err != nil {
		return utils.UUIDv4()
	}
	return id
}

// RequestIDToContextMiddleware bridges Fiber's requestid to pkg/log context.
// Must be used AFTER requestid.New() middleware.
func RequestIDToContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(log.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// ViewIDToContextMiddleware adds the :view route parameter to the log context.
func ViewIDToContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Params("view"); id != "" {
			c.SetUserContext(log.WithViewID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// RequestLoggerMiddleware logs HTTP requests in structured JSON format.
// Must be used AFTER RequestIDToContextMiddleware.
func RequestLoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		fields := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
			"htmx", isHTMX(c),
		}
		if err != nil {
			fields = append(fields, "error", err.Error())
		}

		ctx := c.UserContext()
		switch {
		case status >= 500:
			log.GlobalErrorCtx(ctx, "request completed", fields...)
		case status >= 400:
			log.GlobalWarnCtx(ctx, "request completed", fields...)
		default:
			log.GlobalInfoCtx(ctx, "request completed", fields...)
		}

		return err
	}
}
