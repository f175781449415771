package middleware

import (
	"time"

	"practice-quest/internal/config"
	"practice-quest/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// RateLimiter throttles each endpoint per authenticated user, or per client IP
// before authentication, with a one minute sliding window. It must be attached
// to routes rather than groups so the key carries the route template. storage
// may be nil, in which case counters live in process memory.
func RateLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	if !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:               cfg.RequestsPerMinute,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		Storage:           storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			endpoint := c.Method() + " " + c.Route().Path
			if userID, ok := c.Locals(UserIDKey).(string); ok && userID != "" {
				return endpoint + "|user:" + userID
			}
			return endpoint + "|ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Get().Warn("Rate limit reached",
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many requests",
				Status:  fiber.StatusTooManyRequests,
			})
		},
	})
}
