package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const (
	createTodoLimit  = 10
	createTodoWindow = 15 * time.Minute
)

// TodoCreateLimiter throttles todo creation per client address. State lives
// in process memory and resets on restart; it is a soft throttle, not a
// security boundary.
func TodoCreateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        createTodoLimit,
		Expiration: createTodoWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	})
}
