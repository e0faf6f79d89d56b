package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// GenerationRateLimiter throttles the model-backed endpoints per client.
// Generation calls are slow and metered, so this sits in front of course
// generation, translation and suggestions.
func GenerationRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			// Prefer the authenticated user over the IP
			if userID, ok := c.Locals("userId").(uint); ok {
				return fmt.Sprintf("user:%d", userID)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many generation requests. Try again in a minute.", nil)
		},
	})
}
