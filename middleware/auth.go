package middleware

import (
	"strings"

	"github.com/anle/todo-api/auth"
	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Locals key under which the authenticated user id is stored.
const UserIDKey = "user_id"

// Protected verifies the bearer access token and attaches the resolved user
// id to the request context. A missing token is 401, a present but invalid
// or expired one is 403.
func Protected(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		userID, err := tokens.VerifyAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid token"})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID reads the authenticated user id set by Protected.
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(UserIDKey).(int64)
	return id
}
