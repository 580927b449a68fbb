package api

import (
	"strings"

	"github.com/example/task-manager-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store the caller's claims in the
	// Fiber context. Nothing reads it to scope data yet; tasks are global.
	UserContextKey = "user"
)

// AuthGuard creates a middleware that validates bearer tokens. The decoded
// claims are trusted only as far as the signature: no store lookup happens,
// so a deleted user's unexpired token still passes.
func AuthGuard(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Success: false,
				Message: "No token provided",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Success: false,
				Message: "Invalid token format",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
				Success: false,
				Message: "Token is not valid or has expired",
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}
