package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskbase/internal/auth"
	"taskbase/pkg/logger"
)

// UserIDKey is the Locals key the session gate stores the verified user id
// under.
const UserIDKey = "userID"

// RequireSession gates a route behind a valid session cookie. Absence or
// invalidity short-circuits with 401; on success the verified user id is
// attached to the request context.
func RequireSession(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookie)
		if token == "" {
			return c.Status(401).JSON(fiber.Map{
				"message": "No session cookie was found",
				"success": false,
				"status":  401,
			})
		}
		userID, err := issuer.Verify(token)
		if err != nil {
			logger.SecurityLogger.Warn("Invalid session token", zap.Error(err))
			return c.Status(401).JSON(fiber.Map{
				"message": "Invalid session",
				"success": false,
				"status":  401,
			})
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
