package middleware

import (
	"skillsync/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RequireUserType must run after AuthMiddleware.
func RequireUserType(allowed ...user.Type) fiber.Handler {
	return func(c fiber.Ctx) error {
		ut, _ := c.Locals(CtxUserTypeKey).(string)
		for _, a := range allowed {
			if user.Type(ut) == a {
				return c.Next()
			}
		}
		return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}
}
