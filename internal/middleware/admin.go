package middleware

import (
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates a route on the admin role carried by the verified
// token. Must run after JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, err := PrincipalFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !principal.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: admin access required",
			})
		}

		return c.Next()
	}
}
