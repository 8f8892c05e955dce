package middleware

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalFromCtx extracts the authenticated principal from the verified
// JWT that JWTProtected stored in context locals.
func PrincipalFromCtx(c *fiber.Ctx) (services.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return services.Principal{}, errors.New("no verified token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Principal{}, errors.New("invalid claims")
	}

	return services.PrincipalFromClaims(claims)
}
