package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func testSetup(t *testing.T) (*fiber.App, *services.TokenService) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret: "test-secret-for-middleware-tests",
		JWTExpiry: time.Hour,
	}
	tokens := services.NewTokenService(cfg)

	app := fiber.New()
	app.Get("/protected", middleware.JWTProtected(cfg), func(c *fiber.Ctx) error {
		principal, err := middleware.PrincipalFromCtx(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	app.Get("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tokens
}

func issueFor(t *testing.T, tokens *services.TokenService, role models.Role) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{
		ID:    uuid.New(),
		Email: "mw@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestJWTProtected_ValidToken(t *testing.T) {
	app, tokens := testSetup(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, models.RoleUser))

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestJWTProtected_MissingToken(t *testing.T) {
	app, _ := testSetup(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJWTProtected_GarbageToken(t *testing.T) {
	app, _ := testSetup(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminRequired(t *testing.T) {
	app, tokens := testSetup(t)

	tests := []struct {
		name string
		role models.Role
		want int
	}{
		{"admin allowed", models.RoleAdmin, fiber.StatusOK},
		{"user forbidden", models.RoleUser, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, tt.role))

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
