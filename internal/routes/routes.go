package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	users := api.Group("/users")

	// Credential endpoints get a stricter limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	users.Post("/signup", authLimiter, authHandler.Signup)
	users.Post("/login", authLimiter, authHandler.Login)
	users.Post("/reset-password", authLimiter, authHandler.RequestReset)
	users.Put("/reset-password/:token", authLimiter, authHandler.ConsumeReset)

	// /me before /:id so Fiber does not swallow it as a param
	users.Get("/", middleware.JWTProtected(cfg), middleware.AdminRequired(), userHandler.List)
	users.Get("/me", middleware.JWTProtected(cfg), userHandler.Me)
	users.Put("/me", middleware.JWTProtected(cfg), userHandler.UpdateMe)
	users.Delete("/:id", middleware.JWTProtected(cfg), userHandler.Delete)

	tasks := api.Group("/tasks", middleware.JWTProtected(cfg))
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
