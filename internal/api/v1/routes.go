package v1

import (
	"github.com/gofiber/fiber/v2"

	"taskbase/internal/api/v1/handlers"
	"taskbase/internal/auth"
	"taskbase/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler, issuer *auth.Issuer) {
	// Auth
	authRoutes := app.Group("/auth")
	authRoutes.Post("/user", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Get("/me", h.Me)
	authRoutes.Delete("/logout", middleware.RequireSession(issuer), h.Logout)

	// Task
	taskRoutes := app.Group("/task", middleware.RequireSession(issuer))
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Patch("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)
}
