package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/badboujee/storefront/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginUser)
	api.Get("/admin/auth/verify", middleware.Protected(), middleware.AdminRequired(), handlers.VerifyAdmin)
}
