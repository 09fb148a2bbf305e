package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/badboujee/storefront/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.AdminRequired())

	uploads := api.Group("/uploads")
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
