package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/products", handlers.ListProducts)
	api.Get("/products/:id", handlers.GetProduct)
	api.Get("/services", handlers.ListServices)
	api.Get("/availability", handlers.GetAvailability)
}
