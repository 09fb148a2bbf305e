package routes

import (
	"github.com/badboujee/storefront/handlers"
	"github.com/badboujee/storefront/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard", handlers.GetDashboard)
	admin.Post("/availability", handlers.UpdateAvailabilitySettings)

	products := admin.Group("/products")
	products.Get("", handlers.AdminListProducts)
	products.Post("", handlers.AdminCreateProduct)
	products.Patch("/:id", handlers.AdminUpdateProduct)
	products.Delete("/:id", handlers.AdminDeleteProduct)

	content := admin.Group("/content")
	content.Get("", handlers.AdminListContent)
	content.Post("", handlers.AdminCreateContent)
	content.Get("/:id", handlers.AdminGetContent)
	content.Patch("/:id", handlers.AdminUpdateContent)
	content.Delete("/:id", handlers.AdminDeleteContent)

	services := admin.Group("/services")
	services.Get("", handlers.AdminListServices)
	services.Post("", handlers.AdminCreateService)
	services.Put("/:id", handlers.AdminUpdateService)
	services.Delete("/:id", handlers.AdminDeleteService)

	api.Use("/admin/feed", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/admin/feed", websocket.New(handlers.ServeAdminFeed))
}
